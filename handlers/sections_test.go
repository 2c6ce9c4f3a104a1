// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/danielhkuo/listen/checkmarks"
	"github.com/danielhkuo/listen/db"
	"github.com/danielhkuo/listen/models"
	"github.com/danielhkuo/listen/store"
	"github.com/danielhkuo/listen/testutil"
)

func TestNewSection(t *testing.T) {
	st := testutil.SetupTestStore(t)
	rb := testutil.CreateTestRunbook(t, st, "Packliste")
	h := NewSectionHandler(st)
	path := map[string]string{"runbook_id": idStr(rb.ID)}

	for i, name := range []string{"Kleidung", "Küche"} {
		w := call(h.NewSection, "POST", "/sections/new/x", path, nameForm(name))
		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertContains(t, w,
			">"+name+"</h2>",
			`placeholder="New item"`,
			`placeholder="New section"`,
			`hx-post="/sections/new/`+idStr(rb.ID)+`"`,
		)

		sections, err := st.SectionsOf(context.Background(), rb.ID)
		if err != nil {
			t.Fatal(err)
		}
		if len(sections) != i+1 || sections[i].Rank != i+1 {
			t.Errorf("Expected section %d appended with rank %d, got %+v", i, i+1, sections)
		}
	}

	w := call(h.NewSection, "POST", "/sections/new/999", map[string]string{"runbook_id": "999"}, nameForm("x"))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	w = call(h.NewSection, "POST", "/sections/new/x", path, nameForm(""))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestChangeSection(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	st := store.New(conn, db.SQLite)
	f := testutil.CreateTestFixture(t, st)
	h := NewSectionHandler(st)
	path := map[string]string{"id": idStr(f.Section.ID)}

	w := call(h.ChangeSection, "POST", "/sections/change/x", path, nameForm("Gepäck"))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertContains(t, w, ">Gepäck</h2>", ">Zelt</span>")

	// A blank name deletes the section and its items
	w = call(h.ChangeSection, "POST", "/sections/change/x", path, nameForm(""))
	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.Len() != 0 {
		t.Errorf("Expected empty fragment, got '%s'", w.Body.String())
	}
	if n := testutil.CountRows(t, conn, "sections", "id = ?", f.Section.ID); n != 0 {
		t.Errorf("Expected section to be deleted, got %d rows", n)
	}
	if n := testutil.CountRows(t, conn, "items", "section_id = ?", f.Section.ID); n != 0 {
		t.Errorf("Expected items to be deleted, got %d rows", n)
	}

	w = call(h.ChangeSection, "POST", "/sections/change/x", path, nameForm(""))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestNewItem(t *testing.T) {
	st := testutil.SetupTestStore(t)
	rb := testutil.CreateTestRunbook(t, st, "Packliste")
	section := testutil.CreateTestSection(t, st, rb.ID, "Kleidung")
	h := NewItemHandler(st)

	w := call(h.NewItem, "POST", "/items/new/x", map[string]string{"section_id": idStr(section.ID)}, nameForm("Jacke"))

	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertContains(t, w,
		">Jacke</span>",
		"type type-once",
		`hx-post="/items/new/`+idStr(section.ID)+`"`,
		"autofocus",
	)

	items, err := st.ItemsOf(context.Background(), section.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Type != models.ItemOnce {
		t.Errorf("Expected one once item, got %+v", items)
	}

	w = call(h.NewItem, "POST", "/items/new/999", map[string]string{"section_id": "999"}, nameForm("x"))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestToggleItemKeepsCheckmarks(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	st := store.New(conn, db.SQLite)
	f := testutil.CreateTestFixture(t, st)
	engine := checkmarks.NewEngine(st)
	h := NewItemHandler(st)

	target := f.TargetA.ID
	if _, err := engine.Check(context.Background(), f.Run.ID, f.EachItem.ID, &target); err != nil {
		t.Fatal(err)
	}

	path := map[string]string{"id": idStr(f.EachItem.ID)}
	expected := []string{"type type-once", "type type-each"}
	for _, fragment := range expected {
		w := call(h.ToggleItem, "POST", "/items/toggle/x", path, nil)
		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertContains(t, w, fragment)

		if n := testutil.CountRows(t, conn, "checkmarks", "item_id = ?", f.EachItem.ID); n != 1 {
			t.Errorf("Expected checkmark to survive the toggle, got %d rows", n)
		}
	}
}

func TestChangeItem(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	st := store.New(conn, db.SQLite)
	f := testutil.CreateTestFixture(t, st)
	h := NewItemHandler(st)
	path := map[string]string{"id": idStr(f.OnceItem.ID)}

	w := call(h.ChangeItem, "POST", "/items/change/x", path, nameForm("Schlafsack"))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertContains(t, w, ">Schlafsack</span>")

	w = call(h.ChangeItem, "POST", "/items/change/x", path, nameForm(""))
	testutil.AssertStatus(t, w, http.StatusOK)
	if strings.TrimSpace(w.Body.String()) != "" {
		t.Errorf("Expected empty fragment, got '%s'", w.Body.String())
	}
	if n := testutil.CountRows(t, conn, "items", "id = ?", f.OnceItem.ID); n != 0 {
		t.Errorf("Expected item to be deleted, got %d rows", n)
	}
}

func TestRenameWithAmpersandRendersOnce(t *testing.T) {
	st := testutil.SetupTestStore(t)
	f := testutil.CreateTestFixture(t, st)
	h := NewItemHandler(st)
	path := map[string]string{"id": idStr(f.OnceItem.ID)}

	// Twice: a second save of the rendered name must not escape it again
	for i := 0; i < 2; i++ {
		w := call(h.ChangeItem, "POST", "/items/change/x", path, nameForm("A & B"))
		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertContains(t, w, ">A &amp; B</span>")
		if strings.Contains(w.Body.String(), "&amp;amp;") {
			t.Errorf("Expected name escaped once, got '%s'", w.Body.String())
		}
	}

	got, err := st.Items.Get(context.Background(), f.OnceItem.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "A & B" {
		t.Errorf("Expected stored name 'A & B', got '%s'", got.Name)
	}
}

func TestWhitespaceNameIsBlank(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	st := store.New(conn, db.SQLite)
	f := testutil.CreateTestFixture(t, st)

	w := call(NewItemHandler(st).ChangeItem, "POST", "/items/change/x",
		map[string]string{"id": idStr(f.EachItem.ID)}, nameForm("  \t "))
	testutil.AssertStatus(t, w, http.StatusOK)
	if n := testutil.CountRows(t, conn, "items", "id = ?", f.EachItem.ID); n != 0 {
		t.Errorf("Expected item to be deleted, got %d rows", n)
	}

	w = call(NewItemHandler(st).ChangeItem, "POST", "/items/change/x",
		map[string]string{"id": idStr(f.OnceItem.ID)}, nameForm("  Zelt "))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertContains(t, w, ">Zelt</span>")
}
