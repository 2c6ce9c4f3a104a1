// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/danielhkuo/listen/db"
	"github.com/danielhkuo/listen/models"
	"github.com/danielhkuo/listen/store"
	"github.com/danielhkuo/listen/testutil"
)

func TestListRunbooks(t *testing.T) {
	st := testutil.SetupTestStore(t)
	f := testutil.CreateTestFixture(t, st)
	h := NewRunbookHandler(st)

	w := call(h.ListRunbooks, "GET", "/runbooks", nil, nil)

	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertContains(t, w,
		`hx-post="/runbooks/load"`,
		`hx-get="/runbooks/`+idStr(f.Runbook.ID)+`"`,
		">Packliste</a>",
		">Tirol 2024</a>",
		`hx-post="/runs/new/`+idStr(f.Runbook.ID)+`"`,
		`placeholder="New runbook"`,
	)
}

func TestNewRunbook(t *testing.T) {
	st := testutil.SetupTestStore(t)
	h := NewRunbookHandler(st)

	t.Run("creates runbook", func(t *testing.T) {
		w := call(h.NewRunbook, "POST", "/runbooks/new", nil, nameForm("Umzug"))

		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertContains(t, w, ">Umzug</a>", `placeholder="New runbook"`)

		n, err := st.Runbooks.Count(context.Background(), store.Fields{"name": "Umzug"})
		if err != nil {
			t.Fatal(err)
		}
		if n != 1 {
			t.Errorf("Expected 1 runbook named Umzug, got %d", n)
		}
	})

	t.Run("requires a name", func(t *testing.T) {
		w := call(h.NewRunbook, "POST", "/runbooks/new", nil, nameForm("   "))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestGetRunbook(t *testing.T) {
	st := testutil.SetupTestStore(t)
	f := testutil.CreateTestFixture(t, st)
	h := NewRunbookHandler(st)

	testCases := []struct {
		name           string
		id             string
		expectedStatus int
	}{
		{"existing runbook", idStr(f.Runbook.ID), http.StatusOK},
		{"missing runbook", "999", http.StatusNotFound},
		{"malformed id", "abc", http.StatusBadRequest},
		{"negative id", "-1", http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := call(h.GetRunbook, "GET", "/runbooks/"+tc.id, map[string]string{"id": tc.id}, nil)
			testutil.AssertStatus(t, w, tc.expectedStatus)
		})
	}

	w := call(h.GetRunbook, "GET", "/runbooks/x", map[string]string{"id": idStr(f.Runbook.ID)}, nil)
	testutil.AssertContains(t, w,
		">Packliste</h1>",
		`hx-get="/runbooks/dump/`+idStr(f.Runbook.ID)+`"`,
		">Kleidung</h2>",
		">Zelt</span>",
		">Jacke</span>",
		`hx-post="/sections/new/`+idStr(f.Runbook.ID)+`"`,
		`hx-push-url="/_/runs/`+idStr(f.Run.ID)+`"`,
	)
	body := w.Body.String()
	if strings.Index(body, "Zelt") > strings.Index(body, "Jacke") {
		t.Error("Expected items in rank order")
	}
}

func TestChangeRunbook(t *testing.T) {
	st := testutil.SetupTestStore(t)
	rb := testutil.CreateTestRunbook(t, st, "Packliste")
	h := NewRunbookHandler(st)
	path := map[string]string{"id": idStr(rb.ID)}

	w := call(h.ChangeRunbook, "POST", "/runbooks/change/x", path, nameForm("Urlaub"))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertContains(t, w, ">Urlaub</h1>")

	// A blank name is ignored for runbooks
	w = call(h.ChangeRunbook, "POST", "/runbooks/change/x", path, nameForm(""))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertContains(t, w, ">Urlaub</h1>")

	got, err := st.Runbooks.Get(context.Background(), rb.ID)
	if err != nil {
		t.Fatalf("Runbook should still exist: %v", err)
	}
	if got.Name != "Urlaub" {
		t.Errorf("Expected name 'Urlaub', got '%s'", got.Name)
	}

	w = call(h.ChangeRunbook, "POST", "/runbooks/change/999", map[string]string{"id": "999"}, nameForm("x"))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestDeleteRunbook(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	st := store.New(conn, db.SQLite)
	f := testutil.CreateTestFixture(t, st)
	h := NewRunbookHandler(st)

	_, err := st.ApplyCheckmark(context.Background(), store.CheckmarkMutation{
		RunID: f.Run.ID, ItemID: f.OnceItem.ID, AnyTarget: true, InsertState: models.StateNormal,
	})
	if err != nil {
		t.Fatal(err)
	}

	w := call(h.DeleteRunbook, "POST", "/runbooks/delete/x", map[string]string{"id": idStr(f.Runbook.ID)}, nil)

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Header().Get("HX-Redirect") != "/" {
		t.Errorf("Expected HX-Redirect '/', got '%s'", w.Header().Get("HX-Redirect"))
	}
	for _, table := range []string{"runbooks", "sections", "items", "runs", "targets", "checkmarks"} {
		if n := testutil.CountRows(t, conn, table, ""); n != 0 {
			t.Errorf("Expected %s to be empty, got %d rows", table, n)
		}
	}

	w = call(h.DeleteRunbook, "POST", "/runbooks/delete/x", map[string]string{"id": idStr(f.Runbook.ID)}, nil)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestPages(t *testing.T) {
	h := NewPageHandler()

	testCases := []struct {
		name     string
		handler  func(*PageHandler) func(http.ResponseWriter, *http.Request)
		id       string
		status   int
		autoload string
	}{
		{"index", func(h *PageHandler) func(http.ResponseWriter, *http.Request) { return h.Index }, "", http.StatusOK, `hx-get="/runbooks"`},
		{"runbook", func(h *PageHandler) func(http.ResponseWriter, *http.Request) { return h.DirectRunbook }, "4", http.StatusOK, `hx-get="/runbooks/4"`},
		{"run", func(h *PageHandler) func(http.ResponseWriter, *http.Request) { return h.DirectRun }, "7", http.StatusOK, `hx-get="/runs/7"`},
		{"bad id", func(h *PageHandler) func(http.ResponseWriter, *http.Request) { return h.DirectRun }, "x", http.StatusBadRequest, `class="error"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := call(tc.handler(h), "GET", "/", map[string]string{"id": tc.id}, nil)
			testutil.AssertStatus(t, w, tc.status)
			testutil.AssertContains(t, w, tc.autoload)
		})
	}
}
