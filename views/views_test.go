// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/listen/checkmarks"
	"github.com/danielhkuo/listen/models"
)

func renderString(t *testing.T, fn func(*bytes.Buffer) error) string {
	t.Helper()
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return buf.String()
}

func assertContains(t *testing.T, body string, fragments ...string) {
	t.Helper()
	for _, f := range fragments {
		if !strings.Contains(body, f) {
			t.Errorf("Expected output to contain %q. Output: %s", f, body)
		}
	}
}

func TestIndex(t *testing.T) {
	body := renderString(t, func(b *bytes.Buffer) error { return Index(b, "/runs/7") })
	assertContains(t, body,
		`<script src="/vendor/htmx.min.js"></script>`,
		`id="container" hx-get="/runs/7" hx-trigger="load"`,
	)
}

func TestStateClass(t *testing.T) {
	testCases := []struct {
		state    models.CheckState
		expected string
	}{
		{models.StateAbsent, "unchecked actionable"},
		{models.StateNormal, "checked actionable"},
		{models.StateNotApplicable, "disabled"},
	}
	for _, tc := range testCases {
		if got := StateClass(tc.state); got != tc.expected {
			t.Errorf("StateClass(%q): expected %q, got %q", tc.state, tc.expected, got)
		}
	}
}

func TestItemDetail(t *testing.T) {
	testCases := []struct {
		itemType models.ItemType
		glyph    string
	}{
		{models.ItemOnce, ">1</span>"},
		{models.ItemEach, ">∀</span>"},
	}
	for _, tc := range testCases {
		t.Run(string(tc.itemType), func(t *testing.T) {
			item := models.Item{ID: 5, Name: "Zelt", Type: tc.itemType}
			body := renderString(t, func(b *bytes.Buffer) error { return ItemDetail(b, item) })
			assertContains(t, body,
				`hx-post="/items/toggle/5"`,
				`class="actionable type type-`+string(tc.itemType)+`"`,
				tc.glyph,
				`hx-post="/items/change/5"`,
				`hx-vals="js:name:event.target.textContent"`,
				">Zelt</span>",
			)
		})
	}
}

func TestEditableNamesPostPlainText(t *testing.T) {
	testCases := []struct {
		name   string
		render func(*bytes.Buffer) error
	}{
		{"runbook heading", func(b *bytes.Buffer) error { return RunbookHeading(b, models.Runbook{ID: 1, Name: "A & B"}) }},
		{"section", func(b *bytes.Buffer) error {
			return SectionDetail(b, SectionView{Section: models.Section{ID: 1, RunbookID: 1, Name: "A & B"}})
		}},
		{"item", func(b *bytes.Buffer) error { return ItemDetail(b, models.Item{ID: 1, Name: "A & B", Type: models.ItemOnce}) }},
		{"run heading", func(b *bytes.Buffer) error { return RunHeading(b, models.Run{ID: 1, RunbookID: 1, Name: "A & B"}) }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			body := renderString(t, tc.render)
			assertContains(t, body, `hx-vals="js:name:event.target.textContent"`, "A &amp; B")
			if strings.Contains(body, "innerHTML") || strings.Contains(body, "&amp;amp;") {
				t.Errorf("Expected plain text name handling, got %s", body)
			}
		})
	}
}

func TestNamesAreEscaped(t *testing.T) {
	rb := models.Runbook{ID: 1, Name: `<script>alert("x")</script>`}
	body := renderString(t, func(b *bytes.Buffer) error { return RunbookHeading(b, rb) })
	if strings.Contains(body, "<script>") {
		t.Errorf("Expected name to be escaped, got %s", body)
	}
	assertContains(t, body, "&lt;script&gt;")
}

func TestOnceCheckbox(t *testing.T) {
	c := Checkbox{
		Run:   models.Run{ID: 2},
		Item:  models.Item{ID: 3, Name: "Zelt", Type: models.ItemOnce},
		Slots: checkmarks.Slots{checkmarks.NoTarget: models.StateNormal},
	}
	body := renderString(t, func(b *bytes.Buffer) error { return ItemCheckbox(b, c) })
	assertContains(t, body,
		`hx-post="/checkmarks/check/2/3"`,
		`hx-trigger="click[!ctrlKey]"`,
		`class="checked actionable"`,
		`hx-post="/checkmarks/disable/2/3"`,
		`hx-trigger="click[ctrlKey] from:closest li"`,
	)
}

func TestEachCheckbox(t *testing.T) {
	c := Checkbox{
		Run:     models.Run{ID: 2},
		Item:    models.Item{ID: 4, Name: "Jacke", Type: models.ItemEach},
		Targets: []models.Target{{ID: 10, Name: "Anna"}, {ID: 11, Name: "Ben"}},
		Slots:   checkmarks.Slots{10: models.StateNormal, 11: models.StateNotApplicable},
	}
	body := renderString(t, func(b *bytes.Buffer) error { return ItemCheckbox(b, c) })
	assertContains(t, body,
		`<li class="multi">Jacke`,
		`hx-post="/checkmarks/check/2/4/10"`,
		`hx-post="/checkmarks/disable/2/4/11"`,
		`class="checked actionable"`,
		`class="disabled"`,
		`class="multilabel target target-0">Anna`,
		`class="multilabel target target-1">Ben`,
	)

	c.Slots[11] = models.StateNormal
	body = renderString(t, func(b *bytes.Buffer) error { return ItemCheckbox(b, c) })
	assertContains(t, body, `<li class="multi checked">Jacke`)
}

func TestRunDetail(t *testing.T) {
	page := RunPage{
		Run:     models.Run{ID: 2, Name: "Tirol 2024", CreatedAt: time.Now()},
		Targets: []models.Target{{ID: 10, Name: "Anna"}},
		Sections: []RunSection{{
			Section: models.Section{ID: 1, Name: "Kleidung"},
			Checkboxes: []Checkbox{{
				Run:  models.Run{ID: 2},
				Item: models.Item{ID: 3, Name: "Zelt", Type: models.ItemOnce},
			}},
		}},
		Done:  0,
		Total: 1,
	}
	body := renderString(t, func(b *bytes.Buffer) error { return RunDetail(b, page) })
	assertContains(t, body,
		`hx-post="/runs/change/2"`,
		">Tirol 2024</h1>",
		`<span class="target target-0">Anna</span>`,
		`hx-post="/targets/new/2"`,
		`hx-target="#container"`,
		"<h2>Kleidung</h2>",
		`class="unchecked actionable"`,
		"0 / 1",
	)
}

func TestRunbookDetail(t *testing.T) {
	page := RunbookPage{
		Runbook: models.Runbook{ID: 1, Name: "Packliste"},
		Sections: []SectionView{{
			Section: models.Section{ID: 4, Name: "Kleidung"},
			Items:   []models.Item{{ID: 5, Name: "Jacke", Type: models.ItemEach}},
		}},
		Runs: []models.Run{{ID: 9, Name: "Tirol", CreatedAt: time.Now()}},
	}
	body := renderString(t, func(b *bytes.Buffer) error { return RunbookDetail(b, page) })
	assertContains(t, body,
		`hx-post="/runbooks/change/1"`,
		`hx-get="/runbooks/dump/1"`,
		`hx-post="/sections/change/4"`,
		`hx-post="/items/new/4"`,
		`hx-post="/sections/new/1"`,
		`hx-push-url="/_/runs/9"`,
		`hx-post="/runs/new/1"`,
	)
}

func TestRunbookList(t *testing.T) {
	list := []RunbookSummary{
		{Runbook: models.Runbook{ID: 1, Name: "Packliste"}},
		{Runbook: models.Runbook{ID: 2, Name: "Umzug"}},
	}
	body := renderString(t, func(b *bytes.Buffer) error { return RunbookList(b, list) })
	assertContains(t, body,
		`hx-post="/runbooks/load"`,
		`hx-trigger="keydown[key=='Enter']"`,
		`hx-push-url="/_/runbooks/1"`,
		`>Umzug</a>`,
		`placeholder="New runbook"`,
	)
}

func TestNewInput(t *testing.T) {
	body := renderString(t, func(b *bytes.Buffer) error { return NewInput(b, NewItemInput(4, true)) })
	assertContains(t, body, `placeholder="New item"`, `hx-swap="outerHTML"`, `hx-post="/items/new/4"`, "autofocus")

	body = renderString(t, func(b *bytes.Buffer) error { return NewInput(b, NewItemInput(4, false)) })
	if strings.Contains(body, "autofocus") {
		t.Errorf("Expected no autofocus, got %s", body)
	}
}

func TestShareCode(t *testing.T) {
	body := renderString(t, func(b *bytes.Buffer) error { return ShareCode(b, 3, "03VA80000") })
	assertContains(t, body,
		"window.prompt('Press Ctrl+C, Enter', ",
		`"03VA80000"`,
		`hx-get="/runbooks/dump/3"`,
		"top-right large-icon actionable",
	)
}

func TestError(t *testing.T) {
	body := renderString(t, func(b *bytes.Buffer) error { return Error(b, 404, "runbook not found") })
	assertContains(t, body, `class="error"`, "runbook not found")
}
