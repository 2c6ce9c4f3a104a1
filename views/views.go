// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"embed"
	"html/template"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/listen/checkmarks"
	"github.com/danielhkuo/listen/models"
)

//go:embed templates/*.html
var files embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"ago":   func(t time.Time) string { return humanize.Time(t) },
	"comma": func(n int) string { return humanize.Comma(int64(n)) },
	"glyph": Glyph,

	"newRunbookInput": NewRunbookInput,
	"newSectionInput": NewSectionInput,
	"newItemInput":    NewItemInput,
	"newRunInput":     NewRunInput,
	"newTargetInput":  NewTargetInput,
	"summary": func(rb models.Runbook, runs []models.Run) RunbookSummary {
		return RunbookSummary{Runbook: rb, Runs: runs}
	},
}).ParseFS(files, "templates/*.html"))

// RunbookSummary is a runbook with its runs, as shown in the runbook list
type RunbookSummary struct {
	Runbook models.Runbook
	Runs    []models.Run
}

// SectionView is a section with its items in display order
type SectionView struct {
	Section models.Section
	Items   []models.Item
}

// RunbookPage is everything the runbook editor shows
type RunbookPage struct {
	Runbook  models.Runbook
	Sections []SectionView
	Runs     []models.Run
}

// Checkbox is one item of a run with its slots
type Checkbox struct {
	Run     models.Run
	Item    models.Item
	Targets []models.Target
	Slots   checkmarks.Slots
}

// Each reports whether the checkbox has one lane per target
func (c Checkbox) Each() bool {
	return c.Item.Type == models.ItemEach
}

// Done reports whether the item is fully checked
func (c Checkbox) Done() bool {
	return checkmarks.FullyChecked(c.Item, c.Targets, c.Slots)
}

// Class is the CSS class of the null slot
func (c Checkbox) Class() string {
	return StateClass(c.Slots[checkmarks.NoTarget])
}

// TargetClass is the CSS class of a target's slot
func (c Checkbox) TargetClass(targetID int64) string {
	return StateClass(c.Slots[targetID])
}

// RunSection is a section of a run's checklist
type RunSection struct {
	Section    models.Section
	Checkboxes []Checkbox
}

// RunPage is everything the run checklist shows
type RunPage struct {
	Run      models.Run
	Targets  []models.Target
	Sections []RunSection
	Done     int
	Total    int
}

// Input is a text input that posts its value on change
type Input struct {
	Placeholder string
	Post        string
	Target      string
	Autofocus   bool
}

// NewRunbookInput creates a runbook
func NewRunbookInput() Input {
	return Input{Placeholder: "New runbook", Post: "/runbooks/new"}
}

// NewSectionInput appends a section to a runbook
func NewSectionInput(runbookID int64) Input {
	return Input{Placeholder: "New section", Post: "/sections/new/" + itoa(runbookID)}
}

// NewItemInput appends an item to a section
func NewItemInput(sectionID int64, focus bool) Input {
	return Input{Placeholder: "New item", Post: "/items/new/" + itoa(sectionID), Autofocus: focus}
}

// NewRunInput starts a run of a runbook
func NewRunInput(runbookID int64) Input {
	return Input{Placeholder: "New run", Post: "/runs/new/" + itoa(runbookID)}
}

// NewTargetInput adds a target and rerenders the whole run
func NewTargetInput(runID int64) Input {
	return Input{Placeholder: "New target", Post: "/targets/new/" + itoa(runID), Target: "#container", Autofocus: true}
}

// StateClass maps a slot state to its CSS classes
func StateClass(state models.CheckState) string {
	switch state {
	case models.StateAbsent:
		return "unchecked actionable"
	case models.StateNormal:
		return "checked actionable"
	default:
		return "disabled"
	}
}

// Glyph is the short label of an item type
func Glyph(t models.ItemType) string {
	if t == models.ItemEach {
		return "∀"
	}
	return "1"
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func render(w io.Writer, name string, data any) error {
	return templates.ExecuteTemplate(w, name, data)
}

// Index renders the page shell, which loads autoload into #container
func Index(w io.Writer, autoload string) error {
	return render(w, "index", autoload)
}

// RunbookList renders the share-code input, every runbook and the
// new-runbook input
func RunbookList(w io.Writer, runbooks []RunbookSummary) error {
	return render(w, "runbook_list", runbooks)
}

// RunbookLink renders a runbook link followed by its runs
func RunbookLink(w io.Writer, rb RunbookSummary) error {
	return render(w, "runbook_link", rb)
}

// RunbookHeading renders the editable runbook name
func RunbookHeading(w io.Writer, rb models.Runbook) error {
	return render(w, "runbook_heading", rb)
}

// RunbookDetail renders the runbook editor
func RunbookDetail(w io.Writer, page RunbookPage) error {
	return render(w, "runbook_detail", page)
}

// RunbookRuns renders a runbook's runs with the new-run input
func RunbookRuns(w io.Writer, runbookID int64, runs []models.Run) error {
	return render(w, "runbook_runs", RunbookSummary{Runbook: models.Runbook{ID: runbookID}, Runs: runs})
}

// SectionDetail renders a section with its items
func SectionDetail(w io.Writer, section SectionView) error {
	return render(w, "section_detail", section)
}

// ItemDetail renders an item row of the runbook editor
func ItemDetail(w io.Writer, item models.Item) error {
	return render(w, "item_detail", item)
}

// ItemCheckbox renders an item of a run checklist
func ItemCheckbox(w io.Writer, c Checkbox) error {
	return render(w, "item_checkbox", c)
}

// RunList renders links to the given runs
func RunList(w io.Writer, runs []models.Run) error {
	return render(w, "run_list", runs)
}

// RunLink renders a link to a run as a list entry
func RunLink(w io.Writer, run models.Run) error {
	return render(w, "run_link_item", run)
}

// RunHeading renders the editable run name
func RunHeading(w io.Writer, run models.Run) error {
	return render(w, "run_heading", run)
}

// RunDetail renders a run checklist
func RunDetail(w io.Writer, page RunPage) error {
	return render(w, "run_detail", page)
}

// NewInput renders a creation input
func NewInput(w io.Writer, in Input) error {
	return render(w, "new_input", in)
}

// LoadInput renders the share-code input
func LoadInput(w io.Writer) error {
	return render(w, "load_input", nil)
}

// ShareCode renders a prompt holding the runbook's share code, and the
// dump button it replaces
func ShareCode(w io.Writer, runbookID int64, code string) error {
	return render(w, "share_code", struct {
		ID   int64
		Code string
	}{runbookID, code})
}

// DumpButton renders the button that fetches a runbook's share code
func DumpButton(w io.Writer, runbookID int64) error {
	return render(w, "dump_button", runbookID)
}

// Error renders an error fragment
func Error(w io.Writer, status int, message string) error {
	return render(w, "error", struct {
		Status  int
		Message string
	}{status, message})
}
