// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/listen/checkmarks"
	"github.com/danielhkuo/listen/middleware"
	"github.com/danielhkuo/listen/models"
	"github.com/danielhkuo/listen/store"
	"github.com/danielhkuo/listen/views"
)

type RunHandler struct {
	st     *store.Store
	engine *checkmarks.Engine
}

func NewRunHandler(st *store.Store, engine *checkmarks.Engine) *RunHandler {
	return &RunHandler{st: st, engine: engine}
}

// ListRuns handles GET /runs
func (h *RunHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.st.Runs.Query(r.Context(), nil, store.OrderBy{Column: "id", Desc: true})
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.HTMLResponse(w, http.StatusOK, func(w io.Writer) error {
		return views.RunList(w, runs)
	})
}

// NewRun handles POST /runs/new/{runbook_id}
func (h *RunHandler) NewRun(w http.ResponseWriter, r *http.Request) {
	runbookID, err := pathID(r, "runbook_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	name, err := requireName(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	run, err := h.st.AddRun(r.Context(), runbookID, name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("run created", "run_id", run.ID, "runbook_id", runbookID)

	middleware.HTMLResponse(w, http.StatusOK, func(w io.Writer) error {
		if err := views.RunLink(w, run); err != nil {
			return err
		}
		return views.NewInput(w, views.NewRunInput(runbookID))
	})
}

// GetRun handles GET /runs/{id}
func (h *RunHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := runPage(r.Context(), h.st, h.engine, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.HTMLResponse(w, http.StatusOK, func(w io.Writer) error {
		return views.RunDetail(w, page)
	})
}

// ChangeRun handles POST /runs/change/{id}. A blank name leaves the run
// as it is.
func (h *RunHandler) ChangeRun(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var run models.Run
	if name := formName(r); name != "" {
		run, err = h.st.Runs.Update(r.Context(), id, store.Fields{"name": name})
	} else {
		run, err = h.st.Runs.Get(r.Context(), id)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.HTMLResponse(w, http.StatusOK, func(w io.Writer) error {
		return views.RunHeading(w, run)
	})
}

// DeleteRun handles POST /runs/delete/{id}
func (h *RunHandler) DeleteRun(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.st.Runs.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("run deleted", "run_id", id)

	w.Header().Set("HX-Redirect", "/")
	empty(w)
}

// NewTarget handles POST /targets/new/{run_id} and answers with the
// whole run, since every each item gains a lane.
func (h *RunHandler) NewTarget(w http.ResponseWriter, r *http.Request) {
	runID, err := pathID(r, "run_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	name, err := requireName(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len([]rune(name)) > models.MaxTargetNameLength {
		writeError(w, r, fmt.Errorf("target name is longer than %d characters: %w", models.MaxTargetNameLength, ErrBadInput))
		return
	}

	target, err := h.st.AddTarget(r.Context(), runID, name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("target created", "target_id", target.ID, "run_id", runID)

	page, err := runPage(r.Context(), h.st, h.engine, runID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.HTMLResponse(w, http.StatusOK, func(w io.Writer) error {
		return views.RunDetail(w, page)
	})
}

// runPage loads a run's checklist: the runbook's sections and items
// with the run's targets and checkmarks.
func runPage(ctx context.Context, st *store.Store, engine *checkmarks.Engine, id int64) (views.RunPage, error) {
	run, err := st.Runs.Get(ctx, id)
	if err != nil {
		return views.RunPage{}, err
	}
	targets, err := st.TargetsOf(ctx, id)
	if err != nil {
		return views.RunPage{}, err
	}
	state, err := engine.RunState(ctx, id)
	if err != nil {
		return views.RunPage{}, err
	}
	sections, err := st.SectionsOf(ctx, run.RunbookID)
	if err != nil {
		return views.RunPage{}, err
	}

	page := views.RunPage{Run: run, Targets: targets}
	var all []models.Item
	for _, section := range sections {
		items, err := st.ItemsOf(ctx, section.ID)
		if err != nil {
			return views.RunPage{}, err
		}
		rs := views.RunSection{Section: section, Checkboxes: make([]views.Checkbox, 0, len(items))}
		for _, item := range items {
			rs.Checkboxes = append(rs.Checkboxes, views.Checkbox{
				Run:     run,
				Item:    item,
				Targets: targets,
				Slots:   state[item.ID],
			})
		}
		page.Sections = append(page.Sections, rs)
		all = append(all, items...)
	}
	page.Done, page.Total = checkmarks.Progress(all, targets, state)
	return page, nil
}
