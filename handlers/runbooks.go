// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/listen/middleware"
	"github.com/danielhkuo/listen/models"
	"github.com/danielhkuo/listen/store"
	"github.com/danielhkuo/listen/views"
)

type RunbookHandler struct {
	st *store.Store
}

func NewRunbookHandler(st *store.Store) *RunbookHandler {
	return &RunbookHandler{st: st}
}

// ListRunbooks handles GET /runbooks
func (h *RunbookHandler) ListRunbooks(w http.ResponseWriter, r *http.Request) {
	runbooks, err := h.st.Runbooks.All(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	summaries := make([]views.RunbookSummary, 0, len(runbooks))
	for _, rb := range runbooks {
		runs, err := h.st.RunsOf(r.Context(), rb.ID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		summaries = append(summaries, views.RunbookSummary{Runbook: rb, Runs: runs})
	}

	middleware.HTMLResponse(w, http.StatusOK, func(w io.Writer) error {
		return views.RunbookList(w, summaries)
	})
}

// NewRunbook handles POST /runbooks/new
func (h *RunbookHandler) NewRunbook(w http.ResponseWriter, r *http.Request) {
	name, err := requireName(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rb, err := h.st.Runbooks.Create(r.Context(), store.Fields{"name": name})
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("runbook created", "runbook_id", rb.ID, "name", rb.Name)

	middleware.HTMLResponse(w, http.StatusOK, func(w io.Writer) error {
		if err := views.RunbookLink(w, views.RunbookSummary{Runbook: rb}); err != nil {
			return err
		}
		return views.NewInput(w, views.NewRunbookInput())
	})
}

// GetRunbook handles GET /runbooks/{id}
func (h *RunbookHandler) GetRunbook(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := runbookPage(r.Context(), h.st, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.HTMLResponse(w, http.StatusOK, func(w io.Writer) error {
		return views.RunbookDetail(w, page)
	})
}

// ChangeRunbook handles POST /runbooks/change/{id}. A blank name leaves
// the runbook as it is.
func (h *RunbookHandler) ChangeRunbook(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var rb models.Runbook
	if name := formName(r); name != "" {
		rb, err = h.st.Runbooks.Update(r.Context(), id, store.Fields{"name": name})
	} else {
		rb, err = h.st.Runbooks.Get(r.Context(), id)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.HTMLResponse(w, http.StatusOK, func(w io.Writer) error {
		return views.RunbookHeading(w, rb)
	})
}

// DeleteRunbook handles POST /runbooks/delete/{id}. Sections, items,
// runs, targets and checkmarks go with it.
func (h *RunbookHandler) DeleteRunbook(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.st.Runbooks.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("runbook deleted", "runbook_id", id)

	w.Header().Set("HX-Redirect", "/")
	empty(w)
}

// runbookPage loads everything the runbook editor shows
func runbookPage(ctx context.Context, st *store.Store, id int64) (views.RunbookPage, error) {
	rb, err := st.Runbooks.Get(ctx, id)
	if err != nil {
		return views.RunbookPage{}, err
	}

	sections, err := st.SectionsOf(ctx, id)
	if err != nil {
		return views.RunbookPage{}, err
	}

	page := views.RunbookPage{Runbook: rb, Sections: make([]views.SectionView, 0, len(sections))}
	for _, section := range sections {
		sv, err := sectionView(ctx, st, section)
		if err != nil {
			return views.RunbookPage{}, err
		}
		page.Sections = append(page.Sections, sv)
	}

	page.Runs, err = st.RunsOf(ctx, id)
	if err != nil {
		return views.RunbookPage{}, err
	}
	return page, nil
}

func sectionView(ctx context.Context, st *store.Store, section models.Section) (views.SectionView, error) {
	items, err := st.ItemsOf(ctx, section.ID)
	if err != nil {
		return views.SectionView{}, err
	}
	return views.SectionView{Section: section, Items: items}, nil
}
