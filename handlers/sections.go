// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/listen/middleware"
	"github.com/danielhkuo/listen/store"
	"github.com/danielhkuo/listen/views"
)

type SectionHandler struct {
	st *store.Store
}

func NewSectionHandler(st *store.Store) *SectionHandler {
	return &SectionHandler{st: st}
}

// NewSection handles POST /sections/new/{runbook_id}
func (h *SectionHandler) NewSection(w http.ResponseWriter, r *http.Request) {
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

	section, err := h.st.AddSection(r.Context(), runbookID, name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("section created", "section_id", section.ID, "runbook_id", runbookID)

	middleware.HTMLResponse(w, http.StatusOK, func(w io.Writer) error {
		if err := views.SectionDetail(w, views.SectionView{Section: section}); err != nil {
			return err
		}
		return views.NewInput(w, views.NewSectionInput(runbookID))
	})
}

// ChangeSection handles POST /sections/change/{id}. A blank name
// deletes the section with its items.
func (h *SectionHandler) ChangeSection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	name := formName(r)
	if name == "" {
		if err := h.st.Sections.Delete(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		slog.Info("section deleted", "section_id", id)
		empty(w)
		return
	}

	section, err := h.st.Sections.Update(r.Context(), id, store.Fields{"name": name})
	if err != nil {
		writeError(w, r, err)
		return
	}
	sv, err := sectionView(r.Context(), h.st, section)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.HTMLResponse(w, http.StatusOK, func(w io.Writer) error {
		return views.SectionDetail(w, sv)
	})
}
