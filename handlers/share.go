// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/listen/middleware"
	"github.com/danielhkuo/listen/sharecode"
	"github.com/danielhkuo/listen/store"
	"github.com/danielhkuo/listen/views"
)

type ShareHandler struct {
	st *store.Store
}

func NewShareHandler(st *store.Store) *ShareHandler {
	return &ShareHandler{st: st}
}

// DumpRunbook handles GET /runbooks/dump/{id}
func (h *ShareHandler) DumpRunbook(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	dump, err := h.st.DumpRunbook(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	code, err := sharecode.Encode(dump)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.HTMLResponse(w, http.StatusOK, func(w io.Writer) error {
		return views.ShareCode(w, id, code)
	})
}

// LoadRunbook handles POST /runbooks/load and redirects to the copy
func (h *ShareHandler) LoadRunbook(w http.ResponseWriter, r *http.Request) {
	dump, err := sharecode.Decode(r.FormValue("code"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	rb, err := h.st.LoadRunbook(r.Context(), dump)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("runbook loaded", "runbook_id", rb.ID, "sections", len(dump.Sections))

	http.Redirect(w, r, fmt.Sprintf("/runbooks/%d", rb.ID), http.StatusSeeOther)
}
