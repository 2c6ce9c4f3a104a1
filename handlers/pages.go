// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/danielhkuo/listen/middleware"
	"github.com/danielhkuo/listen/views"
)

// PageHandler serves the page shell. Every other route answers with
// fragments that the shell loads into #container.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Index handles GET /
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.shell(w, "/runbooks")
}

// DirectRunbook handles GET /_/runbooks/{id}
func (h *PageHandler) DirectRunbook(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.shell(w, fmt.Sprintf("/runbooks/%d", id))
}

// DirectRun handles GET /_/runs/{id}
func (h *PageHandler) DirectRun(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.shell(w, fmt.Sprintf("/runs/%d", id))
}

func (h *PageHandler) shell(w http.ResponseWriter, autoload string) {
	middleware.HTMLResponse(w, http.StatusOK, func(w io.Writer) error {
		return views.Index(w, autoload)
	})
}
