// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/danielhkuo/listen/checkmarks"
	"github.com/danielhkuo/listen/middleware"
	"github.com/danielhkuo/listen/views"
)

type CheckmarkHandler struct {
	engine *checkmarks.Engine
}

func NewCheckmarkHandler(engine *checkmarks.Engine) *CheckmarkHandler {
	return &CheckmarkHandler{engine: engine}
}

type toggleFunc func(ctx context.Context, runID, itemID int64, targetID *int64) (checkmarks.Result, error)

// Check handles POST /checkmarks/check/{run_id}/{item_id}[/{target_id}]
func (h *CheckmarkHandler) Check(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.engine.Check)
}

// Disable handles POST /checkmarks/disable/{run_id}/{item_id}[/{target_id}]
func (h *CheckmarkHandler) Disable(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.engine.Disable)
}

func (h *CheckmarkHandler) toggle(w http.ResponseWriter, r *http.Request, fn toggleFunc) {
	runID, err := pathID(r, "run_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	itemID, err := pathID(r, "item_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	targetID, err := optionalPathID(r, "target_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := fn(r.Context(), runID, itemID, targetID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.HTMLResponse(w, http.StatusOK, func(w io.Writer) error {
		return views.ItemCheckbox(w, views.Checkbox{
			Run:     res.Run,
			Item:    res.Item,
			Targets: res.Targets,
			Slots:   res.Slots,
		})
	})
}
