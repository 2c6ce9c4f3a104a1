// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/listen/middleware"
	"github.com/danielhkuo/listen/models"
	"github.com/danielhkuo/listen/store"
	"github.com/danielhkuo/listen/views"
)

type ItemHandler struct {
	st *store.Store
}

func NewItemHandler(st *store.Store) *ItemHandler {
	return &ItemHandler{st: st}
}

// NewItem handles POST /items/new/{section_id}. The fresh input keeps
// focus so items can be typed one after another.
func (h *ItemHandler) NewItem(w http.ResponseWriter, r *http.Request) {
	sectionID, err := pathID(r, "section_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	name, err := requireName(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.st.AddItem(r.Context(), sectionID, name, models.ItemOnce)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("item created", "item_id", item.ID, "section_id", sectionID)

	middleware.HTMLResponse(w, http.StatusOK, func(w io.Writer) error {
		if err := views.ItemDetail(w, item); err != nil {
			return err
		}
		return views.NewInput(w, views.NewItemInput(sectionID, true))
	})
}

// ToggleItem handles POST /items/toggle/{id}. Checkmarks of the item
// are kept as they are.
func (h *ItemHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var item models.Item
	err = h.st.WithTx(r.Context(), func(tx *store.Store) error {
		current, err := tx.Items.Get(r.Context(), id)
		if err != nil {
			return err
		}
		item, err = tx.Items.Update(r.Context(), id, store.Fields{"type": string(current.Type.Toggled())})
		return err
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.HTMLResponse(w, http.StatusOK, func(w io.Writer) error {
		return views.ItemDetail(w, item)
	})
}

// ChangeItem handles POST /items/change/{id}. A blank name deletes the
// item.
func (h *ItemHandler) ChangeItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	name := formName(r)
	if name == "" {
		if err := h.st.Items.Delete(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		slog.Info("item deleted", "item_id", id)
		empty(w)
		return
	}

	item, err := h.st.Items.Update(r.Context(), id, store.Fields{"name": name})
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.HTMLResponse(w, http.StatusOK, func(w io.Writer) error {
		return views.ItemDetail(w, item)
	})
}
