// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/danielhkuo/listen/cliparse"
)

// AssetHandler serves the static files the page shell references
type AssetHandler struct {
	dir string
}

func NewAssetHandler(cfg cliparse.Config) *AssetHandler {
	return &AssetHandler{dir: cfg.AssetsDir}
}

// File returns a handler for one fixed file of the assets directory
func (h *AssetHandler) File(name string) http.HandlerFunc {
	path := filepath.Join(h.dir, filepath.Base(name))
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, path)
	}
}
