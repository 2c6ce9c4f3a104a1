// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielhkuo/listen/checkmarks"
	"github.com/danielhkuo/listen/middleware"
	"github.com/danielhkuo/listen/sharecode"
	"github.com/danielhkuo/listen/store"
)

// ErrBadInput marks a request the client has to fix
var ErrBadInput = errors.New("bad input")

// pathID parses a numeric path value
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s %q is not an id: %w", name, raw, ErrBadInput)
	}
	return id, nil
}

// optionalPathID is pathID for a path value that may be missing
func optionalPathID(r *http.Request, name string) (*int64, error) {
	if r.PathValue(name) == "" {
		return nil, nil
	}
	id, err := pathID(r, name)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// formName returns the trimmed name form field
func formName(r *http.Request) string {
	return strings.TrimSpace(r.FormValue("name"))
}

// requireName returns the name form field or ErrBadInput when it is blank
func requireName(r *http.Request) (string, error) {
	name := formName(r)
	if name == "" {
		return "", fmt.Errorf("name is required: %w", ErrBadInput)
	}
	return name, nil
}

// writeError maps err to a status code and writes the error fragment.
// Unexpected errors are logged and hidden from the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
	case errors.Is(err, ErrBadInput):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, checkmarks.ErrTargetRequired):
		middleware.ErrorResponse(w, http.StatusBadRequest, "A target is required for this item")
	case errors.Is(err, sharecode.ErrUnsupportedVersion):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unsupported share code version")
	case errors.Is(err, sharecode.ErrMalformed):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid share code")
	case errors.Is(err, store.ErrUnknownField):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown field")
	default:
		slog.Error("request failed",
			"request_id", middleware.RequestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}

// empty answers with an empty fragment, which removes the swap target
func empty(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
}
