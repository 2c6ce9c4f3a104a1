// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status,
duration_ms). Each request gets a uuid, sent back in X-Request-ID and
readable from the context:

	id := middleware.RequestID(r.Context())

# HTML Helpers

Handlers answer with HTML fragments. HTMLResponse renders into a buffer
and only writes once rendering succeeded:

	middleware.HTMLResponse(w, http.StatusOK, func(w io.Writer) error {
		return views.RunHeading(w, run)
	})

ErrorResponse writes the error fragment of the views package:

	middleware.ErrorResponse(w, http.StatusNotFound, "Run not found")

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
