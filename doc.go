// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the listen server.

listen keeps reusable checklists ("runbooks") of sections and items, and
tracks runs of them. Items are either checked once per run or once per
target of the run ("each" items, e.g. one jacket per person). The UI is
a single page whose fragments are rendered on the server and swapped in
with htmx.

# Starting the Server

Without configuration the server uses a SQLite file in the working
directory:

	go run . -seed

With PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run .

# Configuration

Settings come from flags, then environment variables, then a .env file
in the working directory:

  - PORT (-p): Server port (default: 8080)
  - DATABASE_TYPE (-t): sqlite, postgres (lib/pq) or pgx (default: sqlite)
  - DATABASE_URL (-d): DSN or SQLite path (default: listen.db for sqlite)
  - ASSETS_DIR (-assets): Directory with htmx.min.js, the font and favicon
  - SEED (-seed): Insert an example runbook into an empty database
  - LOG_LEVEL: debug, info, warn or error

See package cliparse for the connection pool settings.

# Architecture

  - handlers: HTTP request handlers (runbooks, sections, items, runs, checkmarks, share codes)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Request logging and HTML response helpers
  - views: HTML fragments
  - checkmarks: Check and disable state machine
  - store: Entity access over database/sql
  - sharecode: Share code encoding
  - models: Entity types
  - db: Connection and schema
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
