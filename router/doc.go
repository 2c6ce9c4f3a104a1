// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes of the listen server.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, cfg)

# Endpoints

Health and pages:

	GET /health
	GET /                  - Page shell loading /runbooks
	GET /_/runbooks/{id}   - Page shell loading a runbook
	GET /_/runs/{id}       - Page shell loading a run

Runbooks:

	GET  /runbooks              - List with runs
	POST /runbooks/new          - Create
	GET  /runbooks/{id}         - Editor
	POST /runbooks/change/{id}  - Rename
	POST /runbooks/delete/{id}  - Delete with everything below it
	GET  /runbooks/dump/{id}    - Share code prompt
	POST /runbooks/load         - Copy from a share code

Sections and items:

	POST /sections/new/{runbook_id}
	POST /sections/change/{id}
	POST /items/new/{section_id}
	POST /items/toggle/{id}
	POST /items/change/{id}

Runs and targets:

	GET  /runs
	POST /runs/new/{runbook_id}
	GET  /runs/{id}
	POST /runs/change/{id}
	POST /runs/delete/{id}
	POST /targets/new/{run_id}

Checkmarks (target only for each items):

	POST /checkmarks/check/{run_id}/{item_id}[/{target_id}]
	POST /checkmarks/disable/{run_id}/{item_id}[/{target_id}]

Static files from the assets directory:

	GET /vendor/htmx.min.js
	GET /vendor/Satisfy-Regular.woff2
	GET /favicon.ico

All routes but /health and the static files are wrapped in
middleware.WithLogging.
*/
package router
