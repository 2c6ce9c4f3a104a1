// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers of the checklist UI.

# Handler Types

Each handler is a struct holding its dependencies:

  - PageHandler: Page shell for / and deep links
  - RunbookHandler: Runbook list, editor, rename and delete
  - SectionHandler: Section creation and rename
  - ItemHandler: Item creation, type toggle and rename
  - RunHandler: Runs and their targets
  - CheckmarkHandler: Check and disable
  - ShareHandler: Share code dump and load
  - AssetHandler: Static files

Handlers are created via constructor functions:

	runHandler := handlers.NewRunHandler(st, checkmarks.NewEngine(st))

# Responses

Every handler answers with an HTML fragment for htmx to swap in. Names
arrive as the name form field and are trimmed of surrounding
whitespace, so a name of only spaces counts as blank. Renaming a
section or item to a blank name deletes it and answers with an empty
fragment; runbooks and runs ignore a blank name.

# Errors

Errors map to status codes in one place:

	store.ErrNotFound                  → 404
	ErrBadInput, checkmarks.ErrTargetRequired,
	sharecode.ErrMalformed, sharecode.ErrUnsupportedVersion,
	store.ErrUnknownField              → 400
	anything else                      → 500, logged with the request id

The body is the error fragment of package views.
*/
package handlers
