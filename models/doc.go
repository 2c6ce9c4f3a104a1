// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain types stored by listen.

# Entities

  - Runbook: a named, reusable checklist template
  - Section: an ordered group of items inside a runbook
  - Item: one checklist entry, either "once" or "each"
  - Run: one instantiation of a runbook
  - Target: a lane inside a run that "each" items are tracked against
  - Checkmark: the completion fact for one (run, item, target) slot

# Relationships

	runbook 1──* section 1──* item
	runbook 1──* run 1──* target
	run, item, target 1──* checkmark

Every edge cascades on delete.

# Constants

Item types:

	ItemOnce = "once"
	ItemEach = "each"

Checkmark states:

	StateNormal        = "normal"
	StateNotApplicable = "not-applicable"

# Field Sets

Each entity declares the columns callers may write (WritableFields) and
filter or sort on (QueryableFields). The store rejects any other name,
so field names never flow from request input into SQL text.
*/
package models
