// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Drivers

Open picks a database/sql driver from the configured database type:

  - sqlite:   modernc.org/sqlite (pure Go), foreign keys enabled via DSN pragma
  - postgres: github.com/lib/pq
  - pgx:      github.com/jackc/pgx/v5/stdlib

	conn, dialect, err := db.Open(ctx, cfg)

The returned Dialect tells the store which bind parameter syntax to use.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn, dialect); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - runbooks:   id, name
  - sections:   id, runbook_id, name, rank
  - items:      id, section_id, name, type (once|each), rank
  - runs:       id, runbook_id, name, created_at
  - targets:    id, run_id, name (at most 16 characters)
  - checkmarks: id, run_id, item_id, target_id (nullable), state (normal|not-applicable)

# Relationships

	runbooks 1──* sections 1──* items
	runbooks 1──* runs 1──* targets
	runs, items, targets 1──* checkmarks

All foreign keys use ON DELETE CASCADE.

# Indexes

  - checkmarks (run_id, item_id, COALESCE(target_id, 0)) unique: one row per slot
  - sections (runbook_id, rank), items (section_id, rank): ordered children
  - runs.runbook_id, targets.run_id, checkmarks.item_id, checkmarks.target_id
*/
package db
