// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB, dialect Dialect) error {
	for _, stmt := range Statements(SchemaSQL(dialect)) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Statements splits DDL into single statements. Whole-line "--" comments
// are dropped first so they may contain semicolons.
func Statements(ddl string) []string {
	var b strings.Builder
	for _, line := range strings.Split(ddl, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	var stmts []string
	for _, stmt := range strings.Split(b.String(), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// SchemaSQL returns the DDL for the given dialect
func SchemaSQL(dialect Dialect) string {
	return strings.ReplaceAll(schema, "{{serial}}", dialect.serial())
}

const schema = `
-- Runbooks
CREATE TABLE IF NOT EXISTS runbooks (
    id {{serial}},
    name TEXT NOT NULL
);

-- Sections
CREATE TABLE IF NOT EXISTS sections (
    id {{serial}},
    runbook_id INTEGER NOT NULL REFERENCES runbooks(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    rank INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_sections_runbook_id ON sections(runbook_id, rank);

-- Items
CREATE TABLE IF NOT EXISTS items (
    id {{serial}},
    section_id INTEGER NOT NULL REFERENCES sections(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    type TEXT NOT NULL DEFAULT 'once' CHECK (type IN ('once', 'each')),
    rank INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_items_section_id ON items(section_id, rank);

-- Runs
CREATE TABLE IF NOT EXISTS runs (
    id {{serial}},
    runbook_id INTEGER NOT NULL REFERENCES runbooks(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_runs_runbook_id ON runs(runbook_id);

-- Targets
CREATE TABLE IF NOT EXISTS targets (
    id {{serial}},
    run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    name VARCHAR(16) NOT NULL CHECK (length(name) <= 16)
);

CREATE INDEX IF NOT EXISTS idx_targets_run_id ON targets(run_id);

-- Checkmarks
CREATE TABLE IF NOT EXISTS checkmarks (
    id {{serial}},
    run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    item_id INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
    target_id INTEGER REFERENCES targets(id) ON DELETE CASCADE,
    state TEXT NOT NULL DEFAULT 'normal' CHECK (state IN ('normal', 'not-applicable'))
);

-- One row per slot, the null target of a once item is slot 0
CREATE UNIQUE INDEX IF NOT EXISTS idx_checkmarks_slot ON checkmarks(run_id, item_id, COALESCE(target_id, 0));
CREATE INDEX IF NOT EXISTS idx_checkmarks_item_id ON checkmarks(item_id);
CREATE INDEX IF NOT EXISTS idx_checkmarks_target_id ON checkmarks(target_id)
`
