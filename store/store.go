// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/listen/db"
	"github.com/danielhkuo/listen/models"
)

// Store is the entity access layer. It is safe for concurrent use; the
// underlying *sql.DB pools connections and each call acquires and
// releases one.
type Store struct {
	conn    *sql.DB // nil when bound to a transaction
	q       querier
	dialect db.Dialect

	Runbooks   *Repo[models.Runbook]
	Sections   *Repo[models.Section]
	Items      *Repo[models.Item]
	Runs       *Repo[models.Run]
	Targets    *Repo[models.Target]
	Checkmarks *Repo[models.Checkmark]
}

// New wraps an open database handle
func New(conn *sql.DB, dialect db.Dialect) *Store {
	return bind(conn, conn, dialect)
}

func bind(conn *sql.DB, q querier, dialect db.Dialect) *Store {
	return &Store{
		conn:       conn,
		q:          q,
		dialect:    dialect,
		Runbooks:   newRepo(q, dialect, runbooks),
		Sections:   newRepo(q, dialect, sections),
		Items:      newRepo(q, dialect, items),
		Runs:       newRepo(q, dialect, runs),
		Targets:    newRepo(q, dialect, targets),
		Checkmarks: newRepo(q, dialect, checkmarks),
	}
}

// Dialect reports the SQL dialect of the underlying database
func (s *Store) Dialect() db.Dialect {
	return s.dialect
}

// WithTx runs fn against a store bound to one transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
// Calls nested inside fn reuse the same transaction.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	if s.conn == nil {
		return fn(s)
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(bind(nil, tx, s.dialect)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
