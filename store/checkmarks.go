// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/listen/models"
)

// CheckmarkMutation is one toggle of a checkmark slot. The rows in scope
// are those of (RunID, ItemID) and, unless AnyTarget is set, TargetID
// (nil meaning the null target).
type CheckmarkMutation struct {
	RunID    int64
	ItemID   int64
	TargetID *int64

	// AnyTarget widens the scope to every row of (RunID, ItemID)
	AnyTarget bool

	// KeepNotApplicable excludes not-applicable rows from the delete
	KeepNotApplicable bool

	// InsertState is written when nothing was deleted and no row is in scope
	InsertState models.CheckState
}

// Outcome reports what a mutation did
type Outcome int

const (
	Unchanged Outcome = iota
	Deleted
	Inserted
)

func (o Outcome) String() string {
	switch o {
	case Deleted:
		return "deleted"
	case Inserted:
		return "inserted"
	default:
		return "unchanged"
	}
}

// ApplyCheckmark deletes the rows in scope, or inserts a row when the
// delete matched nothing and the scope is empty. Both statements run in
// one transaction so a toggle is never half applied.
func (s *Store) ApplyCheckmark(ctx context.Context, m CheckmarkMutation) (Outcome, error) {
	outcome := Unchanged
	err := s.WithTx(ctx, func(tx *Store) error {
		p := &params{dialect: tx.dialect}
		query := "DELETE FROM checkmarks WHERE " + tx.slotScope(p, m)
		if m.KeepNotApplicable {
			query += " AND state <> " + p.add(string(models.StateNotApplicable))
		}

		res, err := tx.q.ExecContext(ctx, query, p.args...)
		if err != nil {
			return fmt.Errorf("failed to delete checkmark: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to delete checkmark: %w", err)
		}
		if n > 0 {
			outcome = Deleted
			return nil
		}

		p = &params{dialect: tx.dialect}
		var target any
		if m.TargetID != nil {
			target = *m.TargetID
		}
		query = fmt.Sprintf(`INSERT INTO checkmarks (run_id, item_id, target_id, state)
			SELECT CAST(%s AS INTEGER), CAST(%s AS INTEGER), CAST(%s AS INTEGER), CAST(%s AS TEXT)
			WHERE NOT EXISTS (SELECT 1 FROM checkmarks WHERE %s)`,
			p.add(m.RunID), p.add(m.ItemID), p.add(target), p.add(string(m.InsertState)),
			tx.slotScope(p, m))

		res, err = tx.q.ExecContext(ctx, query, p.args...)
		if err != nil {
			return fmt.Errorf("failed to insert checkmark: %w", err)
		}
		n, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to insert checkmark: %w", err)
		}
		if n > 0 {
			outcome = Inserted
		}
		return nil
	})
	return outcome, err
}

func (s *Store) slotScope(p *params, m CheckmarkMutation) string {
	scope := "run_id = " + p.add(m.RunID) + " AND item_id = " + p.add(m.ItemID)
	switch {
	case m.AnyTarget:
	case m.TargetID == nil:
		scope += " AND target_id IS NULL"
	default:
		scope += " AND target_id = " + p.add(*m.TargetID)
	}
	return scope
}

// CheckmarksForRun returns every checkmark recorded in a run
func (s *Store) CheckmarksForRun(ctx context.Context, runID int64) ([]models.Checkmark, error) {
	return s.Checkmarks.Query(ctx, Fields{"run_id": runID}, OrderBy{})
}

// CheckmarksForItem returns the checkmarks of one item within a run
func (s *Store) CheckmarksForItem(ctx context.Context, runID, itemID int64) ([]models.Checkmark, error) {
	return s.Checkmarks.Query(ctx, Fields{"run_id": runID, "item_id": itemID}, OrderBy{})
}
