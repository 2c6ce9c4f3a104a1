// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/danielhkuo/listen/db"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnknownField = errors.New("unknown field")
)

// Fields maps column names to values for create, update and query.
// Names are checked against the entity's allow-list before any SQL is built.
type Fields map[string]any

// OrderBy selects one sort column. The id column is always appended as
// a tie-breaker so results are deterministic.
type OrderBy struct {
	Column string
	Desc   bool
}

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// table describes one entity kind
type table[T any] struct {
	name      string
	singular  string
	columns   []string // select list, id first
	writable  []string
	queryable []string
	scan      func(scanner) (T, error)
}

// Repo performs generic row operations for one entity kind
type Repo[T any] struct {
	q       querier
	dialect db.Dialect
	t       table[T]
}

func newRepo[T any](q querier, dialect db.Dialect, t table[T]) *Repo[T] {
	return &Repo[T]{q: q, dialect: dialect, t: t}
}

// params collects bind arguments and hands out matching placeholders
type params struct {
	dialect db.Dialect
	args    []any
}

func (p *params) add(v any) string {
	p.args = append(p.args, v)
	return p.dialect.Placeholder(len(p.args))
}

func (r *Repo[T]) selectList() string {
	return strings.Join(r.t.columns, ", ")
}

// checkFields returns the field names sorted, or ErrUnknownField
func checkFields(fields Fields, allowed []string, entity string) ([]string, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		if !slices.Contains(allowed, name) {
			return nil, fmt.Errorf("%s.%s: %w", entity, name, ErrUnknownField)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Create inserts a row and returns it as stored
func (r *Repo[T]) Create(ctx context.Context, fields Fields) (T, error) {
	var zero T
	names, err := checkFields(fields, r.t.writable, r.t.singular)
	if err != nil {
		return zero, err
	}

	p := &params{dialect: r.dialect}
	var query string
	if len(names) == 0 {
		query = fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING %s", r.t.name, r.selectList())
	} else {
		holders := make([]string, len(names))
		for i, name := range names {
			holders[i] = p.add(fields[name])
		}
		query = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
			r.t.name, strings.Join(names, ", "), strings.Join(holders, ", "), r.selectList())
	}

	row, err := r.t.scan(r.q.QueryRowContext(ctx, query, p.args...))
	if err != nil {
		return zero, fmt.Errorf("failed to create %s: %w", r.t.singular, err)
	}
	return row, nil
}

// Get fetches one row by id
func (r *Repo[T]) Get(ctx context.Context, id int64) (T, error) {
	p := &params{dialect: r.dialect}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = %s", r.selectList(), r.t.name, p.add(id))

	row, err := r.t.scan(r.q.QueryRowContext(ctx, query, p.args...))
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, fmt.Errorf("%s %d: %w", r.t.singular, id, ErrNotFound)
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to get %s %d: %w", r.t.singular, id, err)
	}
	return row, nil
}

// All returns every row in insertion order
func (r *Repo[T]) All(ctx context.Context) ([]T, error) {
	return r.Query(ctx, nil, OrderBy{})
}

// Query returns the rows matching all equality filters (a nil value
// matches NULL), sorted by order and then id.
func (r *Repo[T]) Query(ctx context.Context, filter Fields, order OrderBy) ([]T, error) {
	names, err := checkFields(filter, r.t.queryable, r.t.singular)
	if err != nil {
		return nil, err
	}
	if order.Column != "" && !slices.Contains(r.t.queryable, order.Column) {
		return nil, fmt.Errorf("%s.%s: %w", r.t.singular, order.Column, ErrUnknownField)
	}

	p := &params{dialect: r.dialect}
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", r.selectList(), r.t.name)
	for i, name := range names {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		if isNull(filter[name]) {
			fmt.Fprintf(&b, "%s IS NULL", name)
		} else {
			fmt.Fprintf(&b, "%s = %s", name, p.add(filter[name]))
		}
	}
	b.WriteString(" ORDER BY ")
	if order.Column != "" && order.Column != "id" {
		b.WriteString(order.Column)
		if order.Desc {
			b.WriteString(" DESC")
		} else {
			b.WriteString(" ASC")
		}
		b.WriteString(", ")
	}
	if order.Column == "id" && order.Desc {
		b.WriteString("id DESC")
	} else {
		b.WriteString("id ASC")
	}

	rows, err := r.q.QueryContext(ctx, b.String(), p.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", r.t.name, err)
	}
	defer rows.Close()

	result := []T{}
	for rows.Next() {
		row, err := r.t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", r.t.singular, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", r.t.name, err)
	}
	return result, nil
}

// Update sets the given fields and returns the row as stored
func (r *Repo[T]) Update(ctx context.Context, id int64, fields Fields) (T, error) {
	var zero T
	names, err := checkFields(fields, r.t.writable, r.t.singular)
	if err != nil {
		return zero, err
	}
	if len(names) == 0 {
		return r.Get(ctx, id)
	}

	p := &params{dialect: r.dialect}
	sets := make([]string, len(names))
	for i, name := range names {
		sets[i] = name + " = " + p.add(fields[name])
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = %s RETURNING %s",
		r.t.name, strings.Join(sets, ", "), p.add(id), r.selectList())

	row, err := r.t.scan(r.q.QueryRowContext(ctx, query, p.args...))
	if errors.Is(err, sql.ErrNoRows) {
		return zero, fmt.Errorf("%s %d: %w", r.t.singular, id, ErrNotFound)
	}
	if err != nil {
		return zero, fmt.Errorf("failed to update %s %d: %w", r.t.singular, id, err)
	}
	return row, nil
}

// Delete removes a row; owned rows go with it through ON DELETE CASCADE
func (r *Repo[T]) Delete(ctx context.Context, id int64) error {
	p := &params{dialect: r.dialect}
	query := fmt.Sprintf("DELETE FROM %s WHERE id = %s", r.t.name, p.add(id))

	res, err := r.q.ExecContext(ctx, query, p.args...)
	if err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", r.t.singular, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", r.t.singular, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", r.t.singular, id, ErrNotFound)
	}
	return nil
}

// Count returns the number of rows matching the equality filter
func (r *Repo[T]) Count(ctx context.Context, filter Fields) (int, error) {
	names, err := checkFields(filter, r.t.queryable, r.t.singular)
	if err != nil {
		return 0, err
	}

	p := &params{dialect: r.dialect}
	query := "SELECT COUNT(*) FROM " + r.t.name
	for i, name := range names {
		if i == 0 {
			query += " WHERE "
		} else {
			query += " AND "
		}
		if isNull(filter[name]) {
			query += name + " IS NULL"
		} else {
			query += name + " = " + p.add(filter[name])
		}
	}

	var n int
	if err := r.q.QueryRowContext(ctx, query, p.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", r.t.name, err)
	}
	return n, nil
}

// NextRank returns the rank that appends a new row after every sibling
// sharing parentColumn = parentID.
func (r *Repo[T]) NextRank(ctx context.Context, parentColumn string, parentID int64) (int, error) {
	if !slices.Contains(r.t.queryable, "rank") {
		return 0, fmt.Errorf("%s.rank: %w", r.t.singular, ErrUnknownField)
	}
	if !slices.Contains(r.t.queryable, parentColumn) {
		return 0, fmt.Errorf("%s.%s: %w", r.t.singular, parentColumn, ErrUnknownField)
	}

	p := &params{dialect: r.dialect}
	query := fmt.Sprintf("SELECT COALESCE(MAX(rank), 0) + 1 FROM %s WHERE %s = %s",
		r.t.name, parentColumn, p.add(parentID))

	var rank int
	if err := r.q.QueryRowContext(ctx, query, p.args...).Scan(&rank); err != nil {
		return 0, fmt.Errorf("failed to compute rank for %s: %w", r.t.singular, err)
	}
	return rank, nil
}

func isNull(v any) bool {
	if v == nil {
		return true
	}
	if p, ok := v.(*int64); ok && p == nil {
		return true
	}
	return false
}
