// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package checkmarks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/listen/models"
	"github.com/danielhkuo/listen/store"
)

// NoTarget is the Slots key of the null target, the one slot of a once item
const NoTarget int64 = 0

// ErrTargetRequired is returned when an each item is toggled without a target
var ErrTargetRequired = errors.New("each item requires a target")

// Slots maps a target id to its state. A missing key is absent.
type Slots map[int64]models.CheckState

// Op is a user action on a slot
type Op int

const (
	OpCheck Op = iota
	OpDisable
)

func (o Op) String() string {
	if o == OpDisable {
		return "disable"
	}
	return "check"
}

// Next is the transition table of a single slot
func Next(op Op, current models.CheckState) models.CheckState {
	switch op {
	case OpDisable:
		if current == models.StateAbsent {
			return models.StateNotApplicable
		}
		return models.StateAbsent
	default:
		switch current {
		case models.StateAbsent:
			return models.StateNormal
		case models.StateNormal:
			return models.StateAbsent
		default:
			return current
		}
	}
}

// Plan builds the store mutation for op on one slot. For once items the
// scope is every row of the item in the run, whatever its target; this
// also clears rows left behind when an item was switched from each.
func Plan(op Op, runID int64, item models.Item, target *models.Target) store.CheckmarkMutation {
	m := store.CheckmarkMutation{
		RunID:             runID,
		ItemID:            item.ID,
		KeepNotApplicable: op == OpCheck,
		InsertState:       models.StateNormal,
	}
	if op == OpDisable {
		m.InsertState = models.StateNotApplicable
	}

	switch {
	case item.Type == models.ItemOnce:
		m.AnyTarget = true
	case target != nil:
		id := target.ID
		m.TargetID = &id
	}
	return m
}

// Result is the state of one item after a toggle, with everything needed
// to render its checkbox.
type Result struct {
	Run     models.Run
	Item    models.Item
	Targets []models.Target
	Slots   Slots
}

// Engine applies check and disable against a store
type Engine struct {
	st *store.Store
}

// NewEngine creates an engine over st
func NewEngine(st *store.Store) *Engine {
	return &Engine{st: st}
}

// Check toggles a slot between absent and normal
func (e *Engine) Check(ctx context.Context, runID, itemID int64, targetID *int64) (Result, error) {
	return e.apply(ctx, OpCheck, runID, itemID, targetID)
}

// Disable toggles a slot between absent and not-applicable
func (e *Engine) Disable(ctx context.Context, runID, itemID int64, targetID *int64) (Result, error) {
	return e.apply(ctx, OpDisable, runID, itemID, targetID)
}

func (e *Engine) apply(ctx context.Context, op Op, runID, itemID int64, targetID *int64) (Result, error) {
	run, item, target, err := e.resolve(ctx, runID, itemID, targetID)
	if err != nil {
		return Result{}, err
	}
	if item.Type == models.ItemEach && target == nil {
		return Result{}, fmt.Errorf("item %d: %w", item.ID, ErrTargetRequired)
	}

	outcome, err := e.st.ApplyCheckmark(ctx, Plan(op, run.ID, item, target))
	if err != nil {
		return Result{}, fmt.Errorf("failed to %s item %d: %w", op, item.ID, err)
	}
	slog.Debug("checkmark toggled",
		"op", op.String(),
		"run_id", run.ID,
		"item_id", item.ID,
		"outcome", outcome.String(),
	)

	targets, err := e.st.TargetsOf(ctx, run.ID)
	if err != nil {
		return Result{}, err
	}
	rows, err := e.st.CheckmarksForItem(ctx, run.ID, item.ID)
	if err != nil {
		return Result{}, err
	}
	slots := Slots{}
	for _, c := range rows {
		slots[key(c.TargetID)] = c.State
	}

	return Result{Run: run, Item: item, Targets: targets, Slots: slots}, nil
}

// resolve loads the run, item and optional target and checks that they
// belong together.
func (e *Engine) resolve(ctx context.Context, runID, itemID int64, targetID *int64) (models.Run, models.Item, *models.Target, error) {
	run, err := e.st.Runs.Get(ctx, runID)
	if err != nil {
		return models.Run{}, models.Item{}, nil, err
	}
	item, err := e.st.Items.Get(ctx, itemID)
	if err != nil {
		return models.Run{}, models.Item{}, nil, err
	}
	section, err := e.st.Sections.Get(ctx, item.SectionID)
	if err != nil {
		return models.Run{}, models.Item{}, nil, err
	}
	if section.RunbookID != run.RunbookID {
		return models.Run{}, models.Item{}, nil,
			fmt.Errorf("item %d not in run %d: %w", item.ID, run.ID, store.ErrNotFound)
	}

	if targetID == nil {
		return run, item, nil, nil
	}
	target, err := e.st.Targets.Get(ctx, *targetID)
	if err != nil {
		return models.Run{}, models.Item{}, nil, err
	}
	if target.RunID != run.ID {
		return models.Run{}, models.Item{}, nil,
			fmt.Errorf("target %d not in run %d: %w", target.ID, run.ID, store.ErrNotFound)
	}
	return run, item, &target, nil
}

// RunState returns the slots of every item with a checkmark in the run
func (e *Engine) RunState(ctx context.Context, runID int64) (map[int64]Slots, error) {
	rows, err := e.st.CheckmarksForRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	state := make(map[int64]Slots)
	for _, c := range rows {
		if state[c.ItemID] == nil {
			state[c.ItemID] = Slots{}
		}
		state[c.ItemID][key(c.TargetID)] = c.State
	}
	return state, nil
}

func key(targetID *int64) int64 {
	if targetID == nil {
		return NoTarget
	}
	return *targetID
}

// FullyChecked reports whether an item is done in a run. A once item is
// done when its null slot is normal. An each item is done when every
// target is normal; not-applicable never counts and a run without
// targets has nothing left to do.
func FullyChecked(item models.Item, targets []models.Target, slots Slots) bool {
	if item.Type == models.ItemOnce {
		return slots[NoTarget] == models.StateNormal
	}
	for _, t := range targets {
		if slots[t.ID] != models.StateNormal {
			return false
		}
	}
	return true
}

// Progress counts the fully checked items among items
func Progress(items []models.Item, targets []models.Target, state map[int64]Slots) (done, total int) {
	for _, item := range items {
		if FullyChecked(item, targets, state[item.ID]) {
			done++
		}
	}
	return done, len(items)
}
