// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// ItemType selects how an item is tracked within a run
type ItemType string

// Item type constants
const (
	ItemOnce ItemType = "once"
	ItemEach ItemType = "each"
)

// Valid reports whether t is one of the stored item types
func (t ItemType) Valid() bool {
	return t == ItemOnce || t == ItemEach
}

// Toggled returns the other item type
func (t ItemType) Toggled() ItemType {
	if t == ItemEach {
		return ItemOnce
	}
	return ItemEach
}

// CheckState is the state of one checkmark slot. The zero value means
// no row exists for the slot.
type CheckState string

// Checkmark state constants
const (
	StateAbsent        CheckState = ""
	StateNormal        CheckState = "normal"
	StateNotApplicable CheckState = "not-applicable"
)

// Target names are stored as VARCHAR(16)
const MaxTargetNameLength = 16

// Domain types

type Runbook struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Section struct {
	ID        int64  `json:"id"`
	RunbookID int64  `json:"runbook_id"`
	Name      string `json:"name"`
	Rank      int    `json:"rank"`
}

type Item struct {
	ID        int64    `json:"id"`
	SectionID int64    `json:"section_id"`
	Name      string   `json:"name"`
	Type      ItemType `json:"type"`
	Rank      int      `json:"rank"`
}

type Run struct {
	ID        int64     `json:"id"`
	RunbookID int64     `json:"runbook_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Target struct {
	ID    int64  `json:"id"`
	RunID int64  `json:"run_id"`
	Name  string `json:"name"`
}

type Checkmark struct {
	ID       int64      `json:"id"`
	RunID    int64      `json:"run_id"`
	ItemID   int64      `json:"item_id"`
	TargetID *int64     `json:"target_id,omitempty"` // nil for the single slot of a once item
	State    CheckState `json:"state"`
}

// Field sets

// Columns callers may pass to create and update
var (
	RunbookWritableFields   = []string{"name"}
	SectionWritableFields   = []string{"runbook_id", "name", "rank"}
	ItemWritableFields      = []string{"section_id", "name", "type", "rank"}
	RunWritableFields       = []string{"runbook_id", "name", "created_at"}
	TargetWritableFields    = []string{"run_id", "name"}
	CheckmarkWritableFields = []string{"run_id", "item_id", "target_id", "state"}
)

// Columns callers may filter and order by
var (
	RunbookQueryableFields   = []string{"id", "name"}
	SectionQueryableFields   = []string{"id", "runbook_id", "name", "rank"}
	ItemQueryableFields      = []string{"id", "section_id", "name", "type", "rank"}
	RunQueryableFields       = []string{"id", "runbook_id", "name", "created_at"}
	TargetQueryableFields    = []string{"id", "run_id", "name"}
	CheckmarkQueryableFields = []string{"id", "run_id", "item_id", "target_id", "state"}
)
