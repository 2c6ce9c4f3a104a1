// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package checkmarks implements the state machine behind checking items
off in a run.

# Slots

Every (run, item, target) triple is a slot holding one of three states:
absent (no row), normal, or not-applicable. A once item has a single
slot with the null target, keyed as NoTarget in Slots. An each item has
one slot per target of the run.

# Operations

Two operations act on a slot. Check flips between absent and normal and
leaves not-applicable alone. Disable flips between absent and
not-applicable and clears normal:

	             absent          normal    not-applicable
	check        normal          absent    not-applicable
	disable      not-applicable  absent    absent

Next is the pure table. Plan turns an operation into a
store.CheckmarkMutation, and Engine runs it against the store:

	engine := checkmarks.NewEngine(st)
	res, err := engine.Check(ctx, runID, itemID, &targetID)

For once items the mutation covers every row of the item in the run,
including rows left behind by an earlier switch from each to once.

# Completion

FullyChecked decides whether an item is done: the null slot is normal
for once items, every target is normal for each items. Progress counts
done items for the run heading.
*/
package checkmarks
