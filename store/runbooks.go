// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/danielhkuo/listen/models"
	"github.com/danielhkuo/listen/sharecode"
)

// SectionsOf returns a runbook's sections in display order
func (s *Store) SectionsOf(ctx context.Context, runbookID int64) ([]models.Section, error) {
	return s.Sections.Query(ctx, Fields{"runbook_id": runbookID}, OrderBy{Column: "rank"})
}

// ItemsOf returns a section's items in display order
func (s *Store) ItemsOf(ctx context.Context, sectionID int64) ([]models.Item, error) {
	return s.Items.Query(ctx, Fields{"section_id": sectionID}, OrderBy{Column: "rank"})
}

// RunsOf returns a runbook's runs, newest first
func (s *Store) RunsOf(ctx context.Context, runbookID int64) ([]models.Run, error) {
	return s.Runs.Query(ctx, Fields{"runbook_id": runbookID}, OrderBy{Column: "id", Desc: true})
}

// TargetsOf returns a run's targets in creation order
func (s *Store) TargetsOf(ctx context.Context, runID int64) ([]models.Target, error) {
	return s.Targets.Query(ctx, Fields{"run_id": runID}, OrderBy{})
}

// AddSection appends a section to a runbook
func (s *Store) AddSection(ctx context.Context, runbookID int64, name string) (models.Section, error) {
	var section models.Section
	err := s.WithTx(ctx, func(tx *Store) error {
		if _, err := tx.Runbooks.Get(ctx, runbookID); err != nil {
			return err
		}
		rank, err := tx.Sections.NextRank(ctx, "runbook_id", runbookID)
		if err != nil {
			return err
		}
		section, err = tx.Sections.Create(ctx, Fields{"runbook_id": runbookID, "name": name, "rank": rank})
		return err
	})
	return section, err
}

// AddItem appends an item to a section
func (s *Store) AddItem(ctx context.Context, sectionID int64, name string, itemType models.ItemType) (models.Item, error) {
	var item models.Item
	err := s.WithTx(ctx, func(tx *Store) error {
		if _, err := tx.Sections.Get(ctx, sectionID); err != nil {
			return err
		}
		rank, err := tx.Items.NextRank(ctx, "section_id", sectionID)
		if err != nil {
			return err
		}
		item, err = tx.Items.Create(ctx, Fields{
			"section_id": sectionID,
			"name":       name,
			"type":       string(itemType),
			"rank":       rank,
		})
		return err
	})
	return item, err
}

// AddRun starts a run of a runbook
func (s *Store) AddRun(ctx context.Context, runbookID int64, name string) (models.Run, error) {
	if _, err := s.Runbooks.Get(ctx, runbookID); err != nil {
		return models.Run{}, err
	}
	return s.Runs.Create(ctx, Fields{"runbook_id": runbookID, "name": name, "created_at": time.Now().UTC()})
}

// AddTarget adds a lane to a run
func (s *Store) AddTarget(ctx context.Context, runID int64, name string) (models.Target, error) {
	if _, err := s.Runs.Get(ctx, runID); err != nil {
		return models.Target{}, err
	}
	return s.Targets.Create(ctx, Fields{"run_id": runID, "name": name})
}

// DumpRunbook reads a runbook's portable structure
func (s *Store) DumpRunbook(ctx context.Context, runbookID int64) (sharecode.Runbook, error) {
	runbook, err := s.Runbooks.Get(ctx, runbookID)
	if err != nil {
		return sharecode.Runbook{}, err
	}

	sections, err := s.SectionsOf(ctx, runbookID)
	if err != nil {
		return sharecode.Runbook{}, err
	}

	dump := sharecode.Runbook{Name: runbook.Name, Sections: make([]sharecode.Section, 0, len(sections))}
	for _, section := range sections {
		items, err := s.ItemsOf(ctx, section.ID)
		if err != nil {
			return sharecode.Runbook{}, err
		}
		ds := sharecode.Section{Name: section.Name, Items: make([]sharecode.Item, 0, len(items))}
		for _, item := range items {
			ds.Items = append(ds.Items, sharecode.Item{Name: item.Name, Type: item.Type})
		}
		dump.Sections = append(dump.Sections, ds)
	}
	return dump, nil
}

// LoadRunbook creates a new runbook with the given structure. It never
// touches existing runbooks; loading the same dump twice yields two.
func (s *Store) LoadRunbook(ctx context.Context, dump sharecode.Runbook) (models.Runbook, error) {
	var runbook models.Runbook
	err := s.WithTx(ctx, func(tx *Store) error {
		var err error
		runbook, err = tx.Runbooks.Create(ctx, Fields{"name": dump.Name})
		if err != nil {
			return err
		}
		for i, ds := range dump.Sections {
			section, err := tx.Sections.Create(ctx, Fields{"runbook_id": runbook.ID, "name": ds.Name, "rank": i + 1})
			if err != nil {
				return err
			}
			for j, di := range ds.Items {
				_, err := tx.Items.Create(ctx, Fields{
					"section_id": section.ID,
					"name":       di.Name,
					"type":       string(di.Type),
					"rank":       j + 1,
				})
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return models.Runbook{}, fmt.Errorf("failed to load runbook: %w", err)
	}
	return runbook, nil
}

// ExampleRunbook is inserted by Seed
var ExampleRunbook = sharecode.Runbook{
	Name: "Packliste",
	Sections: []sharecode.Section{
		{Name: "Section One", Items: []sharecode.Item{
			{Name: "Item #1", Type: models.ItemOnce},
			{Name: "Item #2", Type: models.ItemOnce},
		}},
		{Name: "Section Two", Items: []sharecode.Item{
			{Name: "Item #3", Type: models.ItemOnce},
		}},
	},
}

// Seed inserts ExampleRunbook when no runbook exists. It reports
// whether anything was inserted.
func (s *Store) Seed(ctx context.Context) (bool, error) {
	n, err := s.Runbooks.Count(ctx, nil)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	runbook, err := s.LoadRunbook(ctx, ExampleRunbook)
	if err != nil {
		return false, err
	}
	if _, err := s.AddRun(ctx, runbook.ID, "Tirol 2024"); err != nil {
		return false, err
	}
	return true, nil
}
