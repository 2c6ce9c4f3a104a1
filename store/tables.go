// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/listen/models"
)

var runbooks = table[models.Runbook]{
	name:      "runbooks",
	singular:  "runbook",
	columns:   []string{"id", "name"},
	writable:  models.RunbookWritableFields,
	queryable: models.RunbookQueryableFields,
	scan: func(s scanner) (models.Runbook, error) {
		var rb models.Runbook
		err := s.Scan(&rb.ID, &rb.Name)
		return rb, err
	},
}

var sections = table[models.Section]{
	name:      "sections",
	singular:  "section",
	columns:   []string{"id", "runbook_id", "name", "rank"},
	writable:  models.SectionWritableFields,
	queryable: models.SectionQueryableFields,
	scan: func(s scanner) (models.Section, error) {
		var sec models.Section
		err := s.Scan(&sec.ID, &sec.RunbookID, &sec.Name, &sec.Rank)
		return sec, err
	},
}

var items = table[models.Item]{
	name:      "items",
	singular:  "item",
	columns:   []string{"id", "section_id", "name", "type", "rank"},
	writable:  models.ItemWritableFields,
	queryable: models.ItemQueryableFields,
	scan: func(s scanner) (models.Item, error) {
		var it models.Item
		var itemType string
		err := s.Scan(&it.ID, &it.SectionID, &it.Name, &itemType, &it.Rank)
		it.Type = models.ItemType(itemType)
		return it, err
	},
}

var runs = table[models.Run]{
	name:      "runs",
	singular:  "run",
	columns:   []string{"id", "runbook_id", "name", "created_at"},
	writable:  models.RunWritableFields,
	queryable: models.RunQueryableFields,
	scan: func(s scanner) (models.Run, error) {
		var run models.Run
		err := s.Scan(&run.ID, &run.RunbookID, &run.Name, timestamp{&run.CreatedAt})
		return run, err
	},
}

var targets = table[models.Target]{
	name:      "targets",
	singular:  "target",
	columns:   []string{"id", "run_id", "name"},
	writable:  models.TargetWritableFields,
	queryable: models.TargetQueryableFields,
	scan: func(s scanner) (models.Target, error) {
		var tg models.Target
		err := s.Scan(&tg.ID, &tg.RunID, &tg.Name)
		return tg, err
	},
}

var checkmarks = table[models.Checkmark]{
	name:      "checkmarks",
	singular:  "checkmark",
	columns:   []string{"id", "run_id", "item_id", "target_id", "state"},
	writable:  models.CheckmarkWritableFields,
	queryable: models.CheckmarkQueryableFields,
	scan: func(s scanner) (models.Checkmark, error) {
		var cm models.Checkmark
		var targetID sql.NullInt64
		var state string
		err := s.Scan(&cm.ID, &cm.RunID, &cm.ItemID, &targetID, &state)
		if targetID.Valid {
			cm.TargetID = &targetID.Int64
		}
		cm.State = models.CheckState(state)
		return cm, err
	},
}

// timestamp scans TIMESTAMP columns. Postgres drivers return time.Time;
// sqlite may hand back text when the declared type is not visible
// (for example through RETURNING).
type timestamp struct {
	t *time.Time
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	time.RFC3339Nano,
}

func (ts timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*ts.t = v.UTC()
		return nil
	case nil:
		*ts.t = time.Time{}
		return nil
	case []byte:
		return ts.parse(string(v))
	case string:
		return ts.parse(v)
	case int64:
		*ts.t = time.Unix(v, 0).UTC()
		return nil
	}
	return fmt.Errorf("unsupported timestamp type %T", src)
}

func (ts timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*ts.t = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("unparseable timestamp %q", s)
}
