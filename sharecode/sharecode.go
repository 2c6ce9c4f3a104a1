// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sharecode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/danielhkuo/listen/models"
)

// Version is the only share code format understood. It is written as
// the first byte of the decoded payload.
const Version byte = 0

var (
	ErrUnsupportedVersion = errors.New("unsupported share code version")
	ErrMalformed          = errors.New("malformed share code")
)

// Upper bound on the decompressed JSON, so a crafted code cannot
// inflate without limit.
const maxPayload = 4 << 20

// Runbook is the portable structure of a runbook: names and item types
// in display order, without ids.
type Runbook struct {
	Name     string
	Sections []Section
}

type Section struct {
	Name  string
	Items []Item
}

type Item struct {
	Name string
	Type models.ItemType
}

// MarshalJSON writes [name, sections]
func (r Runbook) MarshalJSON() ([]byte, error) {
	sections := r.Sections
	if sections == nil {
		sections = []Section{}
	}
	return json.Marshal([]any{r.Name, sections})
}

func (r *Runbook) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("runbook: expected [name, sections], got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &r.Name); err != nil {
		return fmt.Errorf("runbook name: %w", err)
	}
	return json.Unmarshal(pair[1], &r.Sections)
}

// MarshalJSON writes [name, items]
func (s Section) MarshalJSON() ([]byte, error) {
	items := s.Items
	if items == nil {
		items = []Item{}
	}
	return json.Marshal([]any{s.Name, items})
}

func (s *Section) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("section: expected [name, items], got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &s.Name); err != nil {
		return fmt.Errorf("section name: %w", err)
	}
	return json.Unmarshal(pair[1], &s.Items)
}

// MarshalJSON writes [name, type]
func (i Item) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{i.Name, string(i.Type)})
}

func (i *Item) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("item: expected [name, type], got %d elements", len(pair))
	}
	i.Name, i.Type = pair[0], models.ItemType(pair[1])
	if !i.Type.Valid() {
		return fmt.Errorf("item %q: unknown type %q", i.Name, pair[1])
	}
	return nil
}

// Encode produces the share code: base85(version byte ‖ gzip(JSON))
func Encode(rb Runbook) (string, error) {
	payload, err := json.Marshal(rb)
	if err != nil {
		return "", fmt.Errorf("failed to marshal runbook: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteByte(Version)
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return "", fmt.Errorf("failed to compress runbook: %w", err)
	}
	if _, err := zw.Write(payload); err != nil {
		return "", fmt.Errorf("failed to compress runbook: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("failed to compress runbook: %w", err)
	}

	return encode85(buf.Bytes()), nil
}

// Decode parses a share code produced by Encode
func Decode(code string) (Runbook, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Runbook{}, fmt.Errorf("empty code: %w", ErrMalformed)
	}

	raw, err := decode85(code)
	if err != nil {
		return Runbook{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(raw) == 0 {
		return Runbook{}, fmt.Errorf("empty payload: %w", ErrMalformed)
	}
	if raw[0] != Version {
		return Runbook{}, fmt.Errorf("version %d: %w", raw[0], ErrUnsupportedVersion)
	}

	zr, err := gzip.NewReader(bytes.NewReader(raw[1:]))
	if err != nil {
		return Runbook{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	defer zr.Close()

	payload, err := io.ReadAll(io.LimitReader(zr, maxPayload+1))
	if err != nil {
		return Runbook{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(payload) > maxPayload {
		return Runbook{}, fmt.Errorf("payload exceeds %d bytes: %w", maxPayload, ErrMalformed)
	}

	var rb Runbook
	if err := json.Unmarshal(payload, &rb); err != nil {
		return Runbook{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return rb, nil
}
