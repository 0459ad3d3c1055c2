// Package jsoncol encodes the list and object columns shared by the SQL
// adapters. PostgreSQL stores them as JSONB, SQLite as TEXT.
package jsoncol

import (
	"encoding/json"
	"fmt"

	"venture-feed/internal/domain/entity"
)

// Encode marshals v, writing "[]" for nil slices so columns never hold null.
func Encode[T any](v []T) (string, error) {
	if v == nil {
		return "[]", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("jsoncol: %w", err)
	}
	return string(b), nil
}

// Decode unmarshals a JSON array column. Empty and null columns yield a
// non-nil empty slice.
func Decode[T any](s string) ([]T, error) {
	out := []T{}
	if s == "" || s == "null" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("jsoncol: %w", err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// EncodeSignals marshals the signal flags object.
func EncodeSignals(s entity.Signals) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("jsoncol: %w", err)
	}
	return string(b), nil
}

// DecodeSignals reads a signal flags object; missing keys are false.
func DecodeSignals(s string) (entity.Signals, error) {
	var out entity.Signals
	if s == "" || s == "null" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return entity.Signals{}, fmt.Errorf("jsoncol: %w", err)
	}
	return out, nil
}

// Tags decodes a sector tag array, dropping values outside the taxonomy.
func Tags(s string) ([]entity.SectorTag, error) {
	raw, err := Decode[string](s)
	if err != nil {
		return nil, err
	}
	return entity.NormalizeSectorTags(raw), nil
}

// TagValue is the JSON array holding a single tag, used for containment filters.
func TagValue(tag entity.SectorTag) string {
	s, _ := Encode([]entity.SectorTag{tag})
	return s
}

// StartupColumns holds the encoded JSON columns of a startup row.
type StartupColumns struct {
	SectorTags         string
	Signals            string
	Links              string
	CofounderLinkedIns string
}

// EncodeStartup encodes every JSON column of s.
func EncodeStartup(s *entity.Startup) (StartupColumns, error) {
	var (
		c   StartupColumns
		err error
	)
	if c.SectorTags, err = Encode(s.SectorTags); err != nil {
		return c, err
	}
	if c.Signals, err = EncodeSignals(s.Signals); err != nil {
		return c, err
	}
	if c.Links, err = Encode(s.Links); err != nil {
		return c, err
	}
	if c.CofounderLinkedIns, err = Encode(s.CofounderLinkedIns); err != nil {
		return c, err
	}
	return c, nil
}

// DecodeInto fills the JSON-backed fields of s.
func (c StartupColumns) DecodeInto(s *entity.Startup) error {
	var err error
	if s.SectorTags, err = Tags(c.SectorTags); err != nil {
		return err
	}
	if s.Signals, err = DecodeSignals(c.Signals); err != nil {
		return err
	}
	if s.Links, err = Decode[entity.Link](c.Links); err != nil {
		return err
	}
	if s.CofounderLinkedIns, err = Decode[entity.CofounderLinkedIn](c.CofounderLinkedIns); err != nil {
		return err
	}
	return nil
}
