package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"

	"herodex/internal/field"
	"herodex/pkg/models"
)

// Record is one immutable dataset entry: the typed hero for renderers and the
// document tree the field accessor walks.
type Record struct {
	hero *models.Hero
	doc  *field.Node
	raw  json.RawMessage
}

// NewRecord decodes one JSON object. The input bytes are copied.
func NewRecord(raw []byte) (Record, error) {
	var h models.Hero
	if err := json.Unmarshal(raw, &h); err != nil {
		return Record{}, fmt.Errorf("decode hero: %w", err)
	}
	doc, err := field.Decode(raw)
	if err != nil {
		return Record{}, fmt.Errorf("decode hero %d: %w", h.ID, err)
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return Record{}, fmt.Errorf("compact hero %d: %w", h.ID, err)
	}
	return Record{hero: &h, doc: doc, raw: compact.Bytes()}, nil
}

// ID is the record's unique integer id.
func (r Record) ID() int {
	if r.hero == nil {
		return 0
	}
	return r.hero.ID
}

// Name is the display name.
func (r Record) Name() string {
	if r.hero == nil {
		return ""
	}
	return r.hero.Name
}

// Hero returns a copy of the typed record.
func (r Record) Hero() models.Hero {
	if r.hero == nil {
		return models.Hero{}
	}
	return *r.hero
}

// Resolve looks p up in the record's document.
func (r Record) Resolve(p field.Path) field.Value {
	return field.Resolve(r.doc, p)
}

// Raw returns the compact source JSON.
func (r Record) Raw() json.RawMessage {
	return append(json.RawMessage(nil), r.raw...)
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Hero())
}
