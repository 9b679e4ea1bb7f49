// Package dataset loads the character records the browser works on. The
// set is fetched once, kept in source order and never modified.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

// Dataset is the ordered, immutable record set.
type Dataset struct {
	records  []Record
	byID     map[int]int
	source   string
	loadedAt time.Time
}

// New indexes records by id. When ids repeat, Get returns the first.
func New(source string, records []Record) *Dataset {
	byID := make(map[int]int, len(records))
	for i, r := range records {
		if _, dup := byID[r.ID()]; !dup {
			byID[r.ID()] = i
		}
	}
	return &Dataset{
		records:  append([]Record(nil), records...),
		byID:     byID,
		source:   source,
		loadedAt: time.Now().UTC(),
	}
}

// Records returns the records in source order. The slice is a copy.
func (d *Dataset) Records() []Record {
	return append([]Record(nil), d.records...)
}

func (d *Dataset) Len() int { return len(d.records) }

// Get finds a record by id.
func (d *Dataset) Get(id int) (Record, bool) {
	i, ok := d.byID[id]
	if !ok {
		return Record{}, false
	}
	return d.records[i], true
}

// Source names where the records came from.
func (d *Dataset) Source() string { return d.source }

func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// Load fetches every record from src. It is the only blocking step of
// startup; errors are returned as-is for the caller to treat as fatal.
func Load(ctx context.Context, src Source, logger *log.Logger) (*Dataset, error) {
	if logger == nil {
		logger = log.Default()
	}
	started := time.Now()
	logger.Printf("[dataset] fetching from %s", src.Name())

	records, err := src.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset from %s: %w", src.Name(), err)
	}

	logger.Printf("[dataset] loaded %d records from %s in %s", len(records), src.Name(), time.Since(started).Round(time.Millisecond))
	return New(src.Name(), records), nil
}

// Parse decodes a JSON array of records.
func Parse(data []byte) ([]Record, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode record array: %w", err)
	}

	out := make([]Record, 0, len(raw))
	for i, item := range raw {
		r, err := NewRecord(item)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Marshal encodes records back into a JSON array in their compact source form.
func Marshal(records []Record) ([]byte, error) {
	raw := make([]json.RawMessage, 0, len(records))
	for _, r := range records {
		raw = append(raw, r.raw)
	}
	return json.Marshal(raw)
}
