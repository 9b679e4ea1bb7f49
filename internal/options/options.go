// Package options collects the distinct values offered by each category
// filter. The index is built once from the full dataset.
package options

import (
	"slices"

	"herodex/internal/catalog"
	"herodex/internal/compare"
	"herodex/internal/dataset"
)

// Index maps each category to its sorted distinct values.
type Index map[catalog.Category][]string

// Compute scans every record. Missing, empty and placeholder values are left
// out.
func Compute(records []dataset.Record) Index {
	idx := make(Index, len(catalog.Categories))
	for _, info := range catalog.Categories {
		seen := make(map[string]struct{})
		values := []string{}
		for _, r := range records {
			v := r.Resolve(info.Path)
			if v.IsMissing() {
				continue
			}
			s := v.Text()
			if s == "" || s == catalog.Placeholder {
				continue
			}
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			values = append(values, s)
		}
		slices.SortStableFunc(values, compare.Strings)
		idx[info.Category] = values
	}
	return idx
}

// Values returns the options for c. The slice must not be modified.
func (idx Index) Values(c catalog.Category) []string {
	return idx[c]
}

// Has reports whether v is one of c's options.
func (idx Index) Has(c catalog.Category, v string) bool {
	return slices.Contains(idx[c], v)
}
