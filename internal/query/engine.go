// Package query turns the dataset and a view state into the page to show.
package query

import (
	"sort"
	"strings"

	"herodex/internal/catalog"
	"herodex/internal/compare"
	"herodex/internal/dataset"
	"herodex/internal/field"
	"herodex/internal/viewstate"
)

// Result is everything a renderer needs besides the state itself.
type Result struct {
	Items     []dataset.Record `json:"items"`
	Total     int              `json:"total"`
	PageCount int              `json:"page_count"`
	Page      int              `json:"page"`
	PageSize  int              `json:"page_size"`
}

// Evaluate filters, searches, orders and paginates records for st. The
// effective page is written back into st. records is not modified.
func Evaluate(records []dataset.Record, st *viewstate.State) Result {
	data := filterCategories(records, st.ActiveFilters())

	term := strings.ToLower(st.SearchTerm)
	searchPath := catalog.PathOf(st.SearchField)
	sortPath := catalog.PathOf(st.SortField)
	desc := st.SortDir == viewstate.Desc

	if term != "" {
		data = search(data, searchPath, term)
		order(data, sortPath, desc, func(r dataset.Record) bool {
			return strings.HasPrefix(searchText(r, searchPath), term)
		})
	} else {
		order(data, sortPath, desc, nil)
	}

	return paginate(data, st)
}

func filterCategories(records []dataset.Record, filters []viewstate.ActiveFilter) []dataset.Record {
	out := make([]dataset.Record, 0, len(records))
outer:
	for _, r := range records {
		for _, f := range filters {
			v := r.Resolve(f.Info.Path)
			if v.IsMissing() || v.Text() != f.Value {
				continue outer
			}
		}
		out = append(out, r)
	}
	return out
}

func search(records []dataset.Record, p field.Path, term string) []dataset.Record {
	out := records[:0]
	for _, r := range records {
		if v := r.Resolve(p); !v.IsMissing() && strings.Contains(strings.ToLower(v.Text()), term) {
			out = append(out, r)
		}
	}
	return out
}

// searchText is the lowercase canonical form used for prefix ranking.
// Missing values never rank as a prefix match.
func searchText(r dataset.Record, p field.Path) string {
	v := r.Resolve(p)
	if v.IsMissing() {
		return ""
	}
	return strings.ToLower(v.Text())
}

// order sorts records in place. When prefix is set, prefix matches come
// first whatever the direction. Direction only flips comparisons between
// two present values, so records missing the sort field stay last.
func order(records []dataset.Record, p field.Path, desc bool, prefix func(dataset.Record) bool) {
	type keyed struct {
		rec    dataset.Record
		val    field.Value
		prefix bool
	}
	ks := make([]keyed, len(records))
	for i, r := range records {
		ks[i] = keyed{rec: r, val: r.Resolve(p)}
		if prefix != nil {
			ks[i].prefix = prefix(r)
		}
	}

	sort.SliceStable(ks, func(i, j int) bool {
		a, b := ks[i], ks[j]
		if a.prefix != b.prefix {
			return a.prefix
		}
		c := compare.Compare(a.val, b.val)
		if desc && !a.val.IsMissing() && !b.val.IsMissing() {
			c = -c
		}
		return c < 0
	})

	for i := range ks {
		records[i] = ks[i].rec
	}
}

func paginate(data []dataset.Record, st *viewstate.State) Result {
	total := len(data)
	size := int(st.PageSize)

	pageCount := 1
	if st.PageSize != viewstate.All {
		// ceil without total+size-1, which wraps for sizes near MaxInt
		pageCount = total / size
		if total%size != 0 {
			pageCount++
		}
	}
	if size > total || st.PageSize == viewstate.All {
		size = total
	}
	page := st.Clamp(pageCount)

	items := []dataset.Record{}
	if total > 0 {
		start := (page - 1) * size
		end := min(start+size, total)
		if start < end {
			items = data[start:end]
		}
	}

	return Result{
		Items:     items,
		Total:     total,
		PageCount: pageCount,
		Page:      page,
		PageSize:  int(st.PageSize),
	}
}
