// Package urlcodec persists a view state in a URL query string and restores
// it. Decoding never fails: unusable parameters are skipped.
package urlcodec

import (
	"net/url"
	"strconv"
	"strings"

	"herodex/internal/catalog"
	"herodex/internal/viewstate"
)

// Parameter names.
const (
	ParamSearch = "q"
	ParamField  = "field"
	ParamSize   = "size"
	ParamPage   = "page"
	ParamSort   = "sort"
	ParamHero   = "hero"
	ParamView   = "view"
)

// Baseline is the view mode that is left out of the query string.
const Baseline = viewstate.List

// Encode serializes st. Parameters appear in a fixed order; empty values are
// omitted.
func Encode(st *viewstate.State) string {
	var b strings.Builder
	add := func(k, v string) {
		if v == "" {
			return
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(v))
	}

	add(ParamSearch, st.SearchTerm)
	add(ParamField, st.SearchField)
	add(ParamSize, st.PageSize.String())
	if st.Page != 0 {
		add(ParamPage, strconv.Itoa(st.Page))
	}
	if st.SortField != "" {
		add(ParamSort, st.SortField+","+string(st.SortDir))
	}
	if st.SelectedID != nil {
		add(ParamHero, strconv.Itoa(*st.SelectedID))
	}
	for _, info := range catalog.Categories {
		add(string(info.Category), st.Filter(info.Category))
	}
	if st.ViewMode != "" && st.ViewMode != Baseline {
		add(ParamView, string(st.ViewMode))
	}
	return b.String()
}

// Patch is a partial view state. Nil fields were absent or unusable.
type Patch struct {
	SearchTerm  *string
	SearchField *string
	PageSize    *viewstate.PageSize
	Page        *int
	SortField   *string
	SortDir     *viewstate.Direction
	SelectedID  *int
	Filters     map[catalog.Category]string
	ViewMode    *viewstate.Mode
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.SearchTerm == nil && p.SearchField == nil && p.PageSize == nil &&
		p.Page == nil && p.SortField == nil && p.SortDir == nil &&
		p.SelectedID == nil && len(p.Filters) == 0 && p.ViewMode == nil
}

// Decode reads a query string, with or without the leading '?'.
func Decode(raw string) Patch {
	// ParseQuery keeps every well-formed pair even when it reports an error.
	vals, _ := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	return FromValues(vals)
}

// FromValues builds a patch from already parsed parameters. Only the first
// value of a repeated parameter counts.
func FromValues(vals url.Values) Patch {
	var p Patch

	if v := vals.Get(ParamSearch); v != "" {
		p.SearchTerm = &v
	}
	if v := vals.Get(ParamField); v != "" {
		p.SearchField = &v
	}
	if v := vals.Get(ParamSize); v != "" {
		if size, ok := viewstate.ParsePageSize(v); ok {
			p.PageSize = &size
		}
	}
	if v := vals.Get(ParamPage); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.Page = &n
		}
	}
	if v := vals.Get(ParamSort); v != "" {
		// the direction never holds a comma, so split on the last one
		f, d := v, ""
		if i := strings.LastIndex(v, ","); i >= 0 {
			f, d = v[:i], v[i+1:]
		}
		if f != "" {
			p.SortField = &f
		}
		if dir, ok := viewstate.ParseDirection(d); ok {
			p.SortDir = &dir
		}
	}
	if v := vals.Get(ParamHero); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			p.SelectedID = &id
		}
	}
	for _, info := range catalog.Categories {
		if v := vals.Get(string(info.Category)); v != "" {
			if p.Filters == nil {
				p.Filters = make(map[catalog.Category]string)
			}
			p.Filters[info.Category] = v
		}
	}
	if v := vals.Get(ParamView); v != "" {
		if m, ok := viewstate.ParseMode(v); ok {
			p.ViewMode = &m
		}
	}
	return p
}

// Apply writes the patch over st and re-derives the search group. Fields the
// patch does not carry keep their current values.
func (p Patch) Apply(st *viewstate.State) {
	if p.SearchTerm != nil {
		st.SearchTerm = *p.SearchTerm
	}
	if p.SearchField != nil {
		st.SearchField = *p.SearchField
	}
	if p.PageSize != nil {
		st.PageSize = *p.PageSize
	}
	if p.Page != nil {
		st.Page = *p.Page
	}
	if p.SortField != nil {
		st.SortField = *p.SortField
	}
	if p.SortDir != nil {
		st.SortDir = *p.SortDir
	}
	if p.SelectedID != nil {
		id := *p.SelectedID
		st.SelectedID = &id
	}
	if len(p.Filters) > 0 && st.Filters == nil {
		st.Filters = make(map[catalog.Category]string, len(p.Filters))
	}
	for c, v := range p.Filters {
		st.Filters[c] = v
	}
	if p.ViewMode != nil {
		st.ViewMode = *p.ViewMode
	}
	st.Normalize()
}

// Restore is Decode followed by Apply.
func Restore(st *viewstate.State, raw string) {
	Decode(raw).Apply(st)
}
