// Package viewstate holds the user-adjustable browse parameters and the
// transitions between them.
package viewstate

import (
	"fmt"
	"strconv"

	"herodex/internal/catalog"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts exactly "asc" or "desc".
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case Asc, Desc:
		return Direction(s), true
	}
	return "", false
}

func (d Direction) Flip() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

type Mode string

const (
	List  Mode = "list"
	Cards Mode = "cards"
)

func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case List, Cards:
		return Mode(s), true
	}
	return "", false
}

// PageSize is a positive row count or All.
type PageSize int

const (
	All             PageSize = 0
	DefaultPageSize PageSize = 20
)

// ParsePageSize accepts "all" or a positive integer.
func ParsePageSize(s string) (PageSize, bool) {
	if s == "all" {
		return All, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return PageSize(n), true
}

func (p PageSize) String() string {
	if p == All {
		return "all"
	}
	return strconv.Itoa(int(p))
}

func (p PageSize) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *PageSize) UnmarshalText(b []byte) error {
	v, ok := ParsePageSize(string(b))
	if !ok {
		return fmt.Errorf("invalid page size %q", b)
	}
	*p = v
	return nil
}

// State is the single source of truth for what the browser shows. It is
// owned by one caller and mutated in place through its methods.
type State struct {
	SearchTerm  string                      `json:"search_term"`
	SearchGroup string                      `json:"search_group"`
	SearchField string                      `json:"search_field"`
	Filters     map[catalog.Category]string `json:"filters"`
	PageSize    PageSize                    `json:"page_size"`
	Page        int                         `json:"page"`
	SortField   string                      `json:"sort_field"`
	SortDir     Direction                   `json:"sort_dir"`
	SelectedID  *int                        `json:"selected_id,omitempty"`
	ViewMode    Mode                        `json:"view_mode"`
}

// Default returns the startup state.
func Default() State {
	return State{
		SearchField: "name",
		SearchGroup: "name",
		Filters:     make(map[catalog.Category]string),
		PageSize:    DefaultPageSize,
		Page:        1,
		SortField:   "name",
		SortDir:     Asc,
		ViewMode:    List,
	}
}

// New returns a pointer to a fresh default state.
func New() *State {
	s := Default()
	return &s
}

// Clone deep-copies s.
func (s *State) Clone() State {
	c := *s
	c.Filters = make(map[catalog.Category]string, len(s.Filters))
	for k, v := range s.Filters {
		c.Filters[k] = v
	}
	if s.SelectedID != nil {
		id := *s.SelectedID
		c.SelectedID = &id
	}
	return c
}

// Reset restores every field to its default at once.
func (s *State) Reset() {
	*s = Default()
	s.normalizeSearchField()
}

func (s *State) SetSearchTerm(term string) {
	s.SearchTerm = term
	s.Page = 1
}

// SetSearchGroup switches the grouping; a search field that the new group
// does not offer falls back to the group's first option.
func (s *State) SetSearchGroup(group string) {
	s.SearchGroup = group
	s.normalizeSearchField()
	s.Page = 1
}

// SetSearchField selects key and the group that holds it.
func (s *State) SetSearchField(key string) {
	s.SearchField = key
	s.SearchGroup = catalog.DeriveGroup(key)
	s.normalizeSearchField()
	s.Page = 1
}

// SetFilter restricts category c to value; "" means any.
func (s *State) SetFilter(c catalog.Category, value string) {
	if s.Filters == nil {
		s.Filters = make(map[catalog.Category]string)
	}
	if value == "" {
		delete(s.Filters, c)
	} else {
		s.Filters[c] = value
	}
	s.Page = 1
}

// Filter returns the selected value for c, or "" for any.
func (s *State) Filter(c catalog.Category) string {
	return s.Filters[c]
}

// ActiveFilter is one category restriction.
type ActiveFilter struct {
	Info  catalog.CategoryInfo
	Value string
}

// ActiveFilters lists the set filters in catalog order.
func (s *State) ActiveFilters() []ActiveFilter {
	var out []ActiveFilter
	for _, info := range catalog.Categories {
		if v := s.Filters[info.Category]; v != "" {
			out = append(out, ActiveFilter{Info: info, Value: v})
		}
	}
	return out
}

func (s *State) SetSort(key string, dir Direction) {
	s.SortField = key
	s.SortDir = dir
	s.Page = 1
}

// ToggleSort is a column header click: the active column flips direction,
// any other column becomes active ascending.
func (s *State) ToggleSort(key string) {
	if s.SortField == key {
		s.SortDir = s.SortDir.Flip()
	} else {
		s.SortField = key
		s.SortDir = Asc
	}
	s.Page = 1
}

func (s *State) SetPageSize(p PageSize) {
	if p < 0 {
		return
	}
	s.PageSize = p
	s.Page = 1
}

func (s *State) SetViewMode(m Mode) {
	s.ViewMode = m
	s.Page = 1
}

func (s *State) ToggleViewMode() {
	if s.ViewMode == Cards {
		s.SetViewMode(List)
		return
	}
	s.SetViewMode(Cards)
}

// Page navigation keeps every other field as is. The upper bound is applied
// by the next query pass.

func (s *State) NextPage() { s.Page++ }

func (s *State) PrevPage() {
	if s.Page > 1 {
		s.Page--
	}
}

func (s *State) GoToPage(n int) { s.Page = n }

// Select opens the detail view for id.
func (s *State) Select(id int) { s.SelectedID = &id }

func (s *State) Deselect() { s.SelectedID = nil }

// Clamp pins Page into [1, max(1, pageCount)] and returns it.
func (s *State) Clamp(pageCount int) int {
	upper := pageCount
	if upper < 1 {
		upper = 1
	}
	if s.Page > upper {
		s.Page = upper
	}
	if s.Page < 1 {
		s.Page = 1
	}
	return s.Page
}

// Normalize re-derives dependent fields after a bulk update such as a URL
// decode: the group follows the field, then the field is checked against it.
func (s *State) Normalize() {
	s.SearchGroup = catalog.DeriveGroup(s.SearchField)
	s.normalizeSearchField()
	if s.Filters == nil {
		s.Filters = make(map[catalog.Category]string)
	}
}

func (s *State) normalizeSearchField() {
	if catalog.ValidOption(s.SearchGroup, s.SearchField) {
		return
	}
	s.SearchField = catalog.OptionsFor(s.SearchGroup)[0].Key
}
