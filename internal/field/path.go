// Package field resolves dotted, optionally indexed paths such as
// "appearance.height[1]" against decoded record documents.
package field

import (
	"strconv"
	"strings"
)

// Segment is one step of a Path: a member name, optionally followed by a
// sequence index ("weight[1]" is Name "weight", Index 1).
type Segment struct {
	Name    string
	Index   int
	Indexed bool
}

func (s Segment) String() string {
	if !s.Indexed {
		return s.Name
	}
	return s.Name + "[" + strconv.Itoa(s.Index) + "]"
}

// Path is a parsed field key. Parse once, resolve many times.
type Path struct {
	key  string
	segs []Segment
}

// Parse splits key on dots and extracts trailing "[n]" indices. It never
// fails: anything that is not a well-formed index is kept as a literal name,
// which simply resolves to Missing on records that lack it.
func Parse(key string) Path {
	parts := strings.Split(key, ".")
	segs := make([]Segment, 0, len(parts))
	for _, part := range parts {
		segs = append(segs, parseSegment(part))
	}
	return Path{key: key, segs: segs}
}

func parseSegment(part string) Segment {
	open := strings.IndexByte(part, '[')
	if open <= 0 || !strings.HasSuffix(part, "]") {
		return Segment{Name: part}
	}
	digits := part[open+1 : len(part)-1]
	if digits == "" {
		return Segment{Name: part}
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return Segment{Name: part}
		}
	}
	idx, err := strconv.Atoi(digits)
	if err != nil {
		return Segment{Name: part}
	}
	return Segment{Name: part[:open], Index: idx, Indexed: true}
}

// Key returns the string the path was parsed from.
func (p Path) Key() string { return p.key }

// Segments returns a copy of the parsed segments.
func (p Path) Segments() []Segment {
	return append([]Segment(nil), p.segs...)
}

func (p Path) String() string { return p.key }
