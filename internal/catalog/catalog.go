// Package catalog lists the field keys the browser knows about: sortable
// columns, search groups and their options, and the categorical filters.
package catalog

import (
	"strings"

	"herodex/internal/field"
)

// Field is a registered field key with a display label.
type Field struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Path  field.Path `json:"-"`
}

func newField(key, label string) Field {
	return Field{Key: key, Label: label, Path: field.Parse(key)}
}

// Group is a search grouping: the first search dropdown.
type Group struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Options []Field `json:"options"`
}

var (
	// SortFields are the columns a list can be ordered by.
	SortFields = []Field{
		newField("images.xs", "Icon"),
		newField("name", "Name"),
		newField("powerstats.intelligence", "Int"),
		newField("powerstats.strength", "Str"),
		newField("powerstats.speed", "Spd"),
		newField("powerstats.durability", "Dur"),
		newField("powerstats.power", "Pow"),
		newField("powerstats.combat", "Cmb"),
		newField("appearance.height[1]", "Height"),
		newField("appearance.weight[1]", "Weight"),
		newField("appearance.race", "Race"),
		newField("appearance.eyeColor", "Eyes"),
		newField("appearance.hairColor", "Hair"),
		newField("biography.alignment", "Align"),
		newField("work.occupation", "Occupation"),
		newField("connections.groupAffiliation", "Affiliation"),
	}

	// TableFields are the list view columns. Grouped columns render a
	// summary of their sub-fields.
	TableFields = []Field{
		newField("images.xs", "Icon"),
		newField("name", "Name"),
		newField("powerstats", "Powerstats"),
		newField("appearance", "Appearance"),
		newField("biography", "Biography"),
		newField("connections.groupAffiliation", "Affiliation"),
	}

	Groups = []Group{
		{Key: "name", Label: "Name", Options: []Field{
			newField("name", "Name"),
		}},
		{Key: "powerstats", Label: "Power Stats", Options: []Field{
			newField("powerstats.intelligence", "Intelligence"),
			newField("powerstats.strength", "Strength"),
			newField("powerstats.speed", "Speed"),
			newField("powerstats.durability", "Durability"),
			newField("powerstats.power", "Power"),
			newField("powerstats.combat", "Combat"),
		}},
		{Key: "appearance", Label: "Appearance details", Options: []Field{
			newField("appearance.race", "Race"),
			newField("appearance.gender", "Gender"),
			newField("appearance.height[1]", "Height"),
			newField("appearance.weight[1]", "Weight"),
			newField("appearance.eyeColor", "Eye Color"),
			newField("appearance.hairColor", "Hair Color"),
		}},
		{Key: "biography", Label: "Biography / alignment", Options: []Field{
			newField("biography.fullName", "Full Name"),
			newField("biography.placeOfBirth", "Birth Place"),
			newField("biography.alignment", "Alignment"),
			newField("work.occupation", "Occupation"),
		}},
		{Key: "connections.groupAffiliation", Label: "Group affiliation", Options: []Field{
			newField("connections.groupAffiliation", "Affiliation"),
		}},
	}
)

var paths = func() map[string]field.Path {
	m := make(map[string]field.Path)
	for _, f := range SortFields {
		m[f.Key] = f.Path
	}
	for _, f := range TableFields {
		m[f.Key] = f.Path
	}
	for _, g := range Groups {
		for _, f := range g.Options {
			m[f.Key] = f.Path
		}
	}
	for _, c := range Categories {
		m[c.Path.Key()] = c.Path
	}
	return m
}()

// PathOf returns the pre-parsed path for a registered key. Unregistered keys
// are parsed on the spot.
func PathOf(key string) field.Path {
	if p, ok := paths[key]; ok {
		return p
	}
	return field.Parse(key)
}

// DeriveGroup maps a search field key to the group whose dropdown holds it.
// Keys outside every group are their own group.
func DeriveGroup(key string) string {
	switch {
	case strings.HasPrefix(key, "powerstats."):
		return "powerstats"
	case strings.HasPrefix(key, "appearance."):
		return "appearance"
	case strings.HasPrefix(key, "biography."), key == "work.occupation":
		return "biography"
	case strings.HasPrefix(key, "connections."):
		return "connections.groupAffiliation"
	}
	return key
}

// OptionsFor returns the search fields valid for group. A group that is not
// registered has exactly one option: the group key as a literal field.
func OptionsFor(group string) []Field {
	for _, g := range Groups {
		if g.Key == group {
			return g.Options
		}
	}
	return []Field{newField(group, group)}
}

// ValidOption reports whether key is one of group's search fields.
func ValidOption(group, key string) bool {
	for _, f := range OptionsFor(group) {
		if f.Key == key {
			return true
		}
	}
	return false
}
