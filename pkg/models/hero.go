package models

// Hero is one character record from the superhero dataset.
//
// Height and Weight are [imperial, metric]; index 1 is the display value.
// Race is a pointer because the dataset carries explicit nulls there.
type Hero struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	Powerstats  Powerstats  `json:"powerstats"`
	Appearance  Appearance  `json:"appearance"`
	Biography   Biography   `json:"biography"`
	Work        Work        `json:"work"`
	Connections Connections `json:"connections"`
	Images      Images      `json:"images"`
}

type Powerstats struct {
	Intelligence int `json:"intelligence"`
	Strength     int `json:"strength"`
	Speed        int `json:"speed"`
	Durability   int `json:"durability"`
	Power        int `json:"power"`
	Combat       int `json:"combat"`
}

type Appearance struct {
	Gender    string   `json:"gender"`
	Race      *string  `json:"race"`
	Height    []string `json:"height"`
	Weight    []string `json:"weight"`
	EyeColor  string   `json:"eyeColor"`
	HairColor string   `json:"hairColor"`
}

type Biography struct {
	FullName        string   `json:"fullName"`
	AlterEgos       string   `json:"alterEgos"`
	Aliases         []string `json:"aliases"`
	PlaceOfBirth    string   `json:"placeOfBirth"`
	FirstAppearance string   `json:"firstAppearance"`
	Publisher       *string  `json:"publisher"`
	Alignment       string   `json:"alignment"`
}

type Work struct {
	Occupation string `json:"occupation"`
	Base       string `json:"base"`
}

type Connections struct {
	GroupAffiliation string `json:"groupAffiliation"`
	Relatives        string `json:"relatives"`
}

type Images struct {
	XS string `json:"xs"`
	SM string `json:"sm"`
	MD string `json:"md"`
	LG string `json:"lg"`
}

// MetricHeight returns the display height, or "" when absent.
func (a Appearance) MetricHeight() string { return second(a.Height) }

// MetricWeight returns the display weight, or "" when absent.
func (a Appearance) MetricWeight() string { return second(a.Weight) }

// RaceName returns the race, or "" for a null race.
func (a Appearance) RaceName() string {
	if a.Race == nil {
		return ""
	}
	return *a.Race
}

// Alias returns the first alias, falling back to name.
func (h Hero) Alias() string {
	if len(h.Biography.Aliases) > 0 && h.Biography.Aliases[0] != "" {
		return h.Biography.Aliases[0]
	}
	return h.Name
}

func second(s []string) string {
	if len(s) < 2 {
		return ""
	}
	return s[1]
}
