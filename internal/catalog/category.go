package catalog

import "herodex/internal/field"

// Category is a categorical filter, named by its URL parameter.
type Category string

const (
	Alignment Category = "align"
	Race      Category = "race"
	Gender    Category = "gender"
	EyeColor  Category = "eye"
	HairColor Category = "hair"
)

// CategoryInfo binds a category to the record field it filters on.
type CategoryInfo struct {
	Category Category   `json:"category"`
	Label    string     `json:"label"`
	Path     field.Path `json:"-"`
	Field    string     `json:"field"`
}

// Categories in URL serialization order.
var Categories = []CategoryInfo{
	newCategory(Alignment, "Alignment", "biography.alignment"),
	newCategory(Race, "Race", "appearance.race"),
	newCategory(Gender, "Gender", "appearance.gender"),
	newCategory(EyeColor, "Eye Color", "appearance.eyeColor"),
	newCategory(HairColor, "Hair Color", "appearance.hairColor"),
}

func newCategory(c Category, label, key string) CategoryInfo {
	return CategoryInfo{Category: c, Label: label, Path: field.Parse(key), Field: key}
}

// Lookup finds the info for c.
func Lookup(c Category) (CategoryInfo, bool) {
	for _, info := range Categories {
		if info.Category == c {
			return info, true
		}
	}
	return CategoryInfo{}, false
}

// Placeholder marks an unknown categorical value in the dataset.
const Placeholder = "-"
