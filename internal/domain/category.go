package domain

import (
	"fmt"
	"strings"
)

// Category is the duck subtype. It selects cosmetics, experience and
// special behavior.
type Category string

// Duck categories
const (
	CategoryNormal           Category = "normal"
	CategorySuper            Category = "super"
	CategoryBaby             Category = "baby"
	CategoryProfessor        Category = "prof"
	CategoryGhost            Category = "ghost"
	CategoryMotherOfAllDucks Category = "moad"
	CategoryMechanical       Category = "mechanical"
	CategoryArmored          Category = "armored"
	CategoryGolden           Category = "golden"
	CategoryPlastic          Category = "plastic"
	CategoryKamikaze         Category = "kamikaze"
	CategoryNight            Category = "night"
	CategorySleeping         Category = "sleeping"
)

// DayCategories are the categories that can spawn outside the night window.
var DayCategories = []Category{
	CategoryNormal,
	CategorySuper,
	CategoryBaby,
	CategoryProfessor,
	CategoryGhost,
	CategoryMotherOfAllDucks,
	CategoryMechanical,
	CategoryArmored,
	CategoryGolden,
	CategoryPlastic,
	CategoryKamikaze,
}

// NightCategories spawn only inside a channel's night window.
var NightCategories = []Category{
	CategoryNight,
	CategorySleeping,
}

// AllCategories returns every known category, day pool first.
func AllCategories() []Category {
	all := make([]Category, 0, len(DayCategories)+len(NightCategories))
	all = append(all, DayCategories...)
	return append(all, NightCategories...)
}

// ParseCategory resolves a user or file supplied category name.
func ParseCategory(name string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range AllCategories() {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

func (c Category) String() string {
	return string(c)
}
