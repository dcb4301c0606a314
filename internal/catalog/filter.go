package catalog

import (
	"sort"
	"strings"
)

// Filter narrows the catalog to candidates for one meal type and user
// profile. Entries must have a parseable age range covering ageYears and a
// BMI category matching the user's, compared after normalization. When that
// yields nothing, it falls back to every entry of the meal type regardless of
// profile. The result is sorted by rating descending; ties keep catalog
// order. An empty result means no meals are available for this category.
func (c *Catalog) Filter(ageYears int, bmi float64, mealType string) []Entry {
	wantCategory := BMICategoryLabel(bmi)
	wantType := strings.ToLower(mealType)

	var filtered []Entry
	for _, e := range c.entries {
		min, max, ok := ParseAgeRange(e.AgeGroup)
		if !ok || ageYears < min || ageYears > max {
			continue
		}
		if NormalizeCategory(e.BMICategory) != wantCategory {
			continue
		}
		if strings.ToLower(e.MealType) != wantType {
			continue
		}
		filtered = append(filtered, e)
	}

	if len(filtered) == 0 {
		for _, e := range c.entries {
			if strings.ToLower(e.MealType) == wantType {
				filtered = append(filtered, e)
			}
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].EffectiveRating() > filtered[j].EffectiveRating()
	})

	return filtered
}
