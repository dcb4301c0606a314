// Package catalog holds the static meal catalog and the candidate filtering
// used by plan generation. The catalog is loaded once at startup and treated
// as immutable; everything here is free of database access.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Entry is one meal in the static catalog. Field names mirror the dataset the
// catalog file was exported from.
type Entry struct {
	ID          string  `json:"_id"`
	Dish        string  `json:"Dish"`
	MealType    string  `json:"Meal Type"`
	AgeGroup    string  `json:"Age Group"`
	BMICategory string  `json:"BMI Category"`
	Calories    float64 `json:"Calories (kcal)"`
	Protein     float64 `json:"Protein (g)"`
	Fat         float64 `json:"Fat (g)"`
	Fiber       float64 `json:"Fiber (g)"`
	Carbs       float64 `json:"Carbs (g)"`
	Ingredients string  `json:"Ingredients"`
	ServingSize string  `json:"Serving Size"`
	Notes       string  `json:"Notes"`
	Rating      int     `json:"rating,omitempty"`
}

// EffectiveRating returns the entry rating, defaulting to 3 when absent.
func (e Entry) EffectiveRating() int {
	if e.Rating == 0 {
		return 3
	}
	return e.Rating
}

// Catalog is an immutable list of entries. Construct it once at process
// initialization and inject it wherever candidates are needed.
type Catalog struct {
	entries []Entry
}

// New wraps a slice of entries. The slice is not copied; callers must not
// mutate it afterwards.
func New(entries []Entry) *Catalog {
	return &Catalog{entries: entries}
}

// Load reads the catalog from a JSON file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read meal catalog: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse meal catalog: %w", err)
	}
	return &Catalog{entries: entries}, nil
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

var (
	nonLetters = regexp.MustCompile(`[^a-zA-Z]`)
	ageRange   = regexp.MustCompile(`(\d+)\D+(\d+)`)
)

// BMICategoryLabel maps a BMI value to the normalized category label used by
// catalog entries.
func BMICategoryLabel(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25:
		return "normal"
	case bmi < 30:
		return "overweight"
	default:
		return "obese"
	}
}

// NormalizeCategory strips non-letter characters and lowercases, so "Normal
// weight" and "normalweight" compare equal.
func NormalizeCategory(s string) string {
	return strings.ToLower(nonLetters.ReplaceAllString(s, ""))
}

// ParseAgeRange extracts the inclusive [min, max] bounds from an age group
// string such as "19-30 years". Returns ok=false when no range is present.
func ParseAgeRange(s string) (min, max int, ok bool) {
	m := ageRange.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	min, err1 := strconv.Atoi(m[1])
	max, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return min, max, true
}
