// Package nutrition computes macro totals and derived weekly statistics from
// logged meal records.
package nutrition

import (
	"encoding/json"
	"math"
	"time"
)

// Targets the derived percentages are measured against.
const (
	StepsTarget = 10000
	WaterTarget = 8 // glasses per day
	MealsPerDay = 4
	DaysInWeek  = 7
)

// macroAliases lists the accepted field spellings per canonical macro, in
// preference order. Older clients sent the raw dataset column names.
var macroAliases = map[string][]string{
	"calories": {"calories", "Calories (kcal)"},
	"protein":  {"protein", "Protein (g)"},
	"fat":      {"fats", "Fat (g)", "fat"},
	"fiber":    {"fiber", "Fiber (g)"},
}

// Totals holds summed macro values for a window.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// MealRecord is one meal as seen by the aggregator. Fields carries the meal
// payload as stored, keyed by whatever spelling the client used; AddedAt is
// preferred over CreatedAt as the effective timestamp.
type MealRecord struct {
	AddedAt   time.Time
	CreatedAt time.Time
	Fields    map[string]interface{}
}

// EffectiveTime returns the timestamp used for window filtering.
func (r MealRecord) EffectiveTime() time.Time {
	if !r.AddedAt.IsZero() {
		return r.AddedAt
	}
	return r.CreatedAt
}

// Aggregate sums the four macros over the records whose effective timestamp
// lies in [start, end] inclusive, and returns the number of records counted.
// Missing macro fields contribute zero.
func Aggregate(records []MealRecord, start, end time.Time) (Totals, int) {
	var totals Totals
	count := 0
	for _, r := range records {
		ts := r.EffectiveTime()
		if ts.Before(start) || ts.After(end) {
			continue
		}
		count++
		totals.Calories += macroValue(r.Fields, "calories")
		totals.Protein += macroValue(r.Fields, "protein")
		totals.Fat += macroValue(r.Fields, "fat")
		totals.Fiber += macroValue(r.Fields, "fiber")
	}
	return totals, count
}

// macroValue resolves one canonical macro from a payload, consulting the
// alias list in priority order. The first key present with a numeric value
// wins.
func macroValue(fields map[string]interface{}, macro string) float64 {
	for _, key := range macroAliases[macro] {
		if raw, ok := fields[key]; ok {
			if v, ok := asFloat(raw); ok {
				return v
			}
		}
	}
	return 0
}

func asFloat(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// MealConsistency is the percentage of an assumed 4-meals/day target actually
// logged, capped at 100.
func MealConsistency(mealCount int) int {
	pct := int(math.Round(float64(mealCount) / MealsPerDay * 100))
	if pct > 100 {
		return 100
	}
	return pct
}
