package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBMICategoryLabel(t *testing.T) {
	tests := []struct {
		name string
		bmi  float64
		want string
	}{
		{"underweight below threshold", 18.4, "underweight"},
		{"normal at lower bound", 18.5, "normal"},
		{"normal below upper bound", 24.9, "normal"},
		{"overweight at lower bound", 25, "overweight"},
		{"obese at lower bound", 30, "obese"},
		{"obese well above", 42.7, "obese"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BMICategoryLabel(tt.bmi))
		})
	}
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "normalweight", NormalizeCategory("Normal weight"))
	assert.Equal(t, "normalweight", NormalizeCategory("normal-weight"))
	assert.Equal(t, "obese", NormalizeCategory(" Obese! "))
	assert.Equal(t, "", NormalizeCategory("123"))
}

func TestParseAgeRange(t *testing.T) {
	min, max, ok := ParseAgeRange("19-30 years")
	require.True(t, ok)
	assert.Equal(t, 19, min)
	assert.Equal(t, 30, max)

	min, max, ok = ParseAgeRange("Adults 31 to 50")
	require.True(t, ok)
	assert.Equal(t, 31, min)
	assert.Equal(t, 50, max)

	_, _, ok = ParseAgeRange("all ages")
	assert.False(t, ok)

	_, _, ok = ParseAgeRange("65+")
	assert.False(t, ok)
}

func TestEffectiveRating(t *testing.T) {
	assert.Equal(t, 3, Entry{}.EffectiveRating())
	assert.Equal(t, 5, Entry{Rating: 5}.EffectiveRating())
	assert.Equal(t, 1, Entry{Rating: 1}.EffectiveRating())
}

func testCatalog() *Catalog {
	return New([]Entry{
		{ID: "m1", Dish: "Oats Porridge", MealType: "Breakfast", AgeGroup: "19-30 years", BMICategory: "Normal", Rating: 4},
		{ID: "m2", Dish: "Vegetable Poha", MealType: "Breakfast", AgeGroup: "19-30 years", BMICategory: "Normal"},
		{ID: "m3", Dish: "Sprout Salad", MealType: "Breakfast", AgeGroup: "31-50 years", BMICategory: "Overweight", Rating: 5},
		{ID: "m4", Dish: "Idli Sambar", MealType: "Breakfast", AgeGroup: "19-30 years", BMICategory: "Underweight", Rating: 2},
		{ID: "m5", Dish: "Rajma Chawal", MealType: "Lunch", AgeGroup: "19-30 years", BMICategory: "Normal", Rating: 3},
	})
}

func TestFilterMatchesProfile(t *testing.T) {
	got := testCatalog().Filter(25, 22.0, "Breakfast")
	require.Len(t, got, 2)
	// Rating 4 sorts above the implicit default of 3.
	assert.Equal(t, "m1", got[0].ID)
	assert.Equal(t, "m2", got[1].ID)
}

func TestFilterCategoryNormalization(t *testing.T) {
	c := New([]Entry{
		{ID: "m1", Dish: "Dal", MealType: "Lunch", AgeGroup: "19-30 years", BMICategory: "normal-WEIGHT"},
		{ID: "m2", Dish: "Kale", MealType: "Lunch", AgeGroup: "19-30 years", BMICategory: "Obese"},
	})
	got := c.Filter(25, 31.0, "Lunch")
	require.Len(t, got, 1)
	assert.Equal(t, "m2", got[0].ID)
}

func TestFilterFallsBackToMealType(t *testing.T) {
	// No breakfast covers age 60, so every breakfast qualifies.
	got := testCatalog().Filter(60, 22.0, "Breakfast")
	require.Len(t, got, 4)
	// Highest rated first, ties in catalog order.
	assert.Equal(t, "m3", got[0].ID)
	assert.Equal(t, "m1", got[1].ID)
	assert.Equal(t, "m2", got[2].ID)
	assert.Equal(t, "m4", got[3].ID)
}

func TestFilterMealTypeCaseInsensitive(t *testing.T) {
	got := testCatalog().Filter(25, 22.0, "bReAkFaSt")
	assert.Len(t, got, 2)
}

func TestFilterEmptyWhenTypeUnknown(t *testing.T) {
	got := testCatalog().Filter(25, 22.0, "Dinner")
	assert.Empty(t, got)
}

func TestFilterSortIsStable(t *testing.T) {
	c := New([]Entry{
		{ID: "a", MealType: "Snack", AgeGroup: "19-30 years", BMICategory: "Normal", Rating: 3},
		{ID: "b", MealType: "Snack", AgeGroup: "19-30 years", BMICategory: "Normal"},
		{ID: "c", MealType: "Snack", AgeGroup: "19-30 years", BMICategory: "Normal", Rating: 3},
	})
	got := c.Filter(20, 20.0, "Snack")
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestLoadCatalogFile(t *testing.T) {
	c, err := Load("../../data/meals.json")
	require.NoError(t, err)
	assert.Greater(t, c.Len(), 0)

	got := c.Filter(25, 22.0, "Breakfast")
	assert.NotEmpty(t, got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("does-not-exist.json")
	assert.Error(t, err)
}
