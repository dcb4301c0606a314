package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vishnu-gaddam/Nutrify/internal/catalog"
	"github.com/vishnu-gaddam/Nutrify/internal/models"
)

var (
	ErrPlanNotFound  = errors.New("meal plan not found")
	ErrMealNotFound  = errors.New("meal not found")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// mealsPerCategory is how many candidates a plan offers per category.
const mealsPerCategory = 2

// MealPlanService owns the per-user plan document: saved meals, the rotation
// state driving plan generation, and the weekly reset schedule.
type MealPlanService struct {
	db      *gorm.DB
	catalog *catalog.Catalog
	now     func() time.Time
}

// NewMealPlanService creates a new MealPlanService instance. The catalog is
// loaded once at startup and injected here.
func NewMealPlanService(db *gorm.DB, cat *catalog.Catalog) *MealPlanService {
	return &MealPlanService{db: db, catalog: cat, now: time.Now}
}

// startOfDay truncates t to midnight in its location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// mostRecentMonday returns midnight of the Monday on or before day.
func mostRecentMonday(day time.Time) time.Time {
	day = startOfDay(day)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// weeklyResetDue reports whether a Monday boundary has been crossed since the
// last reset. Due when the last reset predates the most recent Monday, or
// when today is Monday and no reset has happened yet today.
func weeklyResetDue(lastReset *time.Time, now time.Time) bool {
	if lastReset == nil {
		return true
	}
	today := startOfDay(now)
	last := startOfDay(*lastReset)
	if today.Weekday() == time.Monday && !last.Equal(today) {
		return true
	}
	return last.Before(mostRecentMonday(today))
}

// loadOrCreatePlan fetches the user's plan document, creating it lazily with
// a full set of rotation entries on first use.
func (s *MealPlanService) loadOrCreatePlan(ctx context.Context, userID string) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := s.db.WithContext(ctx).
		Preload("Meals").
		Preload("RotationState").
		Where("user_id = ?", userID).
		First(&plan).Error
	if err == nil {
		return &plan, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := s.now()
	plan = models.MealPlan{
		UserID:        userID,
		LastResetDate: &now,
	}
	for _, cat := range models.PlanCategories {
		plan.RotationState = append(plan.RotationState, models.RotationState{
			Category:    cat,
			LastIndex:   -1,
			UsedMealIDs: models.JSONBStringArray{},
		})
	}
	if err := s.db.WithContext(ctx).Create(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// rotationEntry finds the plan's entry for a category, creating a fresh one
// when missing.
func (s *MealPlanService) rotationEntry(ctx context.Context, plan *models.MealPlan, category string) (*models.RotationState, error) {
	for i := range plan.RotationState {
		if plan.RotationState[i].Category == category {
			return &plan.RotationState[i], nil
		}
	}
	rs := models.RotationState{
		MealPlanID:  plan.ID,
		Category:    category,
		LastIndex:   -1,
		UsedMealIDs: models.JSONBStringArray{},
	}
	if err := s.db.WithContext(ctx).Create(&rs).Error; err != nil {
		return nil, err
	}
	plan.RotationState = append(plan.RotationState, rs)
	return &plan.RotationState[len(plan.RotationState)-1], nil
}

// GeneratePlan produces up to two candidate meals per category for the user,
// advancing the per-category rotation pointer. Candidates already saved to
// the plan are excluded by identifier; a meal with the same name but a
// different identifier stays eligible. The weekly Monday reset is applied
// before filtering when due.
func (s *MealPlanService) GeneratePlan(ctx context.Context, userID string, ageYears int, bmi float64) (map[string][]catalog.Entry, error) {
	plan, err := s.loadOrCreatePlan(ctx, userID)
	if err != nil {
		return nil, err
	}

	if weeklyResetDue(plan.LastResetDate, s.now()) {
		now := s.now()
		if err := s.db.WithContext(ctx).Model(&models.RotationState{}).
			Where("meal_plan_id = ?", plan.ID).
			Update("last_index", -1).Error; err != nil {
			return nil, err
		}
		for i := range plan.RotationState {
			plan.RotationState[i].LastIndex = -1
		}
		plan.LastResetDate = &now
		if err := s.db.WithContext(ctx).Model(plan).
			Update("last_reset_date", now).Error; err != nil {
			return nil, err
		}
	}

	savedIDs := make(map[string]struct{}, len(plan.Meals))
	for _, m := range plan.Meals {
		savedIDs[m.ID] = struct{}{}
	}

	result := make(map[string][]catalog.Entry, len(models.PlanCategories))
	for _, category := range models.PlanCategories {
		candidates := s.catalog.Filter(ageYears, bmi, category)

		filtered := candidates[:0:0]
		for _, e := range candidates {
			if _, saved := savedIDs[e.ID]; saved {
				continue
			}
			filtered = append(filtered, e)
		}

		if len(filtered) == 0 {
			result[category] = []catalog.Entry{}
			continue
		}

		rs, err := s.rotationEntry(ctx, plan, category)
		if err != nil {
			return nil, err
		}

		n := len(filtered)
		start := (rs.LastIndex + 1) % n
		picks := make([]catalog.Entry, 0, mealsPerCategory)
		for attempts := 0; len(picks) < mealsPerCategory && attempts < n; attempts++ {
			picks = append(picks, filtered[start])
			start = (start + 1) % n
		}
		result[category] = picks

		rs.LastIndex = start - 1
		if rs.LastIndex < 0 {
			rs.LastIndex = n - 1
		}
		if err := s.db.WithContext(ctx).Model(&models.RotationState{}).
			Where("meal_plan_id = ? AND category = ?", plan.ID, category).
			Update("last_index", rs.LastIndex).Error; err != nil {
			return nil, err
		}
	}

	return result, nil
}

// SaveMeal appends a meal to the user's plan, creating the plan if needed.
// The raw payload is kept alongside the normalized columns so nutrition
// aggregation can read legacy field spellings. Returns the full plan
// document.
func (s *MealPlanService) SaveMeal(ctx context.Context, userID string, payload map[string]interface{}) (*models.MealPlan, error) {
	plan, err := s.loadOrCreatePlan(ctx, userID)
	if err != nil {
		return nil, err
	}

	meal := models.SavedMeal{
		ID:          payloadID(payload),
		MealPlanID:  plan.ID,
		Name:        payloadString(payload, "name", "Unnamed Meal"),
		Category:    payloadString(payload, "category", "General"),
		Calories:    payloadFloat(payload, "calories", "Calories (kcal)"),
		Protein:     payloadFloat(payload, "protein", "Protein (g)"),
		Carbs:       payloadFloat(payload, "carbs", "Carbs (g)"),
		Fats:        payloadFloat(payload, "fats", "Fat (g)", "fat"),
		Fiber:       payloadFloat(payload, "fiber", "Fiber (g)"),
		Ingredients: payloadString(payload, "ingredients", ""),
		Notes:       payloadString(payload, "notes", ""),
		Image:       payloadString(payload, "image", "/images/default.jpg"),
		Rating:      payloadRating(payload),
		AddedAt:     s.now(),
		Payload:     payload,
	}
	if b, ok := payload["addedByUser"].(bool); ok {
		meal.AddedByUser = b
	}

	if err := s.db.WithContext(ctx).Create(&meal).Error; err != nil {
		return nil, err
	}

	plan.Meals = append(plan.Meals, meal)
	return plan, nil
}

// LikeMeal marks one saved meal as favorite.
func (s *MealPlanService) LikeMeal(ctx context.Context, userID, mealID string) (*models.SavedMeal, error) {
	meal, err := s.findSavedMeal(ctx, userID, mealID)
	if err != nil {
		return nil, err
	}
	meal.IsFavorite = true
	if err := s.db.WithContext(ctx).Model(meal).Update("is_favorite", true).Error; err != nil {
		return nil, err
	}
	return meal, nil
}

// RateMeal sets the rating on one saved meal. The rating is validated before
// any lookup so an out-of-range value never mutates state.
func (s *MealPlanService) RateMeal(ctx context.Context, userID, mealID string, rating int) (*models.SavedMeal, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	meal, err := s.findSavedMeal(ctx, userID, mealID)
	if err != nil {
		return nil, err
	}
	meal.Rating = rating
	if err := s.db.WithContext(ctx).Model(meal).Update("rating", rating).Error; err != nil {
		return nil, err
	}
	return meal, nil
}

// ResetRotation rewinds the rotation pointer and clears the used-meal list
// for all four categories. The user-triggered counterpart of the weekly
// reset.
func (s *MealPlanService) ResetRotation(ctx context.Context, userID string) error {
	var plan models.MealPlan
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return s.db.WithContext(ctx).Model(&models.RotationState{}).
		Where("meal_plan_id = ? AND category IN ?", plan.ID, models.PlanCategories).
		Updates(map[string]interface{}{
			"last_index":    -1,
			"used_meal_ids": models.JSONBStringArray{},
		}).Error
}

// SavedMeals returns every meal on the user's plan.
func (s *MealPlanService) SavedMeals(ctx context.Context, userID string) ([]models.SavedMeal, error) {
	var plan models.MealPlan
	if err := s.db.WithContext(ctx).Preload("Meals").
		Where("user_id = ?", userID).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan.Meals, nil
}

// RemoveMeal deletes one saved meal by identifier.
func (s *MealPlanService) RemoveMeal(ctx context.Context, userID, mealID string) error {
	var plan models.MealPlan
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	res := s.db.WithContext(ctx).
		Where("meal_plan_id = ? AND id = ?", plan.ID, mealID).
		Delete(&models.SavedMeal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMealNotFound
	}
	return nil
}

func (s *MealPlanService) findSavedMeal(ctx context.Context, userID, mealID string) (*models.SavedMeal, error) {
	var plan models.MealPlan
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	var meal models.SavedMeal
	if err := s.db.WithContext(ctx).
		Where("meal_plan_id = ? AND id = ?", plan.ID, mealID).
		First(&meal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	return &meal, nil
}

// payloadID picks the identifier for a saved meal: the catalog identifier
// when the client sent one, otherwise a fresh UUID. Keeping the catalog
// identifier is what makes save-time exclusion work.
func payloadID(payload map[string]interface{}) string {
	for _, key := range []string{"_id", "id"} {
		if v, ok := payload[key].(string); ok && v != "" {
			return v
		}
	}
	return uuid.New().String()
}

func payloadString(payload map[string]interface{}, key, fallback string) string {
	if v, ok := payload[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func payloadFloat(payload map[string]interface{}, keys ...string) float64 {
	for _, key := range keys {
		switch v := payload[key].(type) {
		case float64:
			return v
		case int:
			return float64(v)
		}
	}
	return 0
}

func payloadRating(payload map[string]interface{}) int {
	if v, ok := payload["rating"].(float64); ok && v >= 1 && v <= 5 {
		return int(v)
	}
	return 3
}
