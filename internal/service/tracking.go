package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/vishnu-gaddam/Nutrify/internal/models"
	"github.com/vishnu-gaddam/Nutrify/internal/types"
)

var ErrMissingFields = errors.New("missing required fields")

// TrackingService handles individually logged meals, independent of the plan
// document.
type TrackingService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTrackingService(db *gorm.DB) *TrackingService {
	return &TrackingService{db: db, now: time.Now}
}

// List returns the user's tracked meals, newest first. When day is non-zero
// only meals logged on that calendar day are returned.
func (s *TrackingService) List(ctx context.Context, userID string, day time.Time) ([]models.TrackedMeal, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if !day.IsZero() {
		start, end := dayRange(day)
		query = query.Where("added_at >= ? AND added_at <= ?", start, end)
	}
	var meals []models.TrackedMeal
	if err := query.Order("added_at DESC").Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

// Add logs a new tracked meal. Name and all four primary macros are required.
func (s *TrackingService) Add(ctx context.Context, req *types.TrackMealRequest) (*models.TrackedMeal, error) {
	if req.UserID == "" || req.Name == "" ||
		req.Calories == nil || req.Protein == nil || req.Fats == nil || req.Fiber == nil {
		return nil, ErrMissingFields
	}

	addedAt := s.now()
	if req.AddedAt != "" {
		if t, err := time.Parse(time.RFC3339, req.AddedAt); err == nil {
			addedAt = t
		}
	}

	mealType := req.MealType
	if mealType == "" {
		mealType = "meal"
	}

	meal := models.TrackedMeal{
		UserID:   req.UserID,
		Name:     req.Name,
		Calories: *req.Calories,
		Protein:  *req.Protein,
		Fats:     *req.Fats,
		Fiber:    *req.Fiber,
		Carbs:    req.Carbs,
		MealType: mealType,
		AddedAt:  addedAt,
	}
	if err := s.db.WithContext(ctx).Create(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

// Weekly returns the user's tracked meals from the last 7 days, newest
// first.
func (s *TrackingService) Weekly(ctx context.Context, userID string) ([]models.TrackedMeal, error) {
	end := s.now()
	start := end.AddDate(0, 0, -7)
	var meals []models.TrackedMeal
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND added_at >= ? AND added_at <= ?", userID, start, end).
		Order("added_at DESC").
		Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

// Delete removes one tracked meal by identifier.
func (s *TrackingService) Delete(ctx context.Context, mealID string) error {
	res := s.db.WithContext(ctx).Where("id = ?", mealID).Delete(&models.TrackedMeal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMealNotFound
	}
	return nil
}
