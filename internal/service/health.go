package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/vishnu-gaddam/Nutrify/internal/models"
	"github.com/vishnu-gaddam/Nutrify/internal/nutrition"
	"github.com/vishnu-gaddam/Nutrify/internal/types"
)

// HealthService maintains the one-record-per-user-per-day health documents
// and derives the weekly views. Nutrition totals are recomputed from the
// user's saved meals on every read rather than maintained incrementally.
type HealthService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewHealthService(db *gorm.DB) *HealthService {
	return &HealthService{db: db, now: time.Now}
}

// dayRange returns the inclusive start and end of the calendar day of t.
func dayRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}

// Today returns today's health record for the user, creating it when absent
// and refreshing its nutrition totals from the saved meals added today.
func (s *HealthService) Today(ctx context.Context, userID string) (*models.HealthData, error) {
	dayStart, dayEnd := dayRange(s.now())

	var record models.HealthData
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, dayStart, dayEnd).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = models.HealthData{UserID: userID, Date: dayStart}
	} else if err != nil {
		return nil, err
	}

	if err := s.refreshNutrition(ctx, &record, dayStart, dayEnd); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Update applies a partial update to today's record, then recomputes the
// nutrition totals. Absent fields are left unchanged.
func (s *HealthService) Update(ctx context.Context, req *types.UpdateHealthRequest) (*models.HealthData, error) {
	dayStart, dayEnd := dayRange(s.now())

	var record models.HealthData
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", req.UserID, dayStart, dayEnd).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = models.HealthData{UserID: req.UserID, Date: dayStart}
	} else if err != nil {
		return nil, err
	}

	if req.Steps != nil {
		record.Steps = *req.Steps
	}
	if req.Water != nil {
		record.Water = *req.Water
	}
	if req.Sleep != nil {
		record.Sleep = *req.Sleep
	}
	if req.Exercise != nil {
		record.Exercise = *req.Exercise
	}
	if req.Weight != nil {
		record.Weight = req.Weight
	}

	if err := s.refreshNutrition(ctx, &record, dayStart, dayEnd); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// refreshNutrition recomputes the record's macro totals and meal consistency
// from the user's saved meals inside the day window. Without a plan or meals
// the record keeps its current values.
func (s *HealthService) refreshNutrition(ctx context.Context, record *models.HealthData, dayStart, dayEnd time.Time) error {
	var plan models.MealPlan
	err := s.db.WithContext(ctx).Preload("Meals").
		Where("user_id = ?", record.UserID).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(plan.Meals) == 0 {
		return nil
	}

	records := make([]nutrition.MealRecord, 0, len(plan.Meals))
	for _, m := range plan.Meals {
		records = append(records, mealRecord(m))
	}

	totals, count := nutrition.Aggregate(records, dayStart, dayEnd)
	record.Calories = totals.Calories
	record.Protein = totals.Protein
	record.Fat = totals.Fat
	record.Fiber = totals.Fiber
	record.MealConsistency = nutrition.MealConsistency(count)
	return nil
}

// mealRecord adapts a saved meal for the aggregator. The stored payload wins
// so legacy field spellings are honored; meals saved without one fall back to
// the normalized columns.
func mealRecord(m models.SavedMeal) nutrition.MealRecord {
	fields := map[string]interface{}(m.Payload)
	if len(fields) == 0 {
		fields = map[string]interface{}{
			"calories": m.Calories,
			"protein":  m.Protein,
			"fats":     m.Fats,
			"fiber":    m.Fiber,
		}
	}
	return nutrition.MealRecord{
		AddedAt:   m.AddedAt,
		CreatedAt: m.CreatedAt,
		Fields:    fields,
	}
}

// Weekly returns the last 7 calendar days of health records, oldest first.
// Days without a persisted record are filled with zeroed placeholders so the
// series always has exactly 7 points.
func (s *HealthService) Weekly(ctx context.Context, userID string) ([]models.HealthData, error) {
	todayStart, todayEnd := dayRange(s.now())
	weekStart := todayStart.AddDate(0, 0, -(nutrition.DaysInWeek - 1))

	var rows []models.HealthData
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, weekStart, todayEnd).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	byDay := make(map[string]models.HealthData, len(rows))
	for _, r := range rows {
		byDay[r.Date.Format("2006-01-02")] = r
	}

	series := make([]models.HealthData, 0, nutrition.DaysInWeek)
	for d := 0; d < nutrition.DaysInWeek; d++ {
		day := weekStart.AddDate(0, 0, d)
		if r, ok := byDay[day.Format("2006-01-02")]; ok {
			series = append(series, r)
		} else {
			series = append(series, models.HealthData{UserID: userID, Date: day})
		}
	}
	return series, nil
}

// Stats derives the weekly dashboard percentages from the recorded days of
// the past week.
func (s *HealthService) Stats(ctx context.Context, userID string) (nutrition.WeeklyStats, error) {
	todayStart, todayEnd := dayRange(s.now())
	weekStart := todayStart.AddDate(0, 0, -(nutrition.DaysInWeek - 1))

	var rows []models.HealthData
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, weekStart, todayEnd).
		Find(&rows).Error; err != nil {
		return nutrition.WeeklyStats{}, err
	}

	days := make([]nutrition.DaySummary, 0, len(rows))
	for _, r := range rows {
		days = append(days, nutrition.DaySummary{
			Steps:           r.Steps,
			Water:           r.Water,
			Exercise:        r.Exercise,
			MealConsistency: r.MealConsistency,
		})
	}
	return nutrition.ComputeWeeklyStats(days), nil
}
