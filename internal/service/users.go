package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/vishnu-gaddam/Nutrify/internal/models"
)

// UserStats is the platform-wide summary shown to admins.
type UserStats struct {
	TotalUsers        int64            `json:"totalUsers"`
	ActiveUsers       int64            `json:"activeUsers"`
	NewUsersThisMonth int64            `json:"newUsersThisMonth"`
	BMIDistribution   map[string]int64 `json:"bmiDistribution"`
}

// ListUsers returns every non-admin user with their progress, newest first.
func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Preload("Progress").
		Where("role = ?", "user").
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Stats aggregates platform-wide user counts and the BMI category
// distribution.
func (s *AuthService) Stats(ctx context.Context) (*UserStats, error) {
	stats := &UserStats{BMIDistribution: map[string]int64{}}

	base := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", "user")
	}

	if err := base().Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := base().Where("is_active = ?", true).Count(&stats.ActiveUsers).Error; err != nil {
		return nil, err
	}
	monthAgo := time.Now().AddDate(0, 0, -30)
	if err := base().Where("created_at >= ?", monthAgo).Count(&stats.NewUsersThisMonth).Error; err != nil {
		return nil, err
	}

	type bucket struct {
		Category string
		Count    int64
	}
	var buckets []bucket
	if err := base().
		Select(`CASE
			WHEN bmi < 18.5 THEN 'Underweight'
			WHEN bmi < 25 THEN 'Normal'
			WHEN bmi < 30 THEN 'Overweight'
			ELSE 'Obese'
		END AS category, COUNT(*) AS count`).
		Group("category").
		Scan(&buckets).Error; err != nil {
		return nil, err
	}
	for _, b := range buckets {
		stats.BMIDistribution[b.Category] = b.Count
	}
	return stats, nil
}
