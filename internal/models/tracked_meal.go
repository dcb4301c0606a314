package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackedMeal is a single logged meal, independent of the plan document.
type TrackedMeal struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
	UserID    string    `gorm:"size:64;not null;index:idx_tracked_user_added" json:"userId"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Calories  float64   `gorm:"not null;default:0" json:"calories"`
	Protein   float64   `gorm:"not null;default:0" json:"protein"`
	Fats      float64   `gorm:"not null;default:0" json:"fats"`
	Fiber     float64   `gorm:"not null;default:0" json:"fiber"`
	Carbs     float64   `gorm:"not null;default:0" json:"carbs"`
	MealType  string    `gorm:"size:20;not null;default:'meal'" json:"mealType"`
	AddedAt   time.Time `gorm:"not null;index:idx_tracked_user_added" json:"addedAt"`
}

func (m *TrackedMeal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.AddedAt.IsZero() {
		m.AddedAt = time.Now()
	}
	return nil
}
