package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HealthData is one record per user per calendar day. Date is stored at
// midnight local time; the unique index enforces the one-per-day invariant.
type HealthData struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    string    `gorm:"size:64;not null;uniqueIndex:idx_user_day" json:"user"`
	Date      time.Time `gorm:"not null;uniqueIndex:idx_user_day" json:"date"`

	Steps    int      `gorm:"not null;default:0" json:"steps"`
	Water    float64  `gorm:"not null;default:0" json:"water"`
	Sleep    float64  `gorm:"not null;default:0" json:"sleep"`
	Exercise float64  `gorm:"not null;default:0" json:"exercise"`
	Weight   *float64 `json:"weight"`

	Calories        float64 `gorm:"not null;default:0" json:"calories"`
	Protein         float64 `gorm:"not null;default:0" json:"protein"`
	Fat             float64 `gorm:"not null;default:0" json:"fat"`
	Fiber           float64 `gorm:"not null;default:0" json:"fiber"`
	MealConsistency int     `gorm:"not null;default:0" json:"mealConsistency"`
}

func (h *HealthData) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
