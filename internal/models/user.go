package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"size:50;not null" json:"name"`
	Age          int            `gorm:"not null" json:"age"`
	Gender       string         `gorm:"size:10;not null" json:"gender"`
	Height       float64        `gorm:"not null" json:"height"`
	Weight       float64        `gorm:"not null" json:"weight"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	BMI          float64        `json:"bmi"`
	Role         string         `gorm:"size:10;not null;default:'user'" json:"role"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	LastLogin    time.Time      `json:"last_login"`

	Progress []ProgressEntry `gorm:"foreignKey:UserID" json:"progress,omitempty"`
}

// BeforeCreate assigns a UUID so the model works on both postgres and sqlite.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// BMICategory maps the stored BMI value onto the standard label.
func (u *User) BMICategory() string {
	switch {
	case u.BMI < 18.5:
		return "Underweight"
	case u.BMI < 25:
		return "Normal weight"
	case u.BMI < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

// ProgressEntry is one weight/calorie snapshot on a user's timeline.
type ProgressEntry struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Date      time.Time `json:"date"`
	Weight    float64   `gorm:"not null" json:"weight"`
	Calories  int       `json:"calories"`
	BMI       float64   `gorm:"not null" json:"bmi"`
	Notes     string    `gorm:"size:500" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *ProgressEntry) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	return nil
}
