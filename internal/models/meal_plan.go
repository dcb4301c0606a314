package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlanCategories is the fixed rotation order for meal plan generation.
var PlanCategories = []string{"Breakfast", "Lunch", "Snack", "Dinner"}

// MealPlan is the single plan document owned by one user. The user key is a
// plain string because clients address users by the identifier they hold,
// which is not always one of our UUIDs.
type MealPlan struct {
	ID            uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	UserID        string     `gorm:"size:64;not null;uniqueIndex" json:"user"`
	LastResetDate *time.Time `json:"last_reset_date"`

	Meals         []SavedMeal     `gorm:"foreignKey:MealPlanID;constraint:OnDelete:CASCADE" json:"meals"`
	RotationState []RotationState `gorm:"foreignKey:MealPlanID;constraint:OnDelete:CASCADE" json:"rotation_state"`
}

func (p *MealPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// SavedMeal is a meal the user permanently added to their plan. The primary
// key is a string: when the meal came from the catalog it keeps the catalog
// identifier, which is what future plan generations exclude by.
type SavedMeal struct {
	ID          string    `gorm:"size:64;primarykey" json:"_id"`
	MealPlanID  uuid.UUID `gorm:"type:varchar(36);not null;index" json:"-"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Category    string    `gorm:"size:50;not null" json:"category"`
	Calories    float64   `json:"calories"`
	Protein     float64   `json:"protein"`
	Carbs       float64   `json:"carbs"`
	Fats        float64   `json:"fats"`
	Fiber       float64   `json:"fiber"`
	Ingredients string    `gorm:"type:text" json:"ingredients"`
	Notes       string    `gorm:"type:text" json:"notes"`
	IsFavorite  bool      `gorm:"not null;default:false" json:"isFavorite"`
	AddedByUser bool      `gorm:"not null;default:false" json:"addedByUser"`
	Image       string    `gorm:"size:255" json:"image"`
	Rating      int       `gorm:"not null;default:3" json:"rating"`
	AddedAt     time.Time `gorm:"not null" json:"addedAt"`
	CreatedAt   time.Time `json:"createdAt"`

	// Payload keeps the meal exactly as the client sent it. Nutrition
	// aggregation reads macros from here so legacy field spellings survive.
	Payload JSONBMap `gorm:"type:jsonb" json:"-"`
}

// RotationState is the per-category round-robin pointer. LastIndex -1 means
// the rotation has not started (or was reset). UsedMealIDs is written by the
// explicit reset but never consulted for exclusion; exclusion goes by saved
// meal identifiers only.
type RotationState struct {
	ID          uint             `gorm:"primarykey" json:"-"`
	MealPlanID  uuid.UUID        `gorm:"type:varchar(36);not null;uniqueIndex:idx_plan_category" json:"-"`
	Category    string           `gorm:"size:20;not null;uniqueIndex:idx_plan_category" json:"category"`
	LastIndex   int              `gorm:"not null;default:-1" json:"lastIndex"`
	UsedMealIDs JSONBStringArray `gorm:"type:jsonb" json:"usedMealIds"`
}
