package types

// SignupRequest is the body of POST /api/users/signup.
type SignupRequest struct {
	Name     string  `json:"name"`
	Age      int     `json:"age"`
	Gender   string  `json:"gender"`
	Height   float64 `json:"height"`
	Weight   float64 `json:"weight"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
}

// LoginRequest is the body of POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest is the body of PUT /api/users/me. Pointer fields are
// left untouched when absent.
type UpdateProfileRequest struct {
	Name   *string  `json:"name"`
	Age    *int     `json:"age"`
	Height *float64 `json:"height"`
	Weight *float64 `json:"weight"`
	Email  *string  `json:"email"`
}

// AddProgressRequest is the body of POST /api/users/progress.
type AddProgressRequest struct {
	Weight   float64 `json:"weight"`
	Calories int     `json:"calories"`
	Notes    string  `json:"notes"`
}

// PlanRequest is the body of POST /api/meals/plan. Pointers distinguish
// "missing" from zero values so validation can reject incomplete requests.
type PlanRequest struct {
	BMI    *float64 `json:"bmi"`
	Age    *int     `json:"age"`
	UserID string   `json:"userId"`
}

// SaveMealRequest is the body of POST /api/meals/save. Meal is kept as a raw
// map: clients send catalog entries and hand-entered meals with differing
// field spellings.
type SaveMealRequest struct {
	UserID string                 `json:"userId"`
	Meal   map[string]interface{} `json:"meal"`
}

// RateMealRequest is the body of POST /api/meals/rate/:mealId.
type RateMealRequest struct {
	UserID string `json:"userId"`
	Rating *int   `json:"rating"`
}

// UserIDRequest is the body of endpoints that only address a user.
type UserIDRequest struct {
	UserID string `json:"userId"`
}

// UpdateHealthRequest is the body of POST /api/health-data/update. Only the
// fields present are applied.
type UpdateHealthRequest struct {
	UserID   string   `json:"userId"`
	Steps    *int     `json:"steps"`
	Water    *float64 `json:"water"`
	Sleep    *float64 `json:"sleep"`
	Exercise *float64 `json:"exercise"`
	Weight   *float64 `json:"weight"`
}

// TrackMealRequest is the body of POST /api/tracking/saved.
type TrackMealRequest struct {
	UserID   string   `json:"userId"`
	Name     string   `json:"name"`
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Fats     *float64 `json:"fats"`
	Fiber    *float64 `json:"fiber"`
	Carbs    float64  `json:"carbs"`
	MealType string   `json:"mealType"`
	AddedAt  string   `json:"addedAt"`
}
