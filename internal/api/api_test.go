package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishnu-gaddam/Nutrify/internal/catalog"
	"github.com/vishnu-gaddam/Nutrify/internal/service"
	"github.com/vishnu-gaddam/Nutrify/internal/testhelpers"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Entry{
		{ID: "b1", Dish: "Oats Porridge", MealType: "Breakfast", AgeGroup: "19-30 years", BMICategory: "Normal"},
		{ID: "b2", Dish: "Vegetable Poha", MealType: "Breakfast", AgeGroup: "19-30 years", BMICategory: "Normal"},
		{ID: "l1", Dish: "Rajma Chawal", MealType: "Lunch", AgeGroup: "19-30 years", BMICategory: "Normal"},
		{ID: "s1", Dish: "Roasted Chana", MealType: "Snack", AgeGroup: "19-30 years", BMICategory: "Normal"},
		{ID: "d1", Dish: "Paneer Tikka", MealType: "Dinner", AgeGroup: "19-30 years", BMICategory: "Normal"},
	})
}

func setupRouter(t *testing.T) (*gin.Engine, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	auth := service.NewAuthService(db, "test-secret")

	router := gin.New()
	SetupAPI(router, Services{
		Auth:     auth,
		Plans:    service.NewMealPlanService(db, testCatalog()),
		Health:   service.NewHealthService(db),
		Tracking: service.NewTrackingService(db),
	})
	return router, auth
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, token string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func signupBody(email string) gin.H {
	return gin.H{
		"name":     "Test User",
		"age":      25,
		"gender":   "female",
		"height":   165,
		"weight":   60,
		"email":    email,
		"password": "password123",
	}
}

func signup(t *testing.T, router *gin.Engine, email string) (token, userID string) {
	t.Helper()
	w, resp := doJSON(t, router, http.MethodPost, "/api/users/signup", signupBody(email), "")
	require.Equal(t, http.StatusCreated, w.Code)
	token = resp["token"].(string)
	userID = resp["user"].(map[string]interface{})["id"].(string)
	return token, userID
}

func TestHealthCheck(t *testing.T) {
	router, _ := setupRouter(t)
	w, resp := doJSON(t, router, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Nutrify API running", resp["message"])
}

func TestUnknownRoute(t *testing.T) {
	router, _ := setupRouter(t)
	w, resp := doJSON(t, router, http.MethodGet, "/api/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Route not found", resp["message"])
}

func TestSignup(t *testing.T) {
	router, _ := setupRouter(t)

	w, resp := doJSON(t, router, http.MethodPost, "/api/users/signup", signupBody("test@example.com"), "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, resp["token"])

	user := resp["user"].(map[string]interface{})
	assert.Equal(t, "test@example.com", user["email"])
	assert.Equal(t, "22.0", user["bmi"])
	assert.Equal(t, "Normal weight", user["bmiCategory"])

	// Duplicate email.
	w, resp = doJSON(t, router, http.MethodPost, "/api/users/signup", signupBody("test@example.com"), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists with this email", resp["message"])
}

func TestSignupMissingFields(t *testing.T) {
	router, _ := setupRouter(t)

	body := signupBody("test@example.com")
	delete(body, "password")
	w, resp := doJSON(t, router, http.MethodPost, "/api/users/signup", body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please provide all required fields", resp["message"])
}

func TestLogin(t *testing.T) {
	router, _ := setupRouter(t)
	signup(t, router, "test@example.com")

	w, resp := doJSON(t, router, http.MethodPost, "/api/users/login", gin.H{
		"email": "test@example.com", "password": "password123",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Login successful", resp["message"])
	assert.NotEmpty(t, resp["token"])

	w, resp = doJSON(t, router, http.MethodPost, "/api/users/login", gin.H{
		"email": "test@example.com", "password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", resp["message"])
}

func TestProfileRequiresAuth(t *testing.T) {
	router, _ := setupRouter(t)

	w, _ := doJSON(t, router, http.MethodGet, "/api/users/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, router, http.MethodGet, "/api/users/me", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfile(t *testing.T) {
	router, _ := setupRouter(t)
	token, _ := signup(t, router, "test@example.com")

	w, resp := doJSON(t, router, http.MethodGet, "/api/users/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test@example.com", resp["email"])
	assert.Len(t, resp["progress"], 1)
}

func TestUpdateProfile(t *testing.T) {
	router, _ := setupRouter(t)
	token, _ := signup(t, router, "test@example.com")

	w, resp := doJSON(t, router, http.MethodPut, "/api/users/me", gin.H{"weight": 65}, token)
	require.Equal(t, http.StatusOK, w.Code)
	user := resp["user"].(map[string]interface{})
	assert.Equal(t, 65.0, user["weight"])
	assert.Equal(t, "23.9", user["bmi"])
}

func TestAddProgress(t *testing.T) {
	router, _ := setupRouter(t)
	token, _ := signup(t, router, "test@example.com")

	w, resp := doJSON(t, router, http.MethodPost, "/api/users/progress", gin.H{
		"weight": 58, "calories": 1800, "notes": "steady",
	}, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Progress added successfully", resp["message"])

	w, resp = doJSON(t, router, http.MethodPost, "/api/users/progress", gin.H{"notes": "no weight"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Weight is required", resp["message"])
}

func TestAdminEndpointsForbiddenForUsers(t *testing.T) {
	router, _ := setupRouter(t)
	token, _ := signup(t, router, "test@example.com")

	w, _ := doJSON(t, router, http.MethodGet, "/api/users", nil, token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, router, http.MethodGet, "/api/users/stats", nil, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminEndpoints(t *testing.T) {
	router, auth := setupRouter(t)
	signup(t, router, "member@example.com")

	require.NoError(t, auth.EnsureDefaultAdmin(context.Background(), "admin@example.com", "adminpass"))
	w, resp := doJSON(t, router, http.MethodPost, "/api/users/login", gin.H{
		"email": "admin@example.com", "password": "adminpass",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	adminToken := resp["token"].(string)

	w, resp = doJSON(t, router, http.MethodGet, "/api/users", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, resp["count"])

	w, resp = doJSON(t, router, http.MethodGet, "/api/users/stats", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, resp["totalUsers"])
}

func TestGeneratePlanEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	w, resp := doJSON(t, router, http.MethodPost, "/api/meals/plan", gin.H{
		"bmi": 22.0, "age": 25, "userId": "user-1",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	plan := resp["plan"].(map[string]interface{})
	for _, category := range []string{"Breakfast", "Lunch", "Snack", "Dinner"} {
		assert.Contains(t, plan, category)
	}
	assert.Len(t, plan["Breakfast"], 2)
	assert.Len(t, plan["Lunch"], 1)
}

func TestGeneratePlanMissingFields(t *testing.T) {
	router, _ := setupRouter(t)

	for _, body := range []gin.H{
		{},
		{"bmi": 22.0, "age": 25},
		{"bmi": 22.0, "userId": "user-1"},
		{"age": 25, "userId": "user-1"},
	} {
		w, resp := doJSON(t, router, http.MethodPost, "/api/meals/plan", body, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing bmi, age, or userId", resp["error"])
	}
}

func TestSaveMealEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	w, resp := doJSON(t, router, http.MethodPost, "/api/meals/save", gin.H{
		"userId": "user-1",
		"meal":   gin.H{"_id": "b1", "name": "Oats Porridge", "calories": 280},
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	meals := resp["meals"].([]interface{})
	require.Len(t, meals, 1)

	w, _ = doJSON(t, router, http.MethodPost, "/api/meals/save", gin.H{"userId": "user-1"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRateMealEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	w, _ := doJSON(t, router, http.MethodPost, "/api/meals/save", gin.H{
		"userId": "user-1", "meal": gin.H{"_id": "b1", "name": "Oats Porridge"},
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	// Out-of-range ratings are rejected without touching the meal.
	w, resp := doJSON(t, router, http.MethodPost, "/api/meals/rate/b1", gin.H{
		"userId": "user-1", "rating": 6,
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Rating must be between 1 and 5", resp["error"])

	w, resp = doJSON(t, router, http.MethodGet, "/api/meals/saved/user-1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	meal := resp["meals"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, 3.0, meal["rating"])

	w, resp = doJSON(t, router, http.MethodPost, "/api/meals/rate/b1", gin.H{
		"userId": "user-1", "rating": 5,
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Meal rated successfully", resp["message"])
}

func TestLikeMealEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	w, _ := doJSON(t, router, http.MethodPost, "/api/meals/save", gin.H{
		"userId": "user-1", "meal": gin.H{"_id": "b1", "name": "Oats Porridge"},
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := doJSON(t, router, http.MethodPost, "/api/meals/like/b1", gin.H{"userId": "user-1"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	meal := resp["meal"].(map[string]interface{})
	assert.Equal(t, true, meal["isFavorite"])

	w, _ = doJSON(t, router, http.MethodPost, "/api/meals/like/missing", gin.H{"userId": "user-1"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSavedMealsEndpointNotFound(t *testing.T) {
	router, _ := setupRouter(t)

	w, resp := doJSON(t, router, http.MethodGet, "/api/meals/saved/nobody", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No saved meals found", resp["error"])
}

func TestRemoveMealEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	w, _ := doJSON(t, router, http.MethodPost, "/api/meals/save", gin.H{
		"userId": "user-1", "meal": gin.H{"_id": "b1", "name": "Oats Porridge"},
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := doJSON(t, router, http.MethodDelete, "/api/meals/remove/b1/user-1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Meal removed successfully", resp["message"])

	w, resp = doJSON(t, router, http.MethodDelete, "/api/meals/remove/b1/user-1", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Meal not found or already removed", resp["error"])
}

func TestResetRotationEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	w, _ := doJSON(t, router, http.MethodPost, "/api/meals/reset-rotation", gin.H{"userId": "nobody"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, router, http.MethodPost, "/api/meals/plan", gin.H{
		"bmi": 22.0, "age": 25, "userId": "user-1",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := doJSON(t, router, http.MethodPost, "/api/meals/reset-rotation", gin.H{"userId": "user-1"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Rotation reset successfully", resp["message"])
}

func TestUploadImageUnconfigured(t *testing.T) {
	router, _ := setupRouter(t)

	w, resp := doJSON(t, router, http.MethodPost, "/api/meals/image", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "image storage not configured", resp["error"])
}

func TestHealthDataEndpoints(t *testing.T) {
	router, _ := setupRouter(t)

	w, resp := doJSON(t, router, http.MethodGet, "/api/health-data/today", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "userId is required", resp["error"])

	w, resp = doJSON(t, router, http.MethodGet, "/api/health-data/today?userId=user-1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", resp["user"])

	w, resp = doJSON(t, router, http.MethodPost, "/api/health-data/update", gin.H{
		"userId": "user-1", "steps": 8000, "water": 6,
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 8000.0, resp["steps"])
	assert.Equal(t, 6.0, resp["water"])

	var series []interface{}
	req := httptest.NewRequest(http.MethodGet, "/api/health-data/weekly?userId=user-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &series))
	assert.Len(t, series, 7)

	w, resp = doJSON(t, router, http.MethodGet, "/api/health-data/stats?userId=user-1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, resp, "weeklyGoalCompletion")
	assert.Contains(t, resp, "hydrationRate")
}

func TestTrackingEndpoints(t *testing.T) {
	router, _ := setupRouter(t)

	w, resp := doJSON(t, router, http.MethodPost, "/api/tracking/saved", gin.H{
		"userId": "user-1", "name": "Oats",
		"calories": 250, "protein": 9, "fats": 7, "fiber": 5,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, resp["success"])
	mealID := resp["meal"].(map[string]interface{})["id"].(string)

	w, resp = doJSON(t, router, http.MethodPost, "/api/tracking/saved", gin.H{
		"userId": "user-1", "name": "Incomplete",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields", resp["message"])

	w, resp = doJSON(t, router, http.MethodGet, "/api/tracking/saved/user-1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, resp["count"])

	w, _ = doJSON(t, router, http.MethodGet, "/api/tracking/saved/user-1?date=not-a-date", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = doJSON(t, router, http.MethodGet, "/api/tracking/weekly/user-1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, resp["count"])

	w, _ = doJSON(t, router, http.MethodDelete, "/api/tracking/saved/"+mealID, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, http.MethodDelete, "/api/tracking/saved/"+mealID, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
