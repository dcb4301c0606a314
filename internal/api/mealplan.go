package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vishnu-gaddam/Nutrify/internal/middleware"
	"github.com/vishnu-gaddam/Nutrify/internal/service"
	"github.com/vishnu-gaddam/Nutrify/internal/types"
)

// MealPlanHandler serves plan generation and saved-meal management.
type MealPlanHandler struct {
	plans       *service.MealPlanService
	images      *service.ImageService
	rateLimiter *middleware.RateLimiter
}

func NewMealPlanHandler(plans *service.MealPlanService, images *service.ImageService, rateLimiter *middleware.RateLimiter) *MealPlanHandler {
	return &MealPlanHandler{plans: plans, images: images, rateLimiter: rateLimiter}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals")
	{
		meals.POST("/plan", h.rateLimiter.Middleware(), h.GeneratePlan)
		meals.POST("/save", h.SaveMeal)
		meals.POST("/like/:mealId", h.LikeMeal)
		meals.POST("/rate/:mealId", h.RateMeal)
		meals.POST("/reset-rotation", h.ResetRotation)
		meals.GET("/saved/:userId", h.SavedMeals)
		meals.DELETE("/remove/:mealId/:userId", h.RemoveMeal)
		meals.POST("/image", h.UploadImage)
	}
}

func (h *MealPlanHandler) GeneratePlan(c *gin.Context) {
	var req types.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing bmi, age, or userId"})
		return
	}
	if req.BMI == nil || req.Age == nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing bmi, age, or userId"})
		return
	}

	plan, err := h.plans.GeneratePlan(c.Request.Context(), req.UserID, *req.Age, *req.BMI)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating meal plan: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

func (h *MealPlanHandler) SaveMeal(c *gin.Context) {
	var req types.SaveMealRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Meal == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and meal required"})
		return
	}

	plan, err := h.plans.SaveMeal(c.Request.Context(), req.UserID, req.Meal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving meal: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (h *MealPlanHandler) LikeMeal(c *gin.Context) {
	mealID := c.Param("mealId")
	var req types.UserIDRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and mealId required"})
		return
	}

	meal, err := h.plans.LikeMeal(c.Request.Context(), req.UserID, mealID)
	if err != nil {
		respondMealError(c, err, "Error liking meal")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meal liked", "meal": meal})
}

func (h *MealPlanHandler) RateMeal(c *gin.Context) {
	mealID := c.Param("mealId")
	var req types.RateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Rating == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId, mealId, and rating required"})
		return
	}

	meal, err := h.plans.RateMeal(c.Request.Context(), req.UserID, mealID, *req.Rating)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRating) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
			return
		}
		respondMealError(c, err, "Failed to rate meal")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meal rated successfully", "meal": meal})
}

func (h *MealPlanHandler) ResetRotation(c *gin.Context) {
	var req types.UserIDRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId required"})
		return
	}

	if err := h.plans.ResetRotation(c.Request.Context(), req.UserID); err != nil {
		respondMealError(c, err, "Failed to reset rotation")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rotation reset successfully"})
}

func (h *MealPlanHandler) SavedMeals(c *gin.Context) {
	userID := c.Param("userId")
	meals, err := h.plans.SavedMeals(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No saved meals found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching saved meals: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

func (h *MealPlanHandler) RemoveMeal(c *gin.Context) {
	mealID := c.Param("mealId")
	userID := c.Param("userId")

	if err := h.plans.RemoveMeal(c.Request.Context(), userID, mealID); err != nil {
		if errors.Is(err, service.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found or already removed"})
			return
		}
		respondMealError(c, err, "Error removing meal")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meal removed successfully"})
}

// UploadImage stores a meal image in S3 and returns its public URL.
func (h *MealPlanHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}

	url, err := h.images.UploadMealImage(c.Request.Context(), data, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}

func respondMealError(c *gin.Context, err error, prefix string) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal plan not found"})
	case errors.Is(err, service.ErrMealNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": prefix + ": " + err.Error()})
	}
}
