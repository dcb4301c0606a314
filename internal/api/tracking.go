package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vishnu-gaddam/Nutrify/internal/service"
	"github.com/vishnu-gaddam/Nutrify/internal/types"
)

// TrackingHandler serves the tracked-meal log.
type TrackingHandler struct {
	tracking *service.TrackingService
}

func NewTrackingHandler(tracking *service.TrackingService) *TrackingHandler {
	return &TrackingHandler{tracking: tracking}
}

func (h *TrackingHandler) RegisterRoutes(router *gin.RouterGroup) {
	tracking := router.Group("/tracking")
	{
		tracking.GET("/saved/:userId", h.List)
		tracking.POST("/saved", h.Add)
		tracking.GET("/weekly/:userId", h.Weekly)
		tracking.DELETE("/saved/:mealId", h.Delete)
	}
}

func (h *TrackingHandler) List(c *gin.Context) {
	userID := c.Param("userId")

	var day time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	meals, err := h.tracking.List(c.Request.Context(), userID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while fetching meals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "meals": meals, "count": len(meals)})
}

func (h *TrackingHandler) Add(c *gin.Context) {
	var req types.TrackMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid meal data"})
		return
	}

	meal, err := h.tracking.Add(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while saving meal"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "meal": meal, "message": "Meal tracked successfully"})
}

func (h *TrackingHandler) Weekly(c *gin.Context) {
	userID := c.Param("userId")

	meals, err := h.tracking.Weekly(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while fetching weekly meals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "meals": meals, "count": len(meals)})
}

func (h *TrackingHandler) Delete(c *gin.Context) {
	mealID := c.Param("mealId")

	if err := h.tracking.Delete(c.Request.Context(), mealID); err != nil {
		if errors.Is(err, service.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while deleting meal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Meal deleted successfully"})
}
