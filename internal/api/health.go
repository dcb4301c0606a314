package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vishnu-gaddam/Nutrify/internal/service"
	"github.com/vishnu-gaddam/Nutrify/internal/types"
)

// HealthDataHandler serves the daily health record and its weekly views.
type HealthDataHandler struct {
	health *service.HealthService
}

func NewHealthDataHandler(health *service.HealthService) *HealthDataHandler {
	return &HealthDataHandler{health: health}
}

func (h *HealthDataHandler) RegisterRoutes(router *gin.RouterGroup) {
	data := router.Group("/health-data")
	{
		data.GET("/today", h.Today)
		data.POST("/update", h.Update)
		data.GET("/weekly", h.Weekly)
		data.GET("/stats", h.Stats)
	}
}

func (h *HealthDataHandler) Today(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	record, err := h.health.Today(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch health data"})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *HealthDataHandler) Update(c *gin.Context) {
	var req types.UpdateHealthRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	record, err := h.health.Update(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update health data"})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *HealthDataHandler) Weekly(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	series, err := h.health.Weekly(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch weekly health data"})
		return
	}

	c.JSON(http.StatusOK, series)
}

func (h *HealthDataHandler) Stats(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	stats, err := h.health.Stats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch health statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
