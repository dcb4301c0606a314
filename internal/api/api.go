package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vishnu-gaddam/Nutrify/internal/middleware"
	"github.com/vishnu-gaddam/Nutrify/internal/service"
)

// Services bundles everything the router needs.
type Services struct {
	Auth        *service.AuthService
	Plans       *service.MealPlanService
	Health      *service.HealthService
	Tracking    *service.TrackingService
	Images      *service.ImageService
	RateLimiter *middleware.RateLimiter
}

// SetupAPI registers every route group under /api.
func SetupAPI(router *gin.Engine, svcs Services) {
	api := router.Group("/api")
	{
		NewUserHandler(svcs.Auth).RegisterRoutes(api)
		NewMealPlanHandler(svcs.Plans, svcs.Images, svcs.RateLimiter).RegisterRoutes(api)
		NewHealthDataHandler(svcs.Health).RegisterRoutes(api)
		NewTrackingHandler(svcs.Tracking).RegisterRoutes(api)

		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"message":   "Nutrify API running",
				"timestamp": time.Now(),
			})
		})
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})
}
