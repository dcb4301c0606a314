package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vishnu-gaddam/Nutrify/internal/middleware"
	"github.com/vishnu-gaddam/Nutrify/internal/models"
	"github.com/vishnu-gaddam/Nutrify/internal/service"
	"github.com/vishnu-gaddam/Nutrify/internal/types"
)

// UserHandler serves registration, login, profile and admin endpoints.
type UserHandler struct {
	auth *service.AuthService
}

func NewUserHandler(auth *service.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("/signup", h.Signup)
		users.POST("/login", h.Login)

		authed := users.Group("", middleware.AuthMiddleware(h.auth))
		{
			authed.GET("/me", h.Profile)
			authed.PUT("/me", h.UpdateProfile)
			authed.POST("/progress", h.AddProgress)

			admin := authed.Group("", middleware.AdminOnly())
			{
				admin.GET("", h.ListUsers)
				admin.GET("/stats", h.Stats)
			}
		}
	}
}

// userBody is the user shape returned to clients. BMI is formatted to one
// decimal, matching what the dashboard expects.
func userBody(u *models.User) gin.H {
	return gin.H{
		"id":          u.ID,
		"name":        u.Name,
		"email":       u.Email,
		"age":         u.Age,
		"gender":      u.Gender,
		"height":      u.Height,
		"weight":      u.Weight,
		"bmi":         fmt.Sprintf("%.1f", u.BMI),
		"bmiCategory": u.BMICategory(),
		"role":        u.Role,
		"lastLogin":   u.LastLogin,
	}
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req types.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide all required fields"})
		return
	}
	if req.Name == "" || req.Age == 0 || req.Gender == "" || req.Height == 0 ||
		req.Weight == 0 || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide all required fields"})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists with this email"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during registration"})
		return
	}

	token, err := h.auth.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during registration"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"token":   token,
		"user":    userBody(user),
	})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide email and password"})
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountDeactivated):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Account is deactivated"})
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during login"})
		}
		return
	}

	token, err := h.auth.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    userBody(user),
	})
}

func (h *UserHandler) Profile(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	user, err := h.auth.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	body := userBody(user)
	progress := user.Progress
	if len(progress) > 10 {
		progress = progress[len(progress)-10:]
	}
	body["progress"] = progress
	body["createdAt"] = user.CreatedAt
	c.JSON(http.StatusOK, body)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    userBody(user),
	})
}

func (h *UserHandler) AddProgress(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var req types.AddProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Weight == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Weight is required"})
		return
	}

	entry, err := h.auth.AddProgress(c.Request.Context(), userID, req.Weight, req.Calories, req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Progress added successfully",
		"progress": entry,
	})
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.auth.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	bodies := make([]gin.H, 0, len(users))
	for i := range users {
		body := userBody(&users[i])
		body["progressEntries"] = len(users[i].Progress)
		body["createdAt"] = users[i].CreatedAt
		body["isActive"] = users[i].IsActive
		bodies = append(bodies, body)
	}

	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": bodies})
}

func (h *UserHandler) Stats(c *gin.Context) {
	stats, err := h.auth.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
