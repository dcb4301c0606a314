package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vishnu-gaddam/Nutrify/internal/models"
	"github.com/vishnu-gaddam/Nutrify/internal/types"
)

var (
	ErrUserExists         = errors.New("user already exists with this email")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")
)

const tokenLifetime = 30 * 24 * time.Hour

// AuthService handles registration, login and token validation.
type AuthService struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{db: db, jwtSecret: jwtSecret}
}

// computeBMI derives BMI from weight in kg and height in cm.
func computeBMI(weight, heightCm float64) float64 {
	h := heightCm / 100
	return weight / (h * h)
}

// Register creates a new user with a hashed password, computes the initial
// BMI and records the first progress entry.
func (s *AuthService) Register(ctx context.Context, req *types.SignupRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = "user"
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Age:          req.Age,
		Gender:       req.Gender,
		Height:       req.Height,
		Weight:       req.Weight,
		Email:        email,
		PasswordHash: string(hashed),
		BMI:          computeBMI(req.Weight, req.Height),
		Role:         role,
		IsActive:     true,
		LastLogin:    time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	if err := s.addProgressEntry(ctx, &user, user.Weight, 0, "Initial registration"); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials and updates the last-login timestamp.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user.LastLogin = time.Now()
	if err := s.db.WithContext(ctx).Model(&user).Update("last_login", user.LastLogin).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GenerateToken issues a signed JWT for the user.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: user.ID,
		Role:   user.Role,
		Name:   user.Name,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses and verifies a JWT, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &types.TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*types.TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GetUser fetches a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Progress").First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial profile update. A weight change appends a
// progress entry and recomputes BMI.
func (s *AuthService) UpdateProfile(ctx context.Context, id uuid.UUID, req *types.UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Age != nil {
		user.Age = *req.Age
	}
	if req.Height != nil {
		user.Height = *req.Height
	}
	if req.Email != nil {
		user.Email = strings.ToLower(*req.Email)
	}

	weightChanged := req.Weight != nil && *req.Weight != user.Weight
	if req.Weight != nil {
		user.Weight = *req.Weight
	}
	user.BMI = computeBMI(user.Weight, user.Height)

	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, err
	}
	if weightChanged {
		if err := s.addProgressEntry(ctx, &user, user.Weight, 0, "Weight update"); err != nil {
			return nil, err
		}
	}
	return &user, nil
}

// AddProgress appends a weight/calorie entry to the user's timeline and
// updates the stored weight and BMI.
func (s *AuthService) AddProgress(ctx context.Context, id uuid.UUID, weight float64, calories int, notes string) (*models.ProgressEntry, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.addProgressEntry(ctx, &user, weight, calories, notes); err != nil {
		return nil, err
	}

	user.Weight = weight
	user.BMI = computeBMI(weight, user.Height)
	if err := s.db.WithContext(ctx).Model(&user).
		Updates(map[string]interface{}{"weight": user.Weight, "bmi": user.BMI}).Error; err != nil {
		return nil, err
	}

	var latest models.ProgressEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", user.ID).Order("created_at DESC").First(&latest).Error; err != nil {
		return nil, err
	}
	return &latest, nil
}

func (s *AuthService) addProgressEntry(ctx context.Context, user *models.User, weight float64, calories int, notes string) error {
	entry := models.ProgressEntry{
		UserID:   user.ID,
		Weight:   weight,
		Calories: calories,
		BMI:      computeBMI(weight, user.Height),
		Notes:    notes,
	}
	return s.db.WithContext(ctx).Create(&entry).Error
}

// EnsureDefaultAdmin seeds the platform admin account when missing.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, email, password string) error {
	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:         "Platform Admin",
		Age:          30,
		Gender:       "other",
		Height:       170,
		Weight:       70,
		Email:        email,
		PasswordHash: string(hashed),
		BMI:          computeBMI(70, 170),
		Role:         "admin",
		IsActive:     true,
		LastLogin:    time.Now(),
	}
	return s.db.WithContext(ctx).Create(&admin).Error
}
