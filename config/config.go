package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration (optional; rate limiting is disabled without it)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Meal catalog file
	CatalogPath string

	// CORS
	AllowedOrigins []string

	// Default admin account seeded at startup
	AdminEmail    string
	AdminPassword string
}

// LoadConfig builds a Config from environment variables, falling back to
// Docker secrets for sensitive values. In development a .env file is loaded
// first when present.
func LoadConfig() (*Config, error) {
	if IsDevelopment() {
		// Missing .env is fine; env vars may be set directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		ServerPort: envOr("SERVER_PORT", "5001"),
		ServerHost: envOr("SERVER_HOST", "0.0.0.0"),

		DBHost:    envOr("DB_HOST", "localhost"),
		DBPort:    envOr("DB_PORT", "5432"),
		DBUser:    envOrSecret("DB_USER", "db_user"),
		DBName:    envOr("DB_NAME", "nutrify"),
		DBSSLMode: envOr("DB_SSL_MODE", "disable"),

		RedisHost: os.Getenv("REDIS_HOST"),
		RedisPort: envOr("REDIS_PORT", "6379"),
		RedisURL:  os.Getenv("REDIS_URL"),
		RedisDB:   0,

		CatalogPath: envOr("MEAL_CATALOG_PATH", "data/meals.json"),

		AdminEmail:    envOr("ADMIN_EMAIL", "admin@nutritracker.com"),
		AdminPassword: envOrSecret("ADMIN_PASSWORD", "admin_password"),
	}

	cfg.DBPassword = envOrSecret("DB_PASSWORD", "db_password")
	cfg.JWTSecret = envOrSecret("JWT_SECRET", "jwt_secret")
	cfg.RedisPassword = envOrSecret("REDIS_PASSWORD", "redis_password")

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	} else if IsProduction() {
		cfg.AllowedOrigins = []string{
			"https://nutrify-n.vercel.app",
			"https://nutrify-n.onrender.com",
		}
	} else {
		cfg.AllowedOrigins = []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// envOr returns the environment variable or a default.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envOrSecret prefers the environment variable and falls back to a Docker
// secret of the given name.
func envOrSecret(envKey, secretName string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return readSecret(secretName)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
