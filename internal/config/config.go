package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Storage  StorageConfig
	Policy   PolicyConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds token verification configuration. Tokens are issued by
// an upstream identity service; the engine only verifies them.
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	// Timezone is the company-wide IANA zone used for "today" and all
	// clock action timestamps.
	Timezone string
}

type StorageConfig struct {
	Type     string // "local"
	BasePath string
	BaseURL  string
	// UploadTimeout bounds selfie/attachment uploads; on expiry the
	// enclosing action fails and nothing is persisted.
	UploadTimeout time.Duration
}

// PolicyConfig carries company-policy defaults applied when seeding a
// new company. Per-company values live on the companies row.
type PolicyConfig struct {
	StandardWorkMinutes  int
	SelfieMaxBytes       int64
	AutoApproveThreshold decimal.Decimal
	MismatchTolerance    decimal.Decimal
}

func Load() (*Config, error) {
	// Missing .env is fine in containerized deploys; env vars win anyway.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "gajihub"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Timezone: getEnv("COMPANY_TIMEZONE", "Asia/Kuala_Lumpur"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	uploadTimeout, err := time.ParseDuration(getEnv("STORAGE_UPLOAD_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORAGE_UPLOAD_TIMEOUT: %w", err)
	}

	config.Storage = StorageConfig{
		Type:          getEnv("STORAGE_TYPE", "local"),
		BasePath:      getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:       getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
		UploadTimeout: uploadTimeout,
	}

	standardMinutes, err := strconv.Atoi(getEnv("STANDARD_WORK_MINUTES", "510"))
	if err != nil {
		return nil, fmt.Errorf("invalid STANDARD_WORK_MINUTES: %w", err)
	}

	selfieMax, err := strconv.ParseInt(getEnv("SELFIE_MAX_BYTES", "204800"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SELFIE_MAX_BYTES: %w", err)
	}

	autoApprove, err := decimal.NewFromString(getEnv("CLAIM_AUTO_APPROVE_THRESHOLD", "100.00"))
	if err != nil {
		return nil, fmt.Errorf("invalid CLAIM_AUTO_APPROVE_THRESHOLD: %w", err)
	}

	tolerance, err := decimal.NewFromString(getEnv("CLAIM_MISMATCH_TOLERANCE", "1.00"))
	if err != nil {
		return nil, fmt.Errorf("invalid CLAIM_MISMATCH_TOLERANCE: %w", err)
	}

	config.Policy = PolicyConfig{
		StandardWorkMinutes:  standardMinutes,
		SelfieMaxBytes:       selfieMax,
		AutoApproveThreshold: autoApprove,
		MismatchTolerance:    tolerance,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Policy.StandardWorkMinutes <= 0 {
		return fmt.Errorf("STANDARD_WORK_MINUTES must be positive")
	}
	if c.Policy.SelfieMaxBytes <= 0 {
		return fmt.Errorf("SELFIE_MAX_BYTES must be positive")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("COMPANY_TIMEZONE is not a valid IANA zone: %w", err)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
