package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env        string `mapstructure:"APP_ENV"`
	DBUrl      string `mapstructure:"DATABASE_URL"`
	JWTSecret  string `mapstructure:"AUTH_SECRET"`
	ServerPort string `mapstructure:"SERVER_PORT"`

	SessionTTL time.Duration `mapstructure:"SESSION_TTL"`

	ClinicName     string `mapstructure:"CLINIC_NAME"`
	ClinicTimezone string `mapstructure:"CLINIC_TIMEZONE"`
	Currency       string `mapstructure:"CURRENCY"`

	RedisURL          string        `mapstructure:"REDIS_URL"`
	DashboardCacheTTL time.Duration `mapstructure:"DASHBOARD_CACHE_TTL"`

	S3Bucket    string `mapstructure:"S3_BUCKET"`
	S3Region    string `mapstructure:"S3_REGION"`
	S3Endpoint  string `mapstructure:"S3_ENDPOINT"`
	S3AccessKey string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey string `mapstructure:"S3_SECRET_KEY"`

	AdminUsername string `mapstructure:"ADMIN_USERNAME"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`
}

var keys = []string{
	"APP_ENV", "DATABASE_URL", "AUTH_SECRET", "SERVER_PORT", "SESSION_TTL",
	"CLINIC_NAME", "CLINIC_TIMEZONE", "CURRENCY",
	"REDIS_URL", "DASHBOARD_CACHE_TTL",
	"S3_BUCKET", "S3_REGION", "S3_ENDPOINT", "S3_ACCESS_KEY", "S3_SECRET_KEY",
	"ADMIN_USERNAME", "ADMIN_PASSWORD",
}

// Load reads configuration from the process environment, after merging an
// optional .env file from the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("AUTH_SECRET", "dev-secret-change-me")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SESSION_TTL", "168h")
	v.SetDefault("CLINIC_NAME", "Medical Center Management System")
	v.SetDefault("CLINIC_TIMEZONE", "Asia/Colombo")
	v.SetDefault("CURRENCY", "LKR")
	v.SetDefault("DASHBOARD_CACHE_TTL", "30s")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "admin123")

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.SessionTTL <= 0 {
		return nil, errors.New("SESSION_TTL must be positive")
	}

	return cfg, nil
}

// RequireDatabase is checked by the commands that open a connection.
func (c *Config) RequireDatabase() error {
	if c.DBUrl == "" {
		return errors.New("DATABASE_URL is required")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}

func (c *Config) ArchiveEnabled() bool {
	return c.S3Bucket != ""
}
