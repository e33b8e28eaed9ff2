package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	Port     string
	Timezone *time.Location

	LogLevel  string
	LogFormat string

	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	AI       AIConfig
}

type DatabaseConfig struct {
	Driver     string
	SQLitePath string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
}

// DSN returns the connection string for the configured driver.
func (c DatabaseConfig) DSN() string {
	if c.Driver == DriverSQLite {
		return c.SQLitePath
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// AuthConfig enables bearer-token auth on the API when Secret is set.
type AuthConfig struct {
	Secret        string
	Issuer        string
	TokenDuration time.Duration
}

type AIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	FoodTimeout time.Duration
	CoachingTTL time.Duration
}

// Load reads configuration from the environment, loading a .env file first
// when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	tz, err := time.LoadLocation(getEnv("TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("config: invalid TIMEZONE: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("config: invalid REDIS_DB: %w", err)
	}

	maxTokens, err := strconv.Atoi(getEnv("ANTHROPIC_MAX_TOKENS", "1024"))
	if err != nil {
		return nil, fmt.Errorf("config: invalid ANTHROPIC_MAX_TOKENS: %w", err)
	}

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		Timezone:  tz,
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		Database: DatabaseConfig{
			Driver:     strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
			SQLitePath: getEnv("SQLITE_PATH", "kanso.db"),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "kanso_user"),
			Password:   getEnv("DB_PASSWORD", ""),
			Name:       getEnv("DB_NAME", "kanso_db"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Auth: AuthConfig{
			Secret:        getEnv("JWT_SECRET", ""),
			Issuer:        getEnv("JWT_ISSUER", "kanso-insights"),
			TokenDuration: getEnvDuration("JWT_TTL", 24*time.Hour),
		},
		AI: AIConfig{
			APIKey:      getEnv("ANTHROPIC_API_KEY", ""),
			Model:       getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
			MaxTokens:   maxTokens,
			FoodTimeout: getEnvDuration("FOOD_ANALYSIS_TIMEOUT", 30*time.Second),
			CoachingTTL: getEnvDuration("COACHING_TTL", time.Hour),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPgx, DriverPostgres:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.AI.FoodTimeout <= 0 {
		return fmt.Errorf("config: FOOD_ANALYSIS_TIMEOUT must be positive")
	}
	if c.AI.CoachingTTL < 0 {
		return fmt.Errorf("config: COACHING_TTL cannot be negative")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
