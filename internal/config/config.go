package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Audit     AuditConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
	// Tighter bucket applied to login and admin-only routes.
	AdminRPS   float64
	AdminBurst int
}

type AuditConfig struct {
	// Rows older than this are removed by the prune worker.
	Retention time.Duration
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	tokenTTLHours, err := getEnvInt("JWT_EXPIRES_HOURS", 24)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_HOURS: %w", err)
	}

	bcryptCost, err := getEnvInt("BCRYPT_ROUNDS", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_ROUNDS: %w", err)
	}

	retentionDays, err := getEnvInt("AUDIT_RETENTION_DAYS", 90)
	if err != nil {
		return nil, fmt.Errorf("invalid AUDIT_RETENTION_DAYS: %w", err)
	}

	rateRPS, err := getEnvFloat("RATE_LIMIT_RPS", 100)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}
	rateBurst, err := getEnvInt("RATE_LIMIT_BURST", 200)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}
	adminRPS, err := getEnvFloat("ADMIN_RATE_LIMIT_RPS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_RATE_LIMIT_RPS: %w", err)
	}
	adminBurst, err := getEnvInt("ADMIN_RATE_LIMIT_BURST", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_RATE_LIMIT_BURST: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			MaxConns: maxConns,
			MinConns: minConns,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", ""),
			TokenTTL:   time.Duration(tokenTTLHours) * time.Hour,
			BcryptCost: bcryptCost,
		},
		RateLimit: RateLimitConfig{
			RPS:        rateRPS,
			Burst:      rateBurst,
			AdminRPS:   adminRPS,
			AdminBurst: adminBurst,
		},
		Audit: AuditConfig{
			Retention: time.Duration(retentionDays) * 24 * time.Hour,
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var missing []string
	if c.Database.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(v, 64)
}
