package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port        string
	DatabaseURL string
	AutoMigrate bool
	Environment string

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	CORSOrigins        []string
	LoginRatePerMinute int

	// StrictStock rejects attendee edits that would drive a bra quantity below zero.
	StrictStock bool

	Logging LoggingConfig
	Admin   AdminBootstrap
}

// LoggingConfig selects the zerolog level and output format.
type LoggingConfig struct {
	Level  string
	Format string
}

// AdminBootstrap describes the admin account created on start-up when both fields are set.
type AdminBootstrap struct {
	Email    string
	Password string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:               fallback(os.Getenv("PORT"), "5000"),
		DatabaseURL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
		AutoMigrate:        parseBool(os.Getenv("AUTO_MIGRATE"), true),
		Environment:        fallback(os.Getenv("ENVIRONMENT"), "development"),
		JWTSecret:          strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:          fallback(os.Getenv("JWT_ISSUER"), "innerventory"),
		CORSOrigins:        parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		LoginRatePerMinute: parseInt(os.Getenv("LOGIN_RATE_PER_MINUTE"), 10),
		StrictStock:        parseBool(os.Getenv("INVENTORY_STRICT_STOCK"), false),
		Logging: LoggingConfig{
			Level:  fallback(os.Getenv("LOG_LEVEL"), "info"),
			Format: fallback(os.Getenv("LOG_FORMAT"), "json"),
		},
		Admin: AdminBootstrap{
			Email:    strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
	}

	minutes := fallback(os.Getenv("JWT_TTL_MINUTES"), "60")
	if ttlMinutes, err := strconv.Atoi(minutes); err == nil && ttlMinutes > 0 {
		cfg.JWTTTL = time.Duration(ttlMinutes) * time.Minute
	} else {
		cfg.JWTTTL = 60 * time.Minute
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// IsDevelopment reports whether error details may be exposed to clients.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "test"
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseInt(value string, def int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return parsed
}

func parseBool(value string, def bool) bool {
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return parsed
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
