// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"]. Set CORS_ORIGINS to a
	// comma-separated list to override.
	CORSOrigins []string

	// PlannerURL is the root of the trip-planning service, e.g.
	// http://localhost:8000/api. Required.
	PlannerURL      string
	PlannerTimeout  time.Duration
	PlannerDriverID int64

	// DatabaseURL enables the plan archive when set.
	DatabaseURL string

	// RedisURL enables the location cache when set.
	RedisURL          string
	LocationsCacheTTL time.Duration

	// DisplayTimezone is the IANA zone times are rendered in. Defaults to UTC.
	DisplayTimezone *time.Location

	SessionIdleTimeout time.Duration
	MaxBodyBytes       int64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set and any
// values that do not parse.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
	}

	var missing, invalid []string

	cfg.PlannerURL = os.Getenv("PLANNER_URL")
	if cfg.PlannerURL == "" {
		missing = append(missing, "PLANNER_URL")
	}

	var err error
	if cfg.PlannerTimeout, err = getDuration("PLANNER_TIMEOUT", 30*time.Second); err != nil {
		invalid = append(invalid, err.Error())
	}
	if cfg.PlannerDriverID, err = getInt("PLANNER_DRIVER_ID", 1); err != nil {
		invalid = append(invalid, err.Error())
	}
	if cfg.LocationsCacheTTL, err = getDuration("LOCATIONS_CACHE_TTL", 10*time.Minute); err != nil {
		invalid = append(invalid, err.Error())
	}
	if cfg.SessionIdleTimeout, err = getDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute); err != nil {
		invalid = append(invalid, err.Error())
	}
	if cfg.MaxBodyBytes, err = getInt("MAX_BODY_BYTES", 1<<20); err != nil {
		invalid = append(invalid, err.Error())
	}

	tz := getEnv("DISPLAY_TIMEZONE", "UTC")
	if cfg.DisplayTimezone, err = time.LoadLocation(tz); err != nil {
		invalid = append(invalid, fmt.Sprintf("DISPLAY_TIMEZONE: unknown zone %q", tz))
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, "; "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration parses a positive Go duration such as "30s" or "10m".
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: want a positive duration, got %q", key, v)
	}
	return d, nil
}

// getInt parses a positive integer.
func getInt(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: want a positive integer, got %q", key, v)
	}
	return n, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
