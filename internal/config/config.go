// Package config loads and validates application configuration from
// environment variables and the optional planning options YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/pkordes/travel-planner/backend/internal/planning"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// JWTSecret is the HS256 key bearer tokens are signed with. Required.
	JWTSecret string

	// JWTAudience is the "aud" every token must carry. Defaults to "authenticated".
	JWTAudience string

	// RedisURL enables the holiday cache when set (redis://host:port/db).
	RedisURL string

	// HolidayCacheTTL is how long computed holidays stay cached. Defaults to 24h.
	HolidayCacheTTL time.Duration

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// StatusSyncCron is the cron spec of the trip status sync job.
	// Defaults to hourly. "off" disables the job.
	StatusSyncCron string

	// PlanningConfig is an optional YAML file of planning.Options overrides.
	PlanningConfig string
}

// LoadDotEnv loads a .env file into the environment when one exists.
// Variables already set win over the file.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config.LoadDotEnv: %w", err)
	}
	return nil
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or the
// first optional variable that does not parse.
func Load() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		JWTAudience:    getEnv("AUTH_JWT_AUDIENCE", "authenticated"),
		RedisURL:       os.Getenv("REDIS_URL"),
		StatusSyncCron: getEnv("STATUS_SYNC_CRON", "0 * * * *"),
		PlanningConfig: os.Getenv("PLANNING_CONFIG"),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	cfg.JWTSecret = os.Getenv("AUTH_JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "AUTH_JWT_SECRET")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		return Config{}, errors.New("MAX_BODY_BYTES must be a positive integer")
	}
	cfg.MaxBodyBytes = maxBody

	ttl, err := time.ParseDuration(getEnv("HOLIDAY_CACHE_TTL", "24h"))
	if err != nil || ttl <= 0 {
		return Config{}, errors.New("HOLIDAY_CACHE_TTL must be a positive duration")
	}
	cfg.HolidayCacheTTL = ttl

	return cfg, nil
}

// LoadPlanningOptions reads planning.Options from a YAML file. Keys the file
// leaves out keep their DefaultOptions values. An empty path returns the defaults.
func LoadPlanningOptions(path string) (planning.Options, error) {
	opts := planning.DefaultOptions()
	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return planning.Options{}, fmt.Errorf("config.LoadPlanningOptions: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return planning.Options{}, fmt.Errorf("config.LoadPlanningOptions: %s: %w", path, err)
	}
	if opts.Timezone != "" {
		if _, err := time.LoadLocation(opts.Timezone); err != nil {
			return planning.Options{}, fmt.Errorf("config.LoadPlanningOptions: timezone %q: %w", opts.Timezone, err)
		}
	}
	opts.AutoEnableCountry = strings.ToUpper(strings.TrimSpace(opts.AutoEnableCountry))
	return opts, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
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
