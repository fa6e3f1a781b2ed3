package app

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	JWTSecret string        // Required: shared secret for bearer tokens (min 32 bytes)
	JWTIssuer string        // Optional: issuer claim for tokens (default: spims)
	JWTTTL    time.Duration // Optional: bearer token lifetime (default: 24h)

	FrontendURL  string // Optional: base URL for password reset links (default: http://localhost:3000)
	DatabaseFile string // Optional: path to SQLite database file (default: ./pims.db)
	PepperFile   string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	ResendAPIKey string // Optional: Resend API key; unset disables outbound mail
	EmailFrom    string // Optional: From address for reset mail

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// ErrMissingJWTSecret aborts startup: the service must never run with an
// empty or default signing secret.
var ErrMissingJWTSecret = errors.New("app: PIMS_JWT_SECRET is required")

func LoadConfig() (Config, error) {
	cfg := Config{
		JWTSecret:           os.Getenv("PIMS_JWT_SECRET"),
		JWTIssuer:           getEnvOrDefault("PIMS_JWT_ISSUER", "spims"),
		JWTTTL:              getEnvDurationOrDefault("PIMS_JWT_TTL", 24*time.Hour),
		FrontendURL:         getEnvOrDefault("PIMS_FRONTEND_URL", "http://localhost:3000"),
		DatabaseFile:        getEnvOrDefault("PIMS_DATABASE_FILE", "pims.db"),
		PepperFile:          getEnvOrDefault("PIMS_PEPPER_FILE", "pepper"),
		ResendAPIKey:        os.Getenv("RESEND_API_KEY"),
		EmailFrom:           getEnvOrDefault("PIMS_EMAIL_FROM", "Sindh Police <noreply@sindhpolice.gov.pk>"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
