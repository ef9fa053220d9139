package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPracticumEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	DefaultRetryPeriod       = 600 * time.Second
)

// State backends.
const (
	StateBackendMemory   = "memory"
	StateBackendSQLite   = "sqlite"
	StateBackendPostgres = "postgres"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken string
	TelegramToken  string
	TelegramChatID string

	PracticumEndpoint string
	TelegramAPIURL    string        // Empty means the public Bot API
	RetryPeriod       time.Duration // Pause between two polls
	RequestTimeout    time.Duration // Zero disables the HTTP timeout
	MaxCycles         int           // Zero polls until the process is stopped
	NotifyRatePerSec  float64

	LogLevel    string
	LogFile     string
	Environment string

	StateBackend    string
	StateSQLitePath string
	DatabaseURL     string
}

// Load reads configuration from environment variables and .env file (if present).
// Missing credentials are not an error here, see CheckTokens.
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{
		PracticumToken: strings.TrimSpace(os.Getenv("PRACTICUM_TOKEN")),
		TelegramToken:  strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		TelegramChatID: strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")),
		TelegramAPIURL: os.Getenv("TELEGRAM_API_URL"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
	}
	var err error

	cfg.PracticumEndpoint = os.Getenv("PRACTICUM_ENDPOINT")
	if cfg.PracticumEndpoint == "" {
		cfg.PracticumEndpoint = DefaultPracticumEndpoint
	}

	cfg.RetryPeriod, err = durationEnv("RETRY_PERIOD", DefaultRetryPeriod)
	if err != nil {
		return nil, err
	}
	if cfg.RetryPeriod <= 0 {
		return nil, fmt.Errorf("RETRY_PERIOD must be positive, got %s", cfg.RetryPeriod)
	}

	cfg.RequestTimeout, err = durationEnv("REQUEST_TIMEOUT", 0)
	if err != nil {
		return nil, err
	}

	if raw := os.Getenv("MAX_CYCLES"); raw != "" {
		cfg.MaxCycles, err = strconv.Atoi(raw)
		if err != nil || cfg.MaxCycles < 0 {
			return nil, fmt.Errorf("invalid MAX_CYCLES %q", raw)
		}
	}

	cfg.NotifyRatePerSec = 1
	if raw := os.Getenv("NOTIFY_RATE_PER_SEC"); raw != "" {
		cfg.NotifyRatePerSec, err = strconv.ParseFloat(raw, 64)
		if err != nil || cfg.NotifyRatePerSec <= 0 {
			return nil, fmt.Errorf("invalid NOTIFY_RATE_PER_SEC %q", raw)
		}
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug" // Default log level
	}

	cfg.LogFile = "main.log"
	if raw, ok := os.LookupEnv("LOG_FILE"); ok {
		cfg.LogFile = raw // Set but empty disables the file sink
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.StateBackend = strings.ToLower(os.Getenv("STATE_BACKEND"))
	if cfg.StateBackend == "" {
		cfg.StateBackend = StateBackendMemory
	}
	switch cfg.StateBackend {
	case StateBackendMemory:
	case StateBackendSQLite:
		cfg.StateSQLitePath = os.Getenv("STATE_SQLITE_PATH")
		if cfg.StateSQLitePath == "" {
			cfg.StateSQLitePath = "state.db"
		}
	case StateBackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is not set")
		}
	default:
		return nil, fmt.Errorf("unknown STATE_BACKEND %q", cfg.StateBackend)
	}

	return cfg, nil
}

// CheckTokens reports whether every required secret is present.
func (c *AppConfig) CheckTokens() bool {
	return c.PracticumToken != "" && c.TelegramToken != "" && c.TelegramChatID != ""
}

// durationEnv accepts a Go duration ("10m") or a plain number of seconds ("600").
func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
