package config

import (
	"testing"
	"time"
)

var allKeys = []string{
	"PRACTICUM_TOKEN", "TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID", "TELEGRAM_API_URL",
	"PRACTICUM_ENDPOINT", "RETRY_PERIOD", "REQUEST_TIMEOUT", "MAX_CYCLES",
	"NOTIFY_RATE_PER_SEC", "LOG_LEVEL", "ENVIRONMENT",
	"STATE_BACKEND", "STATE_SQLITE_PATH", "DATABASE_URL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PracticumEndpoint != DefaultPracticumEndpoint {
		t.Fatalf("PracticumEndpoint = %q", cfg.PracticumEndpoint)
	}
	if cfg.RetryPeriod != DefaultRetryPeriod {
		t.Fatalf("RetryPeriod = %v, want %v", cfg.RetryPeriod, DefaultRetryPeriod)
	}
	if cfg.RequestTimeout != 0 {
		t.Fatalf("RequestTimeout = %v, want 0", cfg.RequestTimeout)
	}
	if cfg.LogLevel != "debug" || cfg.Environment != "development" {
		t.Fatalf("unexpected log defaults: %q %q", cfg.LogLevel, cfg.Environment)
	}
	if cfg.StateBackend != StateBackendMemory {
		t.Fatalf("StateBackend = %q", cfg.StateBackend)
	}
	if cfg.NotifyRatePerSec != 1 {
		t.Fatalf("NotifyRatePerSec = %v", cfg.NotifyRatePerSec)
	}
	if cfg.CheckTokens() {
		t.Fatal("CheckTokens = true with no secrets")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("RETRY_PERIOD", "30")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("MAX_CYCLES", "3")
	t.Setenv("STATE_BACKEND", "SQLite")
	t.Setenv("LOG_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RetryPeriod != 30*time.Second {
		t.Fatalf("RetryPeriod = %v", cfg.RetryPeriod)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Fatalf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.MaxCycles != 3 {
		t.Fatalf("MaxCycles = %d", cfg.MaxCycles)
	}
	if cfg.StateBackend != StateBackendSQLite || cfg.StateSQLitePath != "state.db" {
		t.Fatalf("state = %q %q", cfg.StateBackend, cfg.StateSQLitePath)
	}
	if cfg.LogFile != "" {
		t.Fatalf("LogFile = %q, want disabled", cfg.LogFile)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{name: "period", key: "RETRY_PERIOD", value: "soon"},
		{name: "zero period", key: "RETRY_PERIOD", value: "0"},
		{name: "cycles", key: "MAX_CYCLES", value: "-1"},
		{name: "rate", key: "NOTIFY_RATE_PER_SEC", value: "fast"},
		{name: "backend", key: "STATE_BACKEND", value: "redis"},
		{name: "postgres without dsn", key: "STATE_BACKEND", value: "postgres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestCheckTokens(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		cfg  AppConfig
		want bool
	}{
		{name: "all set", cfg: AppConfig{PracticumToken: "p", TelegramToken: "t", TelegramChatID: "1"}, want: true},
		{name: "no practicum", cfg: AppConfig{TelegramToken: "t", TelegramChatID: "1"}},
		{name: "no telegram", cfg: AppConfig{PracticumToken: "p", TelegramChatID: "1"}},
		{name: "no chat", cfg: AppConfig{PracticumToken: "p", TelegramToken: "t"}},
		{name: "none", cfg: AppConfig{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.cfg.CheckTokens(); got != tt.want {
				t.Fatalf("CheckTokens = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadTrimsSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("PRACTICUM_TOKEN", "  ")
	t.Setenv("TELEGRAM_TOKEN", "t")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CheckTokens() {
		t.Fatal("CheckTokens = true with a blank PRACTICUM_TOKEN")
	}
}
