package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverSupabase = "supabase"
	DriverMemory   = "memory"
)

type Config struct {
	TelegramBotToken string
	StoreDriver      string
	SQLitePath       string
	SupabaseURL      string
	SupabaseKey      string
	HTTPAddr         string
	SuperAdminID     int64
	LogLevel         string
	LogFormat        string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env is fine: the environment may already carry everything.
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv. The bot is disabled when no token is
// set and the HTTP API when HTTP_ADDR is explicitly empty.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		TelegramBotToken: getenv("TELEGRAM_BOT_TOKEN"),
		StoreDriver:      strings.ToLower(withDefault(getenv("STORE_DRIVER"), DriverSQLite)),
		SQLitePath:       withDefault(getenv("SQLITE_PATH"), "./hangman.db"),
		SupabaseURL:      getenv("SUPABASE_URL"),
		SupabaseKey:      getenv("SUPABASE_KEY"),
		HTTPAddr:         withDefault(getenv("HTTP_ADDR"), ":8080"),
		LogLevel:         withDefault(getenv("LOG_LEVEL"), "info"),
		LogFormat:        withDefault(getenv("LOG_FORMAT"), "json"),
	}

	if getenv("HTTP_ADDR") == "-" {
		cfg.HTTPAddr = ""
	}

	if adminIDStr := getenv("SUPER_ADMIN_ID"); adminIDStr != "" {
		adminID, err := strconv.ParseInt(adminIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SUPER_ADMIN_ID %q: must be a number", adminIDStr)
		}
		cfg.SuperAdminID = adminID
	}

	switch cfg.StoreDriver {
	case DriverSQLite, DriverMemory:
	case DriverSupabase:
		if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
			return nil, fmt.Errorf("SUPABASE_URL and SUPABASE_KEY are required for the %s driver", DriverSupabase)
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.TelegramBotToken == "" && cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("nothing to run: set TELEGRAM_BOT_TOKEN or HTTP_ADDR")
	}

	return cfg, nil
}

func withDefault(val, def string) string {
	if val == "" {
		return def
	}
	return val
}
