package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "./hangman.db", cfg.SQLitePath)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Zero(t, cfg.SuperAdminID)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envFrom(map[string]string{
		"TELEGRAM_BOT_TOKEN": "token",
		"STORE_DRIVER":       "Supabase",
		"SUPABASE_URL":       "https://example.supabase.co",
		"SUPABASE_KEY":       "key",
		"HTTP_ADDR":          "-",
		"SUPER_ADMIN_ID":     "42",
		"LOG_LEVEL":          "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, DriverSupabase, cfg.StoreDriver)
	assert.Empty(t, cfg.HTTPAddr)
	assert.Equal(t, int64(42), cfg.SuperAdminID)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestFromEnv_Errors(t *testing.T) {
	tests := map[string]map[string]string{
		"bad admin id":         {"SUPER_ADMIN_ID": "abc"},
		"unknown driver":       {"STORE_DRIVER": "redis"},
		"supabase without key": {"STORE_DRIVER": "supabase", "SUPABASE_URL": "https://x"},
		"nothing to run":       {"HTTP_ADDR": "-"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(envFrom(env))
			assert.Error(t, err)
		})
	}
}
