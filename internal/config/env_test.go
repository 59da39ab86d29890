package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Xavierhuang/ScheduleShare/internal/timeutil"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"OPENAI_API_KEY", "SCHEDULESHARE_MODEL", "SCHEDULESHARE_TEMPERATURE",
		"SCHEDULESHARE_MAX_EXTRACT_TOKENS", "SCHEDULESHARE_MAX_ROUTE_TOKENS",
		"SCHEDULESHARE_DB_PATH", "SCHEDULESHARE_HTTP_PORT", "SCHEDULESHARE_TIMEZONE",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadFromEnv()

	assert.Empty(t, cfg.OpenAIAPIKey)
	assert.Equal(t, "gpt-4.1", cfg.Model)
	assert.Equal(t, 0.1, cfg.Temperature)
	assert.Equal(t, 500, cfg.MaxExtractTokens)
	assert.Equal(t, 1000, cfg.MaxRouteTokens)
	assert.Equal(t, "./scheduleshare.db", cfg.DBPath)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, timeutil.DefaultTimezone, cfg.Timezone)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SCHEDULESHARE_MODEL", "gpt-4.1-mini")
	t.Setenv("SCHEDULESHARE_TEMPERATURE", "0.4")
	t.Setenv("SCHEDULESHARE_MAX_EXTRACT_TOKENS", "750")
	t.Setenv("SCHEDULESHARE_MAX_ROUTE_TOKENS", "1500")
	t.Setenv("SCHEDULESHARE_HTTP_PORT", "9090")
	t.Setenv("SCHEDULESHARE_TIMEZONE", "Europe/Berlin")

	cfg := LoadFromEnv()

	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "gpt-4.1-mini", cfg.Model)
	assert.Equal(t, 0.4, cfg.Temperature)
	assert.Equal(t, 750, cfg.MaxExtractTokens)
	assert.Equal(t, 1500, cfg.MaxRouteTokens)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
}

func TestLoadFromEnv_BadNumbersKeepDefaults(t *testing.T) {
	t.Setenv("SCHEDULESHARE_HTTP_PORT", "not-a-port")
	t.Setenv("SCHEDULESHARE_TEMPERATURE", "warm")
	t.Setenv("SCHEDULESHARE_MAX_EXTRACT_TOKENS", "many")

	cfg := LoadFromEnv()

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 0.1, cfg.Temperature)
	assert.Equal(t, 500, cfg.MaxExtractTokens)
}
