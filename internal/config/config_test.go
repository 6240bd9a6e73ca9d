package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"API_KEY", "NASA_BASE_URL", "EONET_BASE_URL", "SSC_BASE_URL", "LOG_DIR",
		"HTTP_TIMEOUT", "SSC_WINDOW", "CIRCUIT_MAX_FAILURES", "GEOCODER_API_KEY", "LOG_LEVEL", "PORT"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, DemoAPIKey, cfg.APIKey)
	assert.Equal(t, "https://api.nasa.gov", cfg.NASABaseURL)
	assert.Equal(t, "logs", cfg.LogDir)
	assert.Equal(t, time.Duration(0), cfg.HTTPTimeout)
	assert.Equal(t, 2*time.Hour, cfg.SSCWindow)
	assert.Equal(t, 5, cfg.CircuitMaxFailures)
	assert.Empty(t, cfg.GeocoderAPIKey)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "abc123")
	t.Setenv("HTTP_TIMEOUT", "15s")
	t.Setenv("SSC_WINDOW", "30m")
	t.Setenv("CIRCUIT_MAX_FAILURES", "0")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_DIR", "/tmp/space-logs")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "abc123", cfg.APIKey)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 30*time.Minute, cfg.SSCWindow)
	assert.Equal(t, 0, cfg.CircuitMaxFailures)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/space-logs", cfg.LogDir)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"HTTP_TIMEOUT", "soon"},
		{"HTTP_TIMEOUT", "-1s"},
		{"SSC_WINDOW", "0s"},
		{"NASA_BASE_URL", "not a url"},
		{"LOG_LEVEL", "loud"},
		{"PORT", "http"},
		{"CIRCUIT_MAX_FAILURES", "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load(zerolog.Nop())
			assert.Error(t, err)
		})
	}
}

func TestLoadLogsThroughGivenLoggerAtConfiguredLevel(t *testing.T) {
	clearEnv(t)

	var buf bytes.Buffer
	cfg, err := Load(zerolog.New(&buf))
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
	assert.Contains(t, buf.String(), "using DEMO_KEY")
	assert.NotContains(t, buf.String(), ".env")

	buf.Reset()
	t.Setenv("LOG_LEVEL", "warn")
	cfg, err = Load(zerolog.New(&buf))
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, cfg.Level())
	assert.Empty(t, buf.String())

	buf.Reset()
	t.Setenv("LOG_LEVEL", "debug")
	_, err = Load(zerolog.New(&buf))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no .env file found")
}
