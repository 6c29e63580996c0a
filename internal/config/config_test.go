package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 10000, cfg.MaxWebSocketClients)
	assert.Equal(t, 20.0, cfg.SubmitRatePerSecond)
	assert.Equal(t, 40, cfg.SubmitBurst)
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "staging")
	t.Setenv("MAX_WEBSOCKET_CLIENTS", "500")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.AppEnv)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 500, cfg.MaxWebSocketClients)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_RejectsNonPositiveLimits(t *testing.T) {
	tests := []struct {
		name    string
		envVar  string
		value   string
		wantErr string
	}{
		{"zero max clients", "MAX_WEBSOCKET_CLIENTS", "0", "MAX_WEBSOCKET_CLIENTS must be positive"},
		{"negative max clients", "MAX_WEBSOCKET_CLIENTS", "-1", "MAX_WEBSOCKET_CLIENTS must be positive"},
		{"zero rate", "SUBMIT_RATE_PER_SECOND", "0", "SUBMIT_RATE_PER_SECOND must be positive"},
		{"zero burst", "SUBMIT_BURST", "0", "SUBMIT_BURST must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_RejectsUnknownLogFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestLoad_ProductionRequiresDatabaseURL(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL is required in production")
}

func TestLoad_ProductionWithDatabaseURL(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://localhost/orders")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/orders", cfg.DatabaseURL)
}
