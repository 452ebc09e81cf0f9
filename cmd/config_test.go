package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tracking/internal/jobs"
	"tracking/internal/pkg/errs"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", config.HTTP.Port)
	assert.Equal(t, 15*time.Second, config.HTTP.ShutdownTimeout)
	assert.Equal(t, "disable", config.DB.SslMode)
	assert.Equal(t, 25, config.DB.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, config.DB.ConnMaxLifetime)
	assert.Equal(t, 5, config.Retry.MaxAttempts)
	assert.Equal(t, 5*time.Second, config.Retry.OperationTimeout)
	assert.False(t, config.Lifecycle.AllowDeliveryFromBooked)
	assert.True(t, config.Metrics.Enabled)
	assert.Equal(t, jobs.DefaultStageGaugeSpec, config.Metrics.StageRefreshSpec)
	assert.Equal(t, "host=localhost port=5432 user=postgres password= dbname=tracking sslmode=disable",
		config.DB.DSN())
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")
	t.Setenv("RETRY_OPERATION_TIMEOUT", "750ms")
	t.Setenv("LIFECYCLE_ALLOW_DELIVERY_FROM_BOOKED", "true")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "9090", config.HTTP.Port)
	assert.Equal(t, 50, config.DB.MaxOpenConns)
	assert.Equal(t, 750*time.Millisecond, config.Retry.Policy().OperationTimeout)
	assert.True(t, config.Lifecycle.Policy().AllowDeliveryFromBooked)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("DB_NAME=parcels\nRETRY_MAX_ATTEMPTS=3\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("DB_NAME")
		_ = os.Unsetenv("RETRY_MAX_ATTEMPTS")
	})

	config, err := LoadConfig(envFile)
	require.NoError(t, err)

	assert.Equal(t, "parcels", config.DB.Name)
	assert.Equal(t, 3, config.Retry.MaxAttempts)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")
	t.Setenv("LOG_FORMAT", "xml")
	t.Setenv("DB_NAME", " ")

	_, err := LoadConfig("")

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorContains(t, err, "LOG_FORMAT")
}

func TestLogConfig_NewLogger(t *testing.T) {
	logger := LogConfig{Level: "debug", Format: "json"}.NewLogger()
	assert.Equal(t, log.DebugLevel, logger.GetLevel())
	assert.IsType(t, &log.JSONFormatter{}, logger.Formatter)

	logger = LogConfig{Level: "nope", Format: "text"}.NewLogger()
	assert.Equal(t, log.InfoLevel, logger.GetLevel())
}
