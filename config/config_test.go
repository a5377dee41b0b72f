package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"FLAGSHOP_API_URL", "FLAGSHOP_ENV", "FLAGSHOP_LOG_LEVEL", "FLAGSHOP_LOG_FILE",
		"FLAGSHOP_HTTP_TIMEOUT", "FLAGSHOP_DB_PATH", "FLAGSHOP_BACKEND_DB",
		"FLAGSHOP_JWT_SECRET", "FLAGSHOP_UPLOAD_DIR", "PORT",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, filepath.Join(DataDir(), "history.db"), cfg.DBPath)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("FLAGSHOP_API_URL", "https://shop.example.com/")
	t.Setenv("FLAGSHOP_HTTP_TIMEOUT", "5s")
	t.Setenv("FLAGSHOP_ENV", "Production")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.True(t, cfg.IsProduction())
}

func TestLoadEnvFileDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("FLAGSHOP_API_URL=http://from-file:9000\nFLAGSHOP_LOG_LEVEL=debug\n"), 0600))
	t.Setenv("FLAGSHOP_LOG_LEVEL", "warn")

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "http://from-file:9000", cfg.APIURL)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestParseTimeout(t *testing.T) {
	tests := []struct {
		raw     string
		want    time.Duration
		wantErr bool
	}{
		{"", DefaultHTTPTimeout, false},
		{"45", 45 * time.Second, false},
		{"1m", time.Minute, false},
		{"0", 0, true},
		{"-5s", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseTimeout(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger(t *testing.T) {
	cfg := &Config{LogLevel: "debug"}
	logFile := filepath.Join(t.TempDir(), "logs", "shop.log")

	logger, err := NewLogger(cfg, logFile)
	require.NoError(t, err)
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")

	_, err = NewLogger(&Config{LogLevel: "loud"}, "")
	assert.Error(t, err)
}

func TestTUILogFile(t *testing.T) {
	assert.Equal(t, "/tmp/x.log", (&Config{LogFile: "/tmp/x.log"}).TUILogFile())
	assert.Contains(t, (&Config{}).TUILogFile(), "flagshop.log")
}
