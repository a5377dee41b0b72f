// ABOUTME: Runtime configuration loaded from .env files and FLAGSHOP_* environment variables
// ABOUTME: Paths default under the XDG data directory

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	AppName = "flagshop"

	DefaultAPIURL      = "http://localhost:8001"
	DefaultPort        = "8001"
	DefaultHTTPTimeout = 30 * time.Second
	DefaultJWTSecret   = "flagshop-dev-secret-change-in-production"
)

type Config struct {
	APIURL      string
	Environment string
	LogLevel    string
	LogFile     string
	HTTPTimeout time.Duration

	// DBPath is the local submission history database.
	DBPath string

	// Development backend settings.
	Port      string
	BackendDB string
	JWTSecret string
	UploadDir string
}

// DataDir is the per-user data directory.
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Load reads the given .env files (default ".env"; missing files are
// ignored), then the environment. Variables already set in the environment
// win over file values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading %s: %w", f, err)
		}
	}

	v := viper.New()
	v.SetDefault("FLAGSHOP_API_URL", DefaultAPIURL)
	v.SetDefault("FLAGSHOP_ENV", "development")
	v.SetDefault("FLAGSHOP_LOG_LEVEL", "info")
	v.SetDefault("FLAGSHOP_DB_PATH", filepath.Join(DataDir(), "history.db"))
	v.SetDefault("FLAGSHOP_BACKEND_DB", filepath.Join(DataDir(), "backend.db"))
	v.SetDefault("FLAGSHOP_UPLOAD_DIR", filepath.Join(DataDir(), "uploads"))
	v.SetDefault("FLAGSHOP_JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("PORT", DefaultPort)
	v.AutomaticEnv()

	timeout, err := parseTimeout(v.GetString("FLAGSHOP_HTTP_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIURL:      strings.TrimSuffix(strings.TrimSpace(v.GetString("FLAGSHOP_API_URL")), "/"),
		Environment: v.GetString("FLAGSHOP_ENV"),
		LogLevel:    v.GetString("FLAGSHOP_LOG_LEVEL"),
		LogFile:     strings.TrimSpace(v.GetString("FLAGSHOP_LOG_FILE")),
		HTTPTimeout: timeout,
		DBPath:      v.GetString("FLAGSHOP_DB_PATH"),
		Port:        v.GetString("PORT"),
		BackendDB:   v.GetString("FLAGSHOP_BACKEND_DB"),
		JWTSecret:   v.GetString("FLAGSHOP_JWT_SECRET"),
		UploadDir:   v.GetString("FLAGSHOP_UPLOAD_DIR"),
	}

	if cfg.APIURL == "" {
		return nil, fmt.Errorf("FLAGSHOP_API_URL must not be empty")
	}
	return cfg, nil
}

// parseTimeout accepts Go durations ("45s") or bare seconds ("45").
func parseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultHTTPTimeout, nil
	}
	if d, err := time.ParseDuration(raw); err == nil {
		if d <= 0 {
			return 0, fmt.Errorf("FLAGSHOP_HTTP_TIMEOUT must be positive, got %q", raw)
		}
		return d, nil
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return 0, fmt.Errorf("invalid FLAGSHOP_HTTP_TIMEOUT %q", raw)
	}
	return time.Duration(secs) * time.Second, nil
}

// IsProduction reports whether production logging should be used.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// TUILogFile is where the interactive shop writes its log, since the
// terminal belongs to the UI.
func (c *Config) TUILogFile() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(xdg.StateHome, AppName, "flagshop.log")
}
