package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`api:
  base_url: http://library.local/api
  timeout: 5s
ui:
  theme: dark
  default_section: loans
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := LoadConfig(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "http://library.local/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "loans", cfg.UI.DefaultSection)
	// Untouched keys keep their defaults
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: http://file/api\n"), 0644))
	t.Setenv("STACKS_API_BASE_URL", "http://env/api")

	cfg, err := LoadConfig(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "http://env/api", cfg.API.BaseURL)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unclosed"), 0644))

	_, err := LoadConfig(viper.New(), path)
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("WARNING"))
	assert.Equal(t, slog.LevelError, ParseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("nonsense"))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("loaded books", "count", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "loaded books", entry["msg"])
	assert.Equal(t, "stacks", entry["app"])
	assert.EqualValues(t, 3, entry["count"])
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := RequestLogger(NewLogger(&buf, slog.LevelDebug), "GET", "/books", "req-1")

	logger.Warn("api error response", "status", 404)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	req, ok := entry["request"].(map[string]any)
	require.True(t, ok, "request group missing: %v", entry)
	assert.Equal(t, "req-1", req["id"])
	assert.Equal(t, "GET", req["method"])
	assert.Equal(t, "/books", req["path"])
	assert.EqualValues(t, 404, entry["status"])
	assert.Equal(t, "stacks", entry["app"])
}

func TestSetupLogger_EmptyPathDisablesLogging(t *testing.T) {
	logger, err := SetupLogger(&LoggingConfig{Level: "DEBUG"})
	require.NoError(t, err)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}

func TestSetupLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "stacks.log")
	logger, err := SetupLogger(&LoggingConfig{File: path, Level: "INFO"})
	require.NoError(t, err)

	logger.Info("started")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"started"`)
}
