package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	UI      UIConfig      `mapstructure:"ui"`
	Store   StoreConfig   `mapstructure:"store"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds backend connection settings
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"` // Including the /api prefix
	Timeout time.Duration `mapstructure:"timeout"`  // Applied to every request
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme          string `mapstructure:"theme"`           // Used until a preference is stored
	DefaultSection string `mapstructure:"default_section"` // Section shown at startup
}

// StoreConfig holds the preference store location
type StoreConfig struct {
	Path string `mapstructure:"path"` // Empty keeps preferences in memory
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:3000/api",
			Timeout: 30 * time.Second,
		},
		UI: UIConfig{
			Theme:          "light",
			DefaultSection: "dashboard",
		},
		Store: StoreConfig{
			Path: filepath.Join(defaultDataPath(), "prefs.db"),
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "stacks.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the directory for logs and the preference store
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "stacks")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "stacks")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "stacks")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "stacks")
	}
}

// LoadConfig loads configuration from file and environment.
// An explicit path wins over the default search locations.
func LoadConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.timeout", cfg.API.Timeout)
	v.SetDefault("ui.theme", cfg.UI.Theme)
	v.SetDefault("ui.default_section", cfg.UI.DefaultSection)
	v.SetDefault("store.path", cfg.Store.Path)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides, e.g. STACKS_API_BASE_URL
	v.SetEnvPrefix("STACKS")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes the configuration to the default config file
func SaveConfig(v *viper.Viper, cfg *Config) error {
	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to keep snake_case key names
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("ui.default_section", cfg.UI.DefaultSection)
	v.Set("store.path", cfg.Store.Path)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
