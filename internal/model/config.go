package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DatabaseConfig locates the local SQLite file.
type DatabaseConfig struct {
	// Path is the SQLite database file. ":memory:" is accepted for testing.
	Path string `mapstructure:"path" yaml:"path"`
}

// AIConfig holds settings for the goal decomposition service.
type AIConfig struct {
	Model   string `mapstructure:"model" yaml:"model"`
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TimeoutSec bounds a single decomposition request. Zero means no
	// client-side timeout.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// UseKeyring enables the system keyring lookup when no API key is set
	// in the environment or config file.
	UseKeyring bool `mapstructure:"use_keyring" yaml:"use_keyring"`

	// Mock forces placeholder decompositions even when a key is available.
	Mock bool `mapstructure:"mock" yaml:"mock"`

	// APIKey is resolved from the environment only and never saved.
	APIKey string `mapstructure:"api_key" yaml:"-"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	AI       AIConfig       `mapstructure:"ai" yaml:"ai"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

const (
	defaultModel    = "gpt-4o-mini"
	defaultBaseURL  = "https://api.openai.com"
	defaultLogLevel = "warn"
	envPrefix       = "STEPWISE"
)

// configDir returns ~/.config/stepwise, falling back to the working directory.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "stepwise")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/stepwise/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultDatabasePath returns ~/.config/stepwise/stepwise.db.
func DefaultDatabasePath() string {
	return filepath.Join(configDir(), "stepwise.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Database: DatabaseConfig{Path: DefaultDatabasePath()},
		AI: AIConfig{
			Model:      defaultModel,
			BaseURL:    defaultBaseURL,
			UseKeyring: true,
		},
		Log: LogConfig{
			Level:  defaultLogLevel,
			Format: "text",
		},
	}
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("database.path", DefaultDatabasePath())
	v.SetDefault("ai.model", defaultModel)
	v.SetDefault("ai.base_url", defaultBaseURL)
	v.SetDefault("ai.timeout_sec", 0)
	v.SetDefault("ai.use_keyring", true)
	v.SetDefault("ai.mock", false)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.format", "text")

	// STEPWISE_DATABASE_PATH, STEPWISE_AI_MODEL, ...
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The credential keeps the conventional variable name as a fallback.
	_ = v.BindEnv("ai.api_key", envPrefix+"_OPENAI_API_KEY", "OPENAI_API_KEY")

	return v
}

// LoadConfig reads configuration from the given YAML file path using Viper,
// with STEPWISE_* environment overrides. If the file does not exist, the
// defaults (plus environment) are returned.
func LoadConfig(path string) (*AppConfig, error) {
	v := newViper(path)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.AI.APIKey = strings.TrimSpace(cfg.AI.APIKey)
	if cfg.Database.Path == "" {
		cfg.Database.Path = DefaultDatabasePath()
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed. The API key is never written.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database.path", cfg.Database.Path)
	v.Set("ai.model", cfg.AI.Model)
	v.Set("ai.base_url", cfg.AI.BaseURL)
	v.Set("ai.timeout_sec", cfg.AI.TimeoutSec)
	v.Set("ai.use_keyring", cfg.AI.UseKeyring)
	v.Set("ai.mock", cfg.AI.Mock)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
