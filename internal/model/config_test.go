package model

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("STEPWISE_OPENAI_API_KEY", "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.AI.Model != "gpt-4o-mini" {
		t.Errorf("expected default model, got %q", cfg.AI.Model)
	}
	if cfg.AI.BaseURL != "https://api.openai.com" {
		t.Errorf("expected default base url, got %q", cfg.AI.BaseURL)
	}
	if !cfg.AI.UseKeyring {
		t.Error("expected keyring lookup enabled by default")
	}
	if cfg.AI.APIKey != "" {
		t.Errorf("expected no api key, got %q", cfg.AI.APIKey)
	}
	if cfg.Database.Path == "" {
		t.Error("expected a default database path")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected default log level warn, got %q", cfg.Log.Level)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
database:
  path: /tmp/goals.db
ai:
  model: gpt-4o
  timeout_sec: 30
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	t.Setenv("STEPWISE_OPENAI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", " sk-test ")
	t.Setenv("STEPWISE_AI_MODEL", "gpt-4.1-mini")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.Path != "/tmp/goals.db" {
		t.Errorf("expected db path from file, got %q", cfg.Database.Path)
	}
	if cfg.AI.Model != "gpt-4.1-mini" {
		t.Errorf("expected env to override model, got %q", cfg.AI.Model)
	}
	if cfg.AI.TimeoutSec != 30 {
		t.Errorf("expected timeout 30, got %d", cfg.AI.TimeoutSec)
	}
	if cfg.AI.APIKey != "sk-test" {
		t.Errorf("expected trimmed api key from OPENAI_API_KEY, got %q", cfg.AI.APIKey)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.Log.Level)
	}
}

func TestSaveConfigOmitsAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("STEPWISE_OPENAI_API_KEY", "")

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultAppConfig()
	cfg.AI.APIKey = "sk-secret"
	cfg.AI.Model = "gpt-4o"

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved config: %v", err)
	}
	if strings.Contains(string(raw), "sk-secret") {
		t.Error("saved config must not contain the api key")
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.AI.Model != "gpt-4o" {
		t.Errorf("expected saved model gpt-4o, got %q", loaded.AI.Model)
	}
}
