package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/smartshare/panel/pkg/types"
)

func writeConfigFile(t *testing.T, contents string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv(configPathEnv, path)
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(configPathEnv, "")
	t.Setenv(apiKeyEnv, "")
	t.Setenv(modelEnv, "")
	t.Setenv(endpointEnv, "")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.Engine.Model != "gpt-4o-mini" {
		t.Errorf("Engine.Model = %q, want default", cfg.Engine.Model)
	}
	if !cfg.Browser.HeadlessEnabled() {
		t.Error("Browser.HeadlessEnabled() = false, want true by default")
	}
	if got := cfg.Defaults.Settings(); got != types.DefaultSettings() {
		t.Errorf("Defaults.Settings() = %+v, want built-in defaults", got)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	writeConfigFile(t, `
engine:
  endpoint: https://llm.internal.example/v1
  model: custom-model
  warmupRequired: true
history:
  path: /tmp/history.json
browser:
  headless: false
denylist:
  - "*.bank.example"
defaults:
  type: headline
  length: long
`)

	cfg := Load()
	if cfg.Engine.Endpoint != "https://llm.internal.example/v1" {
		t.Errorf("Engine.Endpoint = %q", cfg.Engine.Endpoint)
	}
	if cfg.Engine.Model != "custom-model" {
		t.Errorf("Engine.Model = %q", cfg.Engine.Model)
	}
	if !cfg.Engine.WarmupRequired {
		t.Error("Engine.WarmupRequired = false, want true")
	}
	if cfg.History.Path != "/tmp/history.json" {
		t.Errorf("History.Path = %q", cfg.History.Path)
	}
	if cfg.Browser.HeadlessEnabled() {
		t.Error("Browser.HeadlessEnabled() = true, want false")
	}
	if len(cfg.Denylist) != 1 || cfg.Denylist[0] != "*.bank.example" {
		t.Errorf("Denylist = %v", cfg.Denylist)
	}

	settings := cfg.Defaults.Settings()
	if settings.Type != types.TypeHeadline || settings.Length != types.LengthLong {
		t.Errorf("Defaults.Settings() = %+v", settings)
	}
	if settings.Format != types.FormatMarkdown {
		t.Errorf("unset format = %q, want built-in default", settings.Format)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	writeConfigFile(t, "engine:\n  model: file-model\n  apiKey: file-key\n")
	t.Setenv(apiKeyEnv, "env-key")
	t.Setenv(modelEnv, "env-model")

	cfg := Load()
	if cfg.Engine.APIKey != "env-key" {
		t.Errorf("Engine.APIKey = %q, want env override", cfg.Engine.APIKey)
	}
	if cfg.Engine.Model != "env-model" {
		t.Errorf("Engine.Model = %q, want env override", cfg.Engine.Model)
	}
}

func TestLoadBadFileFallsBack(t *testing.T) {
	clearEnv(t)
	writeConfigFile(t, "engine: [not: valid")

	cfg := Load()
	if cfg.Engine.Model != "gpt-4o-mini" {
		t.Errorf("Engine.Model = %q, want default after parse failure", cfg.Engine.Model)
	}
}

func TestDefaultsSettingsRejectsInvalid(t *testing.T) {
	d := DefaultsConfig{Type: "haiku"}
	if got := d.Settings(); got != types.DefaultSettings() {
		t.Errorf("Settings() = %+v, want built-in defaults for invalid type", got)
	}
}
