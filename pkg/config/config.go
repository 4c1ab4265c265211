// Package config loads application configuration from YAML with
// environment overrides, and persists user summarization preferences.
package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/smartshare/panel/pkg/types"
)

const (
	configPathEnv = "SMARTSHARE_CONFIG"
	apiKeyEnv     = "OPENAI_API_KEY"
	modelEnv      = "SMARTSHARE_MODEL"
	endpointEnv   = "SMARTSHARE_ENDPOINT"
)

// Config holds high-level settings required across the application.
type Config struct {
	Engine   EngineConfig   `yaml:"engine"`
	History  HistoryConfig  `yaml:"history"`
	Browser  BrowserConfig  `yaml:"browser"`
	Denylist []string       `yaml:"denylist"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// EngineConfig defines how to contact the summarization model.
type EngineConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"apiKey"`
	// WarmupRequired models engines whose first use downloads the model.
	WarmupRequired bool `yaml:"warmupRequired"`
}

// HistoryConfig describes where past summaries are kept.
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// BrowserConfig controls the extraction browser.
type BrowserConfig struct {
	Headless *bool `yaml:"headless"`
}

// HeadlessEnabled resolves the headless flag, defaulting to true.
func (b BrowserConfig) HeadlessEnabled() bool {
	if b.Headless == nil {
		return true
	}
	return *b.Headless
}

// DefaultsConfig sets the summarization settings used before the user
// changes anything.
type DefaultsConfig struct {
	Type   string `yaml:"type"`
	Format string `yaml:"format"`
	Length string `yaml:"length"`
}

// Settings converts the configured defaults into validated settings,
// falling back to the built-in defaults on any invalid value.
func (d DefaultsConfig) Settings() types.SummarizationSettings {
	s := types.DefaultSettings()
	if d.Type != "" {
		s.Type = types.SummaryType(d.Type)
	}
	if d.Format != "" {
		s.Format = types.SummaryFormat(d.Format)
	}
	if d.Length != "" {
		s.Length = types.SummaryLength(d.Length)
	}
	if err := s.Validate(); err != nil {
		log.Printf("config: invalid default settings: %v (using built-in defaults)", err)
		return types.DefaultSettings()
	}
	return s
}

// Load reads YAML configuration (if present) and applies environment
// overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(apiKeyEnv); v != "" {
		c.Engine.APIKey = v
	}
	if v := os.Getenv(modelEnv); v != "" {
		c.Engine.Model = v
	}
	if v := os.Getenv(endpointEnv); v != "" {
		c.Engine.Endpoint = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Engine.Endpoint != "" {
		base.Engine.Endpoint = override.Engine.Endpoint
	}
	if override.Engine.Model != "" {
		base.Engine.Model = override.Engine.Model
	}
	if override.Engine.APIKey != "" {
		base.Engine.APIKey = override.Engine.APIKey
	}
	if override.Engine.WarmupRequired {
		base.Engine.WarmupRequired = true
	}

	if override.History.Path != "" {
		base.History.Path = override.History.Path
	}

	if override.Browser.Headless != nil {
		base.Browser.Headless = override.Browser.Headless
	}

	if len(override.Denylist) > 0 {
		base.Denylist = override.Denylist
	}

	if override.Defaults.Type != "" {
		base.Defaults.Type = override.Defaults.Type
	}
	if override.Defaults.Format != "" {
		base.Defaults.Format = override.Defaults.Format
	}
	if override.Defaults.Length != "" {
		base.Defaults.Length = override.Defaults.Length
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Engine: EngineConfig{
			Model: "gpt-4o-mini",
		},
	}
}
