// Package config provides JSON-based persistence for the translator settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	configDirName  = "bubbletrans"
	configFileName = "config.json"

	// DefaultBaseURL targets OpenRouter, which fronts most chat-completion
	// providers behind one OpenAI-compatible endpoint.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	// DefaultModel is a fast vision-capable model, usable in both modes.
	DefaultModel = "google/gemini-2.0-flash-001"

	// maxModelHistory bounds the successful-models list.
	maxModelHistory = 30
)

// Config holds the translator settings persisted between sessions.
type Config struct {
	APIKey    string `json:"api_key"`
	BaseURL   string `json:"base_url"`
	Model     string `json:"model"`
	UseVision bool   `json:"use_vision"`

	// Context is free-form background about the comic being read, passed to
	// the model with every request ("this is a 90s X-Men run", etc.).
	Context string `json:"context,omitempty"`

	// SuccessfulModels records models that passed a connection test, most
	// recent first. Feeds the model dropdown in the settings dialog.
	SuccessfulModels []string `json:"successful_models,omitempty"`

	path string
}

// Default returns a Config populated with standard defaults.
func Default() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
		Model:   DefaultModel,
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, configDirName, configFileName)
}

// Load reads the config from the default location. A missing file yields
// defaults without error.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom reads the config from the given path. A missing file yields
// defaults without error; a malformed file returns defaults plus the error.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	cfg.path = path
	cfg.Validate()
	return cfg, nil
}

// Validate normalizes the config in place: fills empty fields with defaults,
// strips a trailing slash off the base URL, and dedupes the model history.
func (c *Config) Validate() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.Model = strings.TrimSpace(c.Model)
	if c.Model == "" {
		c.Model = DefaultModel
	}

	seen := make(map[string]bool, len(c.SuccessfulModels))
	cleaned := c.SuccessfulModels[:0]
	for _, m := range c.SuccessfulModels {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		cleaned = append(cleaned, m)
	}
	if len(cleaned) > maxModelHistory {
		cleaned = cleaned[:maxModelHistory]
	}
	c.SuccessfulModels = cleaned
}

// RememberModel moves the model to the front of the history list.
func (c *Config) RememberModel(model string) {
	model = strings.TrimSpace(model)
	if model == "" {
		return
	}
	models := []string{model}
	for _, m := range c.SuccessfulModels {
		if m != model {
			models = append(models, m)
		}
	}
	c.SuccessfulModels = models
	c.Validate()
}

// Save writes the config back to the path it was loaded from, creating the
// directory if needed.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = DefaultPath()
	}
	c.Validate()

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Configured reports whether an API key has been set.
func (c *Config) Configured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}
