// Package models defines shared data structures for configuration,
// tables and task payloads.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for the solver and the HTTP front door.
// Values come from the YAML config file, overridable by CLI flags.
type Config struct {
	// ListenAddr is the address the front door binds to, e.g. ":8080".
	ListenAddr string `yaml:"listen_addr"`

	// ExpectedSecret is compared against the secret of every incoming task.
	// Falls back to the QUIZ_SECRET environment variable when empty.
	ExpectedSecret string `yaml:"expected_secret"`

	// DBPath is the SQLite task log location. Empty disables the log.
	DBPath string `yaml:"db_path"`

	// FetchTimeout bounds a single resource download.
	FetchTimeout time.Duration `yaml:"fetch_timeout"`

	// RenderTimeout bounds page navigation and settling in the browser.
	RenderTimeout time.Duration `yaml:"render_timeout"`

	// SubmitTimeout bounds the final answer POST.
	SubmitTimeout time.Duration `yaml:"submit_timeout"`

	// BrowserURL is the WebSocket URL of an external Chrome instance.
	// Empty launches a local headless Chrome.
	BrowserURL string `yaml:"browser_url"`
}

// LoadConfig reads a YAML config file and applies defaults. A missing file
// is not an error; defaults are returned so flags alone can configure a run.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.ExpectedSecret == "" {
		c.ExpectedSecret = os.Getenv("QUIZ_SECRET")
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 30 * time.Second
	}
	if c.RenderTimeout <= 0 {
		c.RenderTimeout = 60 * time.Second
	}
	if c.SubmitTimeout <= 0 {
		c.SubmitTimeout = 30 * time.Second
	}
}
