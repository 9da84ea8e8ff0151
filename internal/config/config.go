// Package config loads the playground configuration from popup.json.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vango-go/popup/pkg/position"
	"github.com/vango-go/popup/pkg/transition"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "popup.json"

	// DefaultPort is the default playground server port.
	DefaultPort = 3000

	// DefaultHost is the default playground server host.
	DefaultHost = "localhost"
)

// Config represents the complete popup.json configuration.
type Config struct {
	// Name is the project name, used in log output.
	Name string `json:"name,omitempty"`

	// Server contains playground server settings.
	Server ServerConfig `json:"server,omitempty"`

	// Popup contains default popup settings for new sessions.
	Popup PopupConfig `json:"popup,omitempty"`

	// Metrics contains Prometheus exposition settings.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// configPath stores the path the config was loaded from.
	configPath string
}

// ServerConfig contains playground server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`
}

// PopupConfig contains the default popup configuration handed to new
// playground sessions.
type PopupConfig struct {
	// Placement is the preferred placement token, e.g. "top left".
	Placement string `json:"placement,omitempty"`

	// Transition is the named reveal/hide effect.
	Transition string `json:"transition,omitempty"`

	// TransitionDurationMS is the effect length in milliseconds.
	TransitionDurationMS int `json:"transitionDurationMs,omitempty"`

	// Inverted renders popups with inverted colors.
	Inverted bool `json:"inverted,omitempty"`

	// Basic renders popups without an arrow.
	Basic bool `json:"basic,omitempty"`
}

// TransitionDuration returns the configured duration.
func (p PopupConfig) TransitionDuration() time.Duration {
	return time.Duration(p.TransitionDurationMS) * time.Millisecond
}

// MetricsConfig contains Prometheus exposition settings.
type MetricsConfig struct {
	// Enabled turns on the /metrics endpoint.
	Enabled bool `json:"enabled,omitempty"`

	// Path is the exposition path (default "/metrics").
	Path string `json:"path,omitempty"`
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg := &Config{configPath: path}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromWorkingDir loads popup.json from the current directory,
// falling back to defaults when the file does not exist.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}

	path := filepath.Join(wd, ConfigFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// applyDefaults fills unset fields.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Popup.Placement == "" {
		c.Popup.Placement = position.DefaultPlacement
	}
	if c.Popup.Transition == "" {
		c.Popup.Transition = "scale"
	}
	if c.Popup.TransitionDurationMS == 0 {
		c.Popup.TransitionDurationMS = 200
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if !position.Valid(c.Popup.Placement) {
		return fmt.Errorf("unknown placement %q", c.Popup.Placement)
	}
	if !transition.Known(c.Popup.Transition) {
		return fmt.Errorf("unknown transition %q", c.Popup.Transition)
	}
	if c.Popup.TransitionDurationMS < 0 {
		return fmt.Errorf("negative transition duration %dms", c.Popup.TransitionDurationMS)
	}
	return nil
}

// Addr returns the host:port address the playground binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// URL returns the browsable playground URL.
func (c *Config) URL() string {
	return fmt.Sprintf("http://%s", c.Addr())
}

// Path returns where the configuration was loaded from, or "" for
// defaults.
func (c *Config) Path() string {
	return c.configPath
}
