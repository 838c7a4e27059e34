package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/recera/panzoom/pkg/viewport"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = "panzoom.yaml"

// Config represents the panzoom.yaml configuration
type Config struct {
	// Viewport tunables
	Viewport ViewportConfig `yaml:"viewport"`

	// Live server configuration
	Server ServerConfig `yaml:"server"`
}

// ViewportConfig mirrors viewport.Options. Zero values mean "use default".
type ViewportConfig struct {
	InitialScale     float64 `yaml:"initialScale,omitempty"`
	MinScale         float64 `yaml:"minScale,omitempty"`
	MaxScale         float64 `yaml:"maxScale,omitempty"`
	ZoomStep         float64 `yaml:"zoomStep,omitempty"`
	WheelSensitivity float64 `yaml:"wheelSensitivity,omitempty"`
}

// ServerConfig contains live server configuration
type ServerConfig struct {
	// Server host
	Host string `yaml:"host,omitempty"`

	// Server port
	Port int `yaml:"port,omitempty"`
}

// Load loads configuration from path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// LoadDir loads panzoom.yaml from dir.
func LoadDir(dir string) (*Config, error) {
	return Load(filepath.Join(dir, FileName))
}

// Parse decodes YAML and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	d := viewport.DefaultOptions()
	return &Config{
		Viewport: ViewportConfig{
			InitialScale:     d.InitialScale,
			MinScale:         d.MinScale,
			MaxScale:         d.MaxScale,
			ZoomStep:         d.ZoomStep,
			WheelSensitivity: d.WheelSensitivity,
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: 7420,
		},
	}
}

// applyDefaults fills in unset values
func applyDefaults(cfg *Config) {
	d := DefaultConfig()
	if cfg.Viewport.InitialScale == 0 {
		cfg.Viewport.InitialScale = d.Viewport.InitialScale
	}
	if cfg.Viewport.MinScale == 0 {
		cfg.Viewport.MinScale = d.Viewport.MinScale
	}
	if cfg.Viewport.MaxScale == 0 {
		cfg.Viewport.MaxScale = d.Viewport.MaxScale
	}
	if cfg.Viewport.ZoomStep == 0 {
		cfg.Viewport.ZoomStep = d.Viewport.ZoomStep
	}
	if cfg.Viewport.WheelSensitivity == 0 {
		cfg.Viewport.WheelSensitivity = d.Viewport.WheelSensitivity
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = d.Server.Host
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = d.Server.Port
	}
}

// Validate rejects values the server cannot start with. Viewport values are
// never rejected; the controller clamps them.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	return nil
}

// ViewportOptions converts the viewport section to controller options.
func (c *Config) ViewportOptions() viewport.Options {
	return viewport.Options{
		InitialScale:     c.Viewport.InitialScale,
		MinScale:         c.Viewport.MinScale,
		MaxScale:         c.Viewport.MaxScale,
		ZoomStep:         c.Viewport.ZoomStep,
		WheelSensitivity: c.Viewport.WheelSensitivity,
	}
}

// Addr returns the live server listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
