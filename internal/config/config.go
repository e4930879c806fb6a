package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user defaults. Command-line flags override every field.
type Config struct {
	StatePath string `yaml:"state_path"`
	LogFile   string `yaml:"log_file"`
	Mouse     *bool  `yaml:"mouse"`
}

// MouseEnabled defaults to true when the file does not say otherwise.
func (c *Config) MouseEnabled() bool {
	return c.Mouse == nil || *c.Mouse
}

// Load reads config.yaml from the user's config directory.
// A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		cfg := &Config{}
		cfg.applyDefaults()
		return cfg, nil
	}
	return LoadFile(path)
}

func LoadFile(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg.applyDefaults()
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Path returns $XDG_CONFIG_HOME/sticky/config.yaml, falling back to
// ~/.config/sticky/config.yaml.
func Path() (string, error) {
	dir, err := baseDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sticky", "config.yaml"), nil
}

// DefaultStatePath returns $XDG_DATA_HOME/sticky/notes.yaml, falling back to
// ~/.local/share/sticky/notes.yaml, or ./sticky-notes.yaml without a home.
func DefaultStatePath() string {
	dir, err := baseDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
	if err != nil {
		return "sticky-notes.yaml"
	}
	return filepath.Join(dir, "sticky", "notes.yaml")
}

func baseDir(env, fallback string) (string, error) {
	if v := os.Getenv(env); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback), nil
}

func (c *Config) applyDefaults() {
	if c.StatePath == "" {
		c.StatePath = DefaultStatePath()
	}
}
