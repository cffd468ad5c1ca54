package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the default configuration file name.
const FileName = "vista.yaml"

// Environment variables that override file settings.
const (
	EnvAppDir  = "VISTA_APP_DIR"
	EnvOutDir  = "VISTA_OUT_DIR"
	EnvBuildID = "VISTA_BUILD_ID"
)

// Build id strategies.
const (
	StrategyRandom  = "random"
	StrategyContent = "content"
	StrategyGit     = "git"
)

// Config is the project configuration.
type Config struct {
	// AppDir is the route tree directory, relative to the project root.
	AppDir string `yaml:"appDir"`

	// OutDir is the build output directory, relative to the project root.
	OutDir string `yaml:"outDir"`

	// BuildID selects how build ids are generated.
	BuildID string `yaml:"buildId"`

	Watch WatchConfig `yaml:"watch"`

	// ProjectRoot is the directory holding the config file. Not read from
	// YAML.
	ProjectRoot string `yaml:"-"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	// Debounce is a Go duration string, e.g. "200ms".
	Debounce string `yaml:"debounce"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		AppDir:  "app",
		OutDir:  DefaultOutDir,
		BuildID: StrategyRandom,
		Watch:   WatchConfig{Debounce: "200ms"},
	}
}

// Load reads the configuration at path. A missing file yields defaults.
// Values from a .env file in the same directory override the file, and
// environment variables override both.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = FileName
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	cfg.ProjectRoot = filepath.Dir(abs)

	data, err := os.ReadFile(abs)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	dotenv, err := godotenv.Read(filepath.Join(cfg.ProjectRoot, ".env"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	cfg.applyOverrides(func(key string) (string, bool) {
		v, ok := dotenv[key]
		return v, ok
	})
	cfg.applyOverrides(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyOverrides(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAppDir); ok && v != "" {
		c.AppDir = v
	}
	if v, ok := lookup(EnvOutDir); ok && v != "" {
		c.OutDir = v
	}
	if v, ok := lookup(EnvBuildID); ok && v != "" {
		c.BuildID = v
	}
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.BuildID {
	case StrategyRandom, StrategyContent, StrategyGit:
	default:
		return fmt.Errorf("invalid buildId strategy %q (want %s, %s or %s)",
			c.BuildID, StrategyRandom, StrategyContent, StrategyGit)
	}
	if c.Watch.Debounce != "" {
		if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
			return fmt.Errorf("invalid watch.debounce: %w", err)
		}
	}
	return nil
}

// AppPath returns the absolute route tree directory.
func (c *Config) AppPath() string {
	if filepath.IsAbs(c.AppDir) {
		return c.AppDir
	}
	return filepath.Join(c.ProjectRoot, c.AppDir)
}

// Paths returns the output layout for this configuration.
func (c *Config) Paths() *Paths {
	return NewPaths(c.ProjectRoot, c.OutDir)
}

// DebounceDuration returns the watch debounce window.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return 200 * time.Millisecond
	}
	return d
}
