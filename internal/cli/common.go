package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danieljhkim/vista/internal/clock"
	"github.com/danieljhkim/vista/internal/config"
	"github.com/danieljhkim/vista/internal/engine"
	"github.com/danieljhkim/vista/internal/fsops"
	"github.com/danieljhkim/vista/internal/gitx"
	"github.com/danieljhkim/vista/internal/hash"
)

// loadConfig reads the project configuration named by --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine() (*engine.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	// Create real implementations
	fs := fsops.NewRealFS()
	gitRepo := gitx.NewRealGitRepo()
	hasher := hash.NewSHA256Hasher()
	clk := &clock.RealClock{}

	// Create engine
	return engine.New(cfg, fs, hasher, gitRepo, clk, logger), nil
}

// workingDir returns the current working directory.
func workingDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return cwd, nil
}

// formatJSON formats a value as JSON.
func formatJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// formatError formats an error for display.
func formatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// FormatError formats an error returned by Execute for display.
func FormatError(err error) string {
	return formatError(err)
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
