// Package engine provides the build pipeline behind the vista CLI.
//
// The engine package acts as the orchestration layer between CLI commands and
// the analysis packages. It coordinates scanning, route tree construction,
// build id resolution, manifest generation and placeholder prerendering.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - Scan/Check: Classifies components and reports boundary violations
//   - Build/Watch: Writes the build outputs, once or on every change
//   - Routes/Prerender: Inspects the route tree and placeholder metadata
package engine

import (
	"go.uber.org/zap"

	"github.com/danieljhkim/vista/internal/buildid"
	"github.com/danieljhkim/vista/internal/clock"
	"github.com/danieljhkim/vista/internal/config"
	"github.com/danieljhkim/vista/internal/fsops"
	"github.com/danieljhkim/vista/internal/gitx"
	"github.com/danieljhkim/vista/internal/hash"
	"github.com/danieljhkim/vista/internal/prerender"
	"github.com/danieljhkim/vista/internal/scanner"
)

// Engine orchestrates all vista operations.
// It is the main API surface called by the CLI.
type Engine struct {
	cfg         *config.Config
	paths       *config.Paths
	fs          fsops.FS
	clock       clock.Clock
	logger      *zap.Logger
	scanner     *scanner.Scanner
	buildIDs    *buildid.Generator
	prerenderer *prerender.Prerenderer
}

// New creates a new Engine with the given dependencies. A nil logger
// disables logging.
func New(
	cfg *config.Config,
	fs fsops.FS,
	hasher hash.Hasher,
	gitRepo gitx.GitRepo,
	clk clock.Clock,
	logger *zap.Logger,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:         cfg,
		paths:       cfg.Paths(),
		fs:          fs,
		clock:       clk,
		logger:      logger,
		scanner:     scanner.New(fs, clk, logger.Named("scanner")),
		buildIDs:    buildid.New(fs, clk, hasher, gitRepo, logger.Named("buildid")),
		prerenderer: prerender.New(fs, logger.Named("prerender")),
	}
}

// Paths returns the build output layout.
func (e *Engine) Paths() *config.Paths {
	return e.paths
}

// appDir resolves an optional override against the configured route tree and
// checks that it exists.
func (e *Engine) appDir(cwd, override string) (string, error) {
	dir := e.cfg.AppPath()
	if override != "" {
		dir = resolvePath(override, cwd)
	}

	exists, err := e.fs.Exists(dir)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", &AppDirError{Path: dir}
	}
	return dir, nil
}
