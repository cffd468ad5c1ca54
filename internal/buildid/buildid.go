// Package buildid generates and persists the id that versions a build's
// manifests and chunk caches.
package buildid

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/danieljhkim/vista/internal/clock"
	"github.com/danieljhkim/vista/internal/config"
	"github.com/danieljhkim/vista/internal/fsops"
	"github.com/danieljhkim/vista/internal/gitx"
	"github.com/danieljhkim/vista/internal/hash"
	"github.com/danieljhkim/vista/internal/scanner"
)

// Generator produces build ids.
type Generator struct {
	fs     fsops.FS
	clock  clock.Clock
	hasher hash.Hasher
	git    gitx.GitRepo
	logger *zap.Logger

	// newSuffix returns the random part of a random build id.
	newSuffix func() string
}

// New creates a Generator. A nil logger disables logging.
func New(fsys fsops.FS, clk clock.Clock, hasher hash.Hasher, git gitx.GitRepo, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		fs:        fsys,
		clock:     clk,
		hasher:    hasher,
		git:       git,
		logger:    logger,
		newSuffix: randomSuffix,
	}
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Random returns a base-36 millisecond timestamp and 8 random hex digits,
// e.g. "lx2k9a1b-3f9c02de".
func (g *Generator) Random() string {
	ms := g.clock.Now().UnixMilli()
	return strconv.FormatInt(ms, 36) + "-" + g.newSuffix()
}

// Content hashes every scanned file, read through the generator's FS. An
// unchanged tree always yields the same id.
func (g *Generator) Content(scan *scanner.Result) (string, error) {
	components := make([]*scanner.Component, len(scan.Components))
	copy(components, scan.Components)
	sort.Slice(components, func(i, j int) bool {
		return components[i].RelativePath < components[j].RelativePath
	})

	var b strings.Builder
	for _, c := range components {
		data, err := g.fs.ReadFile(c.AbsolutePath)
		if err != nil {
			return "", fmt.Errorf("failed to hash %s: %w", c.RelativePath, err)
		}
		b.WriteString(c.RelativePath)
		b.WriteByte(0)
		b.WriteString(g.hasher.HashBytes(data))
		b.WriteByte('\n')
	}
	return hash.Short(g.hasher.HashBytes([]byte(b.String())), 16), nil
}

// Git returns the short HEAD revision of the repository containing appDir,
// falling back to Content outside a repository.
func (g *Generator) Git(appDir string, scan *scanner.Result) (string, error) {
	root, err := g.git.Discover(appDir)
	if err == nil {
		var rev string
		if rev, err = g.git.Revision(root); err == nil {
			return rev, nil
		}
	}
	if errors.Is(err, gitx.ErrNotInRepo) {
		g.logger.Debug("not in a git repository, using content build id", zap.String("dir", appDir))
	} else {
		g.logger.Warn("git revision unavailable, using content build id", zap.Error(err))
	}
	return g.Content(scan)
}

// Generate creates a new id with the named strategy.
func (g *Generator) Generate(strategy, appDir string, scan *scanner.Result) (string, error) {
	switch strategy {
	case config.StrategyRandom, "":
		return g.Random(), nil
	case config.StrategyContent:
		return g.Content(scan)
	case config.StrategyGit:
		return g.Git(appDir, scan)
	default:
		return "", fmt.Errorf("unknown build id strategy %q", strategy)
	}
}

// Request describes a Resolve call.
type Request struct {
	// Path is the BUILD_ID file.
	Path string

	// Force generates a new id even when Path holds one.
	Force bool

	Strategy string
	AppDir   string
	Scan     *scanner.Result
}

// Result is the resolved build id.
type Result struct {
	ID string `json:"buildId"`

	// Reused reports that the id was read from an existing BUILD_ID file.
	Reused bool `json:"reused"`
}

// Resolve returns the id recorded at req.Path unless req.Force is set or the
// file is missing or blank; otherwise it generates a new id and records it.
func (g *Generator) Resolve(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !req.Force {
		data, err := g.fs.ReadFile(req.Path)
		if err == nil {
			if id := strings.TrimSpace(string(data)); id != "" {
				return &Result{ID: id, Reused: true}, nil
			}
		}
	}

	id, err := g.Generate(req.Strategy, req.AppDir, req.Scan)
	if err != nil {
		return nil, err
	}
	if err := g.fs.AtomicWrite(req.Path, []byte(id), 0644); err != nil {
		return nil, fmt.Errorf("failed to write build id: %w", err)
	}
	return &Result{ID: id}, nil
}
