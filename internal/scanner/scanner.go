// Package scanner walks a route tree directory and classifies every source
// file as a client or server component using lexical heuristics.
//
// Files are read once and inspected by substring matching only; there is no
// tokenizer or parser. Unreadable files and directories are treated as absent.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/danieljhkim/vista/internal/clock"
	"github.com/danieljhkim/vista/internal/directive"
	"github.com/danieljhkim/vista/internal/fsops"
)

// Extensions are the recognized source file extensions.
var Extensions = []string{".ts", ".tsx", ".js", ".jsx"}

// IsSourceFile reports whether name carries a recognized extension.
func IsSourceFile(name string) bool {
	ext := filepath.Ext(name)
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Stem returns the file base name without its extension.
func Stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Scanner walks app directories.
type Scanner struct {
	fs     fsops.FS
	clock  clock.Clock
	logger *zap.Logger
}

// New creates a Scanner. A nil logger disables logging.
func New(fsys fsops.FS, clk clock.Clock, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{fs: fsys, clock: clk, logger: logger}
}

// Scan walks rootDir depth-first and returns the classified components along
// with every server/client boundary violation. A missing or unreadable root
// yields an empty result. The only error returned is ctx.Err().
func (s *Scanner) Scan(ctx context.Context, rootDir string) (*Result, error) {
	start := s.clock.Now()

	root, err := filepath.Abs(rootDir)
	if err != nil {
		root = rootDir
	}

	w := &walk{scanner: s, root: root}
	if err := w.dir(ctx, root); err != nil {
		return nil, err
	}

	result := newResult(w.components, w.errors)
	result.Elapsed = clock.Since(s.clock, start)
	result.ScanTimeMS = result.Elapsed.Milliseconds()

	s.logger.Debug("scan complete",
		zap.String("root", root),
		zap.Int("files", result.TotalFiles),
		zap.Int("violations", len(result.Errors)),
		zap.Duration("elapsed", result.Elapsed))
	return result, nil
}

type walk struct {
	scanner    *Scanner
	root       string
	components []*Component
	errors     []ServerComponentError
}

func (w *walk) dir(ctx context.Context, dir string) error {
	entries, err := w.scanner.fs.ReadDir(dir)
	if err != nil {
		w.scanner.logger.Debug("skipping unreadable directory", zap.String("path", dir), zap.Error(err))
		return nil
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(dir, entry.Name())
		isDir, ok := w.isDir(path, entry)
		if !ok {
			continue
		}

		if isDir {
			if fsops.IsSkippedDir(entry.Name()) {
				continue
			}
			if err := w.dir(ctx, path); err != nil {
				return err
			}
			continue
		}

		if !IsSourceFile(entry.Name()) {
			continue
		}
		c, ok := w.file(path)
		if !ok {
			continue
		}
		if v, ok := c.Violation(); ok {
			w.errors = append(w.errors, v)
		}
		w.components = append(w.components, c)
	}
	return nil
}

// isDir resolves symlinks so linked directories are walked like real ones.
func (w *walk) isDir(path string, entry fs.DirEntry) (isDir, ok bool) {
	isDir, ok, err := fsops.ResolveEntry(w.scanner.fs, path, entry)
	if err != nil {
		w.scanner.logger.Debug("skipping dangling symlink", zap.String("path", path), zap.Error(err))
	}
	return isDir, ok
}

func (w *walk) file(path string) (*Component, bool) {
	data, err := w.scanner.fs.ReadFile(path)
	if err != nil {
		w.scanner.logger.Debug("skipping unreadable file", zap.String("path", path), zap.Error(err))
		return nil, false
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return nil, false
	}
	return NewComponent(path, rel, data), true
}

// NewComponent analyzes the contents of one file. rel is its path relative to
// the scan root.
func NewComponent(path, rel string, data []byte) *Component {
	facts := Analyze(string(data))
	return &Component{
		AbsolutePath:        path,
		RelativePath:        filepath.ToSlash(rel),
		IsClient:            facts.Directive.IsClient,
		DirectiveLine:       facts.Directive.Line,
		Kind:                KindFromName(Stem(path)),
		Exports:             facts.Exports,
		ClientHooksUsed:     facts.ClientHooks,
		HasMetadata:         facts.HasMetadata,
		HasGenerateMetadata: facts.HasGenerateMetadata,
	}
}

// Violation reports the boundary violation for a server component that uses
// client-only APIs.
func (c *Component) Violation() (ServerComponentError, bool) {
	if c.IsClient || len(c.ClientHooksUsed) == 0 {
		return ServerComponentError{}, false
	}
	return ServerComponentError{
		File: c.RelativePath,
		Message: fmt.Sprintf(
			"Using %s in a Server Component. Add '%s' to make it a Client Component.",
			strings.Join(c.ClientHooksUsed, ", "), directive.Marker),
		Hooks: c.ClientHooksUsed,
	}, true
}
