// Package prerender builds layout-preserving placeholders for client
// components, so server rendered pages reserve space before hydration.
package prerender

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/danieljhkim/vista/internal/directive"
	"github.com/danieljhkim/vista/internal/fsops"
	"github.com/danieljhkim/vista/internal/scanner"
)

// Component is the placeholder for one client component.
type Component struct {
	ID              string `json:"componentId"`
	Path            string `json:"path"`
	RootTag         string `json:"rootTag"`
	RootStyles      Styles `json:"rootStyles"`
	Counts          Counts `json:"counts"`
	PlaceholderHTML string `json:"placeholderHtml"`
	EstimatedHeight int    `json:"estimatedHeight"`

	// EstimatedWidth is never computed.
	EstimatedWidth *int `json:"estimatedWidth"`
}

// Prerenderer reads component sources through an FS.
type Prerenderer struct {
	fs     fsops.FS
	logger *zap.Logger
}

// New creates a Prerenderer. A nil logger disables logging.
func New(fsys fsops.FS, logger *zap.Logger) *Prerenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prerenderer{fs: fsys, logger: logger}
}

// Render builds the placeholder for source. It applies only when source
// begins with the client directive.
func Render(path, source string) (*Component, bool) {
	if !directive.HasLeadingDirective(source) {
		return nil, false
	}
	styles := ExtractStyles(source)
	counts := CountElements(source)
	return &Component{
		ID:              "client:" + scanner.Stem(path),
		Path:            path,
		RootTag:         "div",
		RootStyles:      styles,
		Counts:          counts,
		PlaceholderHTML: PlaceholderHTML(styles, counts),
		EstimatedHeight: EstimateHeight(counts),
	}, true
}

// Component prerenders the file at path. Unreadable files and files that do
// not start with the client directive yield false.
func (p *Prerenderer) Component(path string) (*Component, bool) {
	data, err := p.fs.ReadFile(path)
	if err != nil {
		p.logger.Debug("skipping unreadable file", zap.String("path", path), zap.Error(err))
		return nil, false
	}
	return Render(path, string(data))
}

// markupExt reports the extensions eligible for prerendering.
func markupExt(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".tsx" || ext == ".jsx"
}

// All prerenders every .tsx and .jsx client component under appDir, keyed
// by component id. When two files share a stem the later one in walk order
// wins. The only error returned is ctx.Err().
func (p *Prerenderer) All(ctx context.Context, appDir string) (map[string]*Component, error) {
	out := make(map[string]*Component)
	if err := p.walk(ctx, appDir, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Prerenderer) walk(ctx context.Context, dir string, out map[string]*Component) error {
	entries, err := p.fs.ReadDir(dir)
	if err != nil {
		p.logger.Debug("skipping unreadable directory", zap.String("path", dir), zap.Error(err))
		return nil
	}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(dir, entry.Name())
		isDir, ok, err := fsops.ResolveEntry(p.fs, path, entry)
		if err != nil {
			p.logger.Debug("skipping dangling symlink", zap.String("path", path), zap.Error(err))
		}
		if !ok {
			continue
		}
		if isDir {
			if fsops.IsSkippedDir(entry.Name()) {
				continue
			}
			if err := p.walk(ctx, path, out); err != nil {
				return err
			}
			continue
		}
		if !markupExt(entry.Name()) {
			continue
		}
		if c, ok := p.Component(path); ok {
			if prev, dup := out[c.ID]; dup {
				p.logger.Debug("component id collision", zap.String("id", c.ID),
					zap.String("replaced", prev.Path), zap.String("path", path))
			}
			out[c.ID] = c
		}
	}
	return nil
}
