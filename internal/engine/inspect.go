package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/vista/internal/directive"
	"github.com/danieljhkim/vista/internal/manifest"
	"github.com/danieljhkim/vista/internal/prerender"
	"github.com/danieljhkim/vista/internal/routes"
	"github.com/danieljhkim/vista/internal/scanner"
)

// Routes builds the nested route tree and the flat, sorted route listing.
func (e *Engine) Routes(ctx context.Context, req *RoutesRequest) (*RoutesResult, error) {
	scanResult, err := e.Scan(ctx, &ScanRequest{CWD: req.CWD, AppDir: req.AppDir})
	if err != nil {
		return nil, err
	}

	tree, err := routes.BuildTree(ctx, e.fs, scanResult.AppDir)
	if err != nil {
		return nil, fmt.Errorf("failed to build route tree: %w", err)
	}

	return &RoutesResult{
		AppDir: scanResult.AppDir,
		Tree:   tree,
		Routes: manifest.Routes(scanResult.Scan),
	}, nil
}

// Prerender computes placeholder metadata for one client component, or for
// every eligible component under the app directory when no file is given.
func (e *Engine) Prerender(ctx context.Context, req *PrerenderRequest) (*PrerenderResult, error) {
	appDir, err := e.appDir(req.CWD, req.AppDir)
	if err != nil {
		return nil, err
	}

	if req.File == "" {
		components, err := e.prerenderer.All(ctx, appDir)
		if err != nil {
			return nil, fmt.Errorf("failed to prerender %s: %w", appDir, err)
		}
		return &PrerenderResult{Components: components}, nil
	}

	path := resolvePath(req.File, req.CWD)
	data, err := e.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	c, ok := prerender.Render(path, string(data))
	if !ok {
		return nil, fmt.Errorf("%w: %s must begin with '%s'", ErrNotClientComponent, req.File, directive.Marker)
	}
	return &PrerenderResult{Components: map[string]*prerender.Component{c.ID: c}}, nil
}

// Check analyzes a single file under the app directory.
func (e *Engine) Check(ctx context.Context, req *CheckRequest) (*CheckResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	appDir, err := e.appDir(req.CWD, req.AppDir)
	if err != nil {
		return nil, err
	}
	abs, rel, err := resolveInAppDir(req.Path, req.CWD, appDir)
	if err != nil {
		return nil, err
	}

	data, err := e.fs.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", req.Path, err)
	}

	c := scanner.NewComponent(abs, rel, data)
	result := &CheckResult{
		Path:             rel,
		Kind:             c.Kind,
		Directive:        directive.Result{IsClient: c.IsClient, Line: c.DirectiveLine},
		LeadingDirective: directive.HasLeadingDirective(string(data)),
		ModuleID:         manifest.ModuleID(rel, c.IsClient),
		Exports:          c.Exports,
		ClientHooks:      c.ClientHooksUsed,
		Metadata: scanner.MetadataInfo{
			HasStaticMetadata:   c.HasMetadata,
			HasGenerateMetadata: c.HasGenerateMetadata,
		},
	}
	if v, ok := c.Violation(); ok {
		result.Violation = &v
	}
	return result, nil
}
