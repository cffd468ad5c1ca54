package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/danieljhkim/vista/internal/buildid"
	"github.com/danieljhkim/vista/internal/clock"
	"github.com/danieljhkim/vista/internal/manifest"
)

// Build scans the app directory and writes the build id and the client,
// server and routes manifests.
//
// A normal build always records a fresh build id and fails on boundary
// violations unless AllowViolations is set. A watch build reuses the
// recorded id and only reports violations.
func (e *Engine) Build(ctx context.Context, req *BuildRequest) (*BuildResult, error) {
	start := e.clock.Now()

	scanResult, err := e.Scan(ctx, &ScanRequest{CWD: req.CWD, AppDir: req.AppDir})
	if err != nil {
		return nil, err
	}
	scan := scanResult.Scan

	result := &BuildResult{
		AppDir:     scanResult.AppDir,
		Scan:       scan,
		Violations: scan.Errors,
		Written:    []string{},
	}
	if len(scan.Errors) > 0 && !req.Watch && !req.AllowViolations {
		return result, &ViolationError{Count: len(scan.Errors)}
	}

	for _, dir := range e.paths.Directories() {
		if err := e.fs.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	id, err := e.buildIDs.Resolve(ctx, buildid.Request{
		Path:     e.paths.BuildID,
		Force:    !req.Watch,
		Strategy: e.cfg.BuildID,
		AppDir:   scanResult.AppDir,
		Scan:     scan,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve build id: %w", err)
	}
	result.BuildID = id.ID
	result.BuildIDReused = id.Reused
	if !id.Reused {
		result.Written = append(result.Written, e.paths.BuildID)
	}

	client, server := manifest.Build(scan, id.ID)
	result.ClientManifest = client
	result.ServerManifest = server
	result.RoutesManifest = manifest.NewRoutesManifest(server.Routes)

	outputs := []struct {
		path string
		v    any
	}{
		{e.paths.ClientManifest, client},
		{e.paths.ServerManifest, server},
		{e.paths.RoutesManifest, result.RoutesManifest},
	}
	for _, out := range outputs {
		if err := e.writeJSON(out.path, out.v); err != nil {
			return nil, err
		}
		result.Written = append(result.Written, out.path)
	}

	result.ElapsedMS = clock.Since(e.clock, start).Milliseconds()
	e.logger.Info("build complete",
		zap.String("buildId", id.ID),
		zap.Bool("reused", id.Reused),
		zap.Int("clientModules", len(client.ClientModules)),
		zap.Int("routes", len(server.Routes)),
		zap.Int("violations", len(scan.Errors)))
	return result, nil
}

func (e *Engine) writeJSON(path string, v any) error {
	data, err := manifest.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := e.fs.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
