package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/danieljhkim/vista/internal/watch"
)

// BuildFunc receives the outcome of every build run by Watch.
type BuildFunc func(result *BuildResult, err error)

// Watch builds once, then rebuilds after every debounced batch of source
// changes until ctx is cancelled. Build failures are reported through
// onBuild and do not stop the loop.
func (e *Engine) Watch(ctx context.Context, req *WatchRequest, onBuild BuildFunc) error {
	if onBuild == nil {
		onBuild = func(*BuildResult, error) {}
	}
	build := func(ctx context.Context) {
		result, err := e.Build(ctx, &BuildRequest{CWD: req.CWD, AppDir: req.AppDir, Watch: true})
		if ctx.Err() != nil {
			return
		}
		onBuild(result, err)
	}

	appDir, err := e.appDir(req.CWD, req.AppDir)
	if err != nil {
		return err
	}

	w, err := watch.New(appDir, e.cfg.DebounceDuration(), e.logger.Named("watch"))
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", appDir, err)
	}

	build(ctx)
	return w.Run(ctx, func(ctx context.Context, changed []string) {
		e.logger.Info("rebuilding", zap.Strings("changed", changed))
		build(ctx)
	})
}
