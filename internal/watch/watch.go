// Package watch reports batches of source changes under an app directory.
//
// Events are collected until the tree has been quiet for the debounce
// window, then delivered as one sorted batch. Directories created or moved in
// while watching are added automatically and reported as changed.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/danieljhkim/vista/internal/fsops"
	"github.com/danieljhkim/vista/internal/scanner"
)

// Handler receives the changed paths of one debounced burst. It runs on the
// watcher goroutine, so batches never overlap.
type Handler func(ctx context.Context, changed []string)

// Watcher watches a directory tree.
type Watcher struct {
	watcher  *fsnotify.Watcher
	root     string
	debounce time.Duration
	logger   *zap.Logger
}

// New creates a Watcher over root.
func New(root string, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	watcher := &Watcher{watcher: w, root: root, debounce: debounce, logger: logger}
	if err := watcher.addTree(root); err != nil {
		_ = w.Close()
		return nil, err
	}
	return watcher, nil
}

// addTree watches dir and every non-skipped subdirectory.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && fsops.IsSkippedDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		w.logger.Debug("watching directory", zap.String("path", path))
		return nil
	})
}

// relevant reports whether an event should trigger a rebuild. A removed or
// renamed path without an extension may have been a directory of sources.
func relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if scanner.IsSourceFile(event.Name) {
		return true
	}
	if event.Op&(fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Base(event.Name)
	return filepath.Ext(name) == "" && !fsops.IsSkippedDir(name)
}

// newDir reports whether event created a directory that should be watched.
func (w *Watcher) newDir(event fsnotify.Event) bool {
	if event.Op&fsnotify.Create == 0 || fsops.IsSkippedDir(filepath.Base(event.Name)) {
		return false
	}
	info, err := os.Stat(event.Name)
	return err == nil && info.IsDir()
}

// Run delivers batches to fn until ctx is cancelled, then closes the
// watcher. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context, fn Handler) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			w.logger.Warn("failed to close watcher", zap.Error(err))
		}
	}()

	pending := make(map[string]struct{})
	// A stale fire with nothing pending is ignored below
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			switch {
			case w.newDir(event):
				// a created or moved-in directory may already hold sources
				if err := w.addTree(event.Name); err != nil {
					w.logger.Warn("failed to watch new directory", zap.String("path", event.Name), zap.Error(err))
				}
			case !relevant(event):
				continue
			}
			w.logger.Debug("change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			pending[event.Name] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			clear(pending)
			fn(ctx, changed)
		}
	}
}
