package engine

import (
	"fmt"
	"path/filepath"
	"strings"
)

// resolvePath makes a user-provided path absolute relative to cwd.
func resolvePath(userPath, cwd string) string {
	if filepath.IsAbs(userPath) {
		return filepath.Clean(userPath)
	}
	return filepath.Join(cwd, userPath)
}

// resolveInAppDir resolves a user-provided path (absolute, relative, or containing "..")
// to an absolute path and a slash-separated path relative to appDir. It rejects paths
// that escape the app directory or resolve to the app directory itself.
func resolveInAppDir(userPath, cwd, appDir string) (abs, rel string, err error) {
	abs = resolvePath(userPath, cwd)
	appDir = filepath.Clean(appDir)

	relPath, err := filepath.Rel(appDir, abs)
	if err != nil {
		return "", "", fmt.Errorf("failed to compute app-relative path for %q: %w", userPath, err)
	}

	// Reject paths outside the app directory
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", "", fmt.Errorf("%w: %q resolves to %q", ErrOutsideAppDir, userPath, abs)
	}

	// Reject the app directory itself
	if relPath == "." {
		return "", "", fmt.Errorf("path %q resolves to the app directory, not a file", userPath)
	}

	return abs, filepath.ToSlash(relPath), nil
}
