// Package gitx looks up repository revisions for the git build id strategy.
package gitx

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNotInRepo indicates that no enclosing git repository was found.
var ErrNotInRepo = errors.New("not in a git repository")

// GitRepo provides an abstraction for git repository operations.
type GitRepo interface {
	// Discover finds the git repository root starting from dir.
	Discover(dir string) (root string, err error)

	// Revision returns the abbreviated HEAD commit of the repository at root,
	// with a "-dirty" suffix when the work tree has uncommitted changes.
	Revision(root string) (string, error)
}

// RealGitRepo implements GitRepo using actual git commands.
type RealGitRepo struct{}

// NewRealGitRepo creates a new RealGitRepo.
func NewRealGitRepo() *RealGitRepo {
	return &RealGitRepo{}
}

// Discover finds the git repository root by walking up from dir looking for .git.
func (g *RealGitRepo) Discover(dir string) (string, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	current := absPath
	for {
		// .git can be a directory or a file (worktrees, submodules)
		if info, err := os.Stat(filepath.Join(current, ".git")); err == nil {
			if info.IsDir() || info.Mode().IsRegular() {
				return current, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrNotInRepo
		}
		current = parent
	}
}

// Revision returns `git rev-parse --short=12 HEAD`, marking dirty trees.
func (g *RealGitRepo) Revision(root string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--short=12", "HEAD")
	cmd.Dir = root
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	rev := strings.TrimSpace(string(output))

	cmd = exec.Command("git", "status", "--porcelain")
	cmd.Dir = root
	status, err := cmd.Output()
	if err == nil && len(strings.TrimSpace(string(status))) > 0 {
		rev += "-dirty"
	}
	return rev, nil
}

// FakeGitRepo implements GitRepo with predetermined values for testing.
type FakeGitRepo struct {
	root     string
	revision string
	err      error
}

// NewFakeGitRepo creates a new FakeGitRepo.
func NewFakeGitRepo(root, revision string) *FakeGitRepo {
	return &FakeGitRepo{root: root, revision: revision}
}

// SetError sets an error to be returned by all methods.
func (g *FakeGitRepo) SetError(err error) {
	g.err = err
}

// Discover returns the predetermined root.
func (g *FakeGitRepo) Discover(dir string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.root, nil
}

// Revision returns the predetermined revision.
func (g *FakeGitRepo) Revision(root string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.revision, nil
}
