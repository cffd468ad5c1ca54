package integration

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/danieljhkim/vista/internal/clock"
	"github.com/danieljhkim/vista/internal/config"
	"github.com/danieljhkim/vista/internal/engine"
	"github.com/danieljhkim/vista/internal/gitx"
	"github.com/danieljhkim/vista/internal/hash"
)

// projectRoot is where the in-memory project lives
const projectRoot = "/project"

// testFS is a filesystem implementation that tracks files in memory for testing.
// Paths are absolute; the backing MapFS holds them without the leading slash.
type testFS struct {
	m      fstest.MapFS
	writes []string
}

func newTestFS() *testFS {
	return &testFS{m: fstest.MapFS{}}
}

func key(p string) string {
	p = strings.TrimPrefix(filepath.ToSlash(filepath.Clean(p)), "/")
	if p == "" {
		return "."
	}
	return p
}

// addFile stores content under the app directory.
func (t *testFS) addFile(rel, content string) {
	t.m[key(path.Join(projectRoot, "app", rel))] = &fstest.MapFile{Data: []byte(content), Mode: 0644}
}

func (t *testFS) ReadFile(p string) ([]byte, error) {
	return t.m.ReadFile(key(p))
}

func (t *testFS) ReadDir(p string) ([]fs.DirEntry, error) {
	return t.m.ReadDir(key(p))
}

func (t *testFS) Stat(p string) (os.FileInfo, error) {
	return t.m.Stat(key(p))
}

func (t *testFS) MkdirAll(p string, perm os.FileMode) error {
	t.m[key(p)] = &fstest.MapFile{Mode: fs.ModeDir | perm}
	return nil
}

func (t *testFS) AtomicWrite(p string, data []byte, perm os.FileMode) error {
	t.m[key(p)] = &fstest.MapFile{Data: append([]byte(nil), data...), Mode: perm}
	t.writes = append(t.writes, p)
	return nil
}

func (t *testFS) Exists(p string) (bool, error) {
	_, err := t.m.Stat(key(p))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func setupTestEngine(t *testing.T, strategy string) (*engine.Engine, *testFS) {
	t.Helper()
	fs := newTestFS()
	_ = fs.MkdirAll(filepath.Join(projectRoot, "app"), 0755)

	cfg := config.DefaultConfig()
	cfg.ProjectRoot = projectRoot
	cfg.BuildID = strategy

	gitRepo := gitx.NewFakeGitRepo(projectRoot, "4f2a9c1")
	hasher := hash.NewSHA256Hasher()
	clk := clock.NewStepClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), time.Millisecond)

	eng := engine.New(cfg, fs, hasher, gitRepo, clk, nil)
	return eng, fs
}
