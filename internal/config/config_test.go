package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvAppDir, EnvOutDir, EnvBuildID} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.AppDir != "app" || cfg.OutDir != ".vista" || cfg.BuildID != StrategyRandom {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.ProjectRoot != dir {
		t.Errorf("ProjectRoot = %s, want %s", cfg.ProjectRoot, dir)
	}
	if cfg.AppPath() != filepath.Join(dir, "app") {
		t.Errorf("AppPath = %s", cfg.AppPath())
	}
	if cfg.DebounceDuration() != 200*time.Millisecond {
		t.Errorf("DebounceDuration = %v", cfg.DebounceDuration())
	}
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	writeFile(t, path, "appDir: src/app\noutDir: dist\nbuildId: content\nwatch:\n  debounce: 1s\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.AppDir != "src/app" || cfg.OutDir != "dist" || cfg.BuildID != StrategyContent {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.DebounceDuration() != time.Second {
		t.Errorf("DebounceDuration = %v", cfg.DebounceDuration())
	}
	if cfg.Paths().Root != filepath.Join(dir, "dist") {
		t.Errorf("Paths().Root = %s", cfg.Paths().Root)
	}
}

func TestLoad_Precedence(t *testing.T) {
	tests := []struct {
		name    string
		dotenv  string
		env     map[string]string
		wantApp string
		wantOut string
		wantID  string
	}{
		{
			name:    "file only",
			wantApp: "from-file",
			wantOut: "out-file",
			wantID:  StrategyContent,
		},
		{
			name:    ".env overrides file",
			dotenv:  "VISTA_APP_DIR=from-dotenv\nVISTA_BUILD_ID=git\n",
			wantApp: "from-dotenv",
			wantOut: "out-file",
			wantID:  StrategyGit,
		},
		{
			name:    "environment overrides .env",
			dotenv:  "VISTA_APP_DIR=from-dotenv\n",
			env:     map[string]string{EnvAppDir: "from-env", EnvOutDir: "out-env"},
			wantApp: "from-env",
			wantOut: "out-env",
			wantID:  StrategyContent,
		},
		{
			name:    "empty environment values are ignored",
			env:     map[string]string{EnvAppDir: ""},
			wantApp: "from-file",
			wantOut: "out-file",
			wantID:  StrategyContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, FileName)
			writeFile(t, path, "appDir: from-file\noutDir: out-file\nbuildId: content\n")
			if tt.dotenv != "" {
				writeFile(t, filepath.Join(dir, ".env"), tt.dotenv)
			}

			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if cfg.AppDir != tt.wantApp || cfg.OutDir != tt.wantOut || cfg.BuildID != tt.wantID {
				t.Errorf("got app=%s out=%s id=%s, want app=%s out=%s id=%s",
					cfg.AppDir, cfg.OutDir, cfg.BuildID, tt.wantApp, tt.wantOut, tt.wantID)
			}
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "appDir: [unclosed\n", "failed to parse config"},
		{"bad strategy", "buildId: uuid\n", "invalid buildId strategy"},
		{"bad debounce", "watch:\n  debounce: soon\n", "invalid watch.debounce"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			path := filepath.Join(t.TempDir(), FileName)
			writeFile(t, path, tt.content)

			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
