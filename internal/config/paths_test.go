package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultDataDirHonorsXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_DATA_HOME", base)
	if got := DefaultDataDir(); got != filepath.Join(base, AppName) {
		t.Fatalf("DefaultDataDir() = %q", got)
	}
}

func TestDefaultDataDirFallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", "")
	if got := DefaultDataDir(); got != filepath.Join(home, ".local", "share", AppName) {
		t.Fatalf("DefaultDataDir() = %q", got)
	}
}

func TestDefaultReportsDirFromEnv(t *testing.T) {
	docs := t.TempDir()
	t.Setenv("XDG_DOCUMENTS_DIR", docs)
	if got := DefaultReportsDir(); got != filepath.Join(docs, ReportsFolder) {
		t.Fatalf("DefaultReportsDir() = %q", got)
	}
}

func TestDefaultReportsDirFromUserDirs(t *testing.T) {
	home := t.TempDir()
	configHome := filepath.Join(home, "cfg")
	t.Setenv("HOME", home)
	t.Setenv("XDG_DOCUMENTS_DIR", "")
	t.Setenv("XDG_CONFIG_HOME", configHome)
	if err := os.MkdirAll(configHome, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	body := "# written by xdg-user-dirs-update\nXDG_DESKTOP_DIR=\"$HOME/Desktop\"\nXDG_DOCUMENTS_DIR=\"$HOME/Papers\"\n"
	if err := os.WriteFile(filepath.Join(configHome, "user-dirs.dirs"), []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if got := DefaultReportsDir(); got != filepath.Join(home, "Papers", ReportsFolder) {
		t.Fatalf("DefaultReportsDir() = %q", got)
	}
}

func TestDefaultReportsDirWithoutUserDirs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DOCUMENTS_DIR", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "missing"))
	if got := DefaultReportsDir(); got != filepath.Join(home, "Documents", ReportsFolder) {
		t.Fatalf("DefaultReportsDir() = %q", got)
	}
}

func TestReadUserDirSkipsComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user-dirs.dirs")
	body := "#XDG_DOCUMENTS_DIR=\"/wrong\"\nXDG_DOCUMENTS_DIR=\"/srv/docs\"\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if got := readUserDir(path, "XDG_DOCUMENTS_DIR"); got != "/srv/docs" {
		t.Fatalf("readUserDir() = %q", got)
	}
	if got := readUserDir(path, "XDG_MUSIC_DIR"); got != "" {
		t.Fatalf("expected empty for missing key, got %q", got)
	}
	if got := readUserDir(filepath.Join(t.TempDir(), "absent"), "XDG_DOCUMENTS_DIR"); got != "" {
		t.Fatalf("expected empty for missing file, got %q", got)
	}
}

func TestLoadReportsDirOverride(t *testing.T) {
	dir := t.TempDir()
	reports := filepath.Join(dir, "reports")
	t.Setenv("KAMREEN_DATA_DIR", dir)
	t.Setenv("KAMREEN_REPORTS_DIR", reports)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ReportsDir != reports {
		t.Fatalf("ReportsDir = %q", cfg.ReportsDir)
	}
}
