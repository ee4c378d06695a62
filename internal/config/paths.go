package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// ReportsFolder is the folder created under the documents directory.
const ReportsFolder = "KAMREEN"

// DefaultDataDir is $XDG_DATA_HOME/kamreen, or ~/.local/share/kamreen.
// KAMREEN_DATA_DIR overrides it through the data_dir key.
func DefaultDataDir() string {
	if base := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); base != "" {
		return filepath.Join(base, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".", AppName)
	}
	return filepath.Join(home, ".local", "share", AppName)
}

// DefaultReportsDir is <documents>/KAMREEN. KAMREEN_REPORTS_DIR overrides it
// through the reports_dir key.
func DefaultReportsDir() string {
	return filepath.Join(documentsDir(), ReportsFolder)
}

// documentsDir resolves the user's documents folder the way xdg-user-dirs does:
// the environment first, then user-dirs.dirs, then ~/Documents.
func documentsDir() string {
	if base := strings.TrimSpace(os.Getenv("XDG_DOCUMENTS_DIR")); base != "" {
		return expandHome(base)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	configHome := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME"))
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	if dir := readUserDir(filepath.Join(configHome, "user-dirs.dirs"), "XDG_DOCUMENTS_DIR"); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(home, "Documents")
}

// readUserDir returns the value of key in a user-dirs.dirs file, or "" when
// the file or the key is missing.
func readUserDir(path, key string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		name, value, ok := strings.Cut(line, "=")
		if !ok || strings.TrimSpace(name) != key {
			continue
		}
		return strings.Trim(strings.TrimSpace(value), `"`)
	}
	return ""
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "$HOME") && !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, "~") {
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Join(home, strings.TrimPrefix(path, "$HOME"))
}
