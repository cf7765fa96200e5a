// Package config resolves, loads and saves marks settings.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// FileName is the settings file inside Dir.
const FileName = "config.yaml"

// Dir returns the marks configuration directory.
//
// Resolution:
//   - $MARKS_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/marks if set (respects XDG on any platform)
//   - %AppData%/marks on Windows
//   - ~/.config/marks on macOS and Linux
func Dir() string {
	if dir := os.Getenv("MARKS_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "marks")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "marks")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "marks")
}

// Path returns the default settings file path, or "" when no configuration
// directory can be resolved.
func Path() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, FileName)
}
