package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ProjectDir marks a directory whose dialogs use their own settings.
	ProjectDir = ".modalhost"
	// FileName is the settings file inside ProjectDir or the user config
	// directory.
	FileName = "config.json"
	appName  = "modalhost"
)

// EnvConfig names a settings file to use instead of searching for one.
const EnvConfig = "MODALHOST_CONFIG"

// userConfigDir is swapped in tests.
var userConfigDir = os.UserConfigDir

// Locate picks the settings file for a command run from dir:
//  1. explicit, from the --config flag
//  2. $MODALHOST_CONFIG
//  3. the nearest project: dir or a parent holding .modalhost/, not looking
//     past the root of the enclosing repository
//  4. modalhost/config.json in the user config directory
//
// Relative paths are taken relative to dir. The file need not exist yet.
func Locate(explicit, dir string) (string, error) {
	if explicit == "" {
		explicit = os.Getenv(EnvConfig)
	}
	if explicit != "" {
		if !filepath.IsAbs(explicit) {
			explicit = filepath.Join(dir, explicit)
		}
		return filepath.Clean(explicit), nil
	}

	if project, ok := findProject(dir); ok {
		return filepath.Join(project, ProjectDir, FileName), nil
	}

	base, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf("no %s directory found and no user config directory: %w", ProjectDir, err)
	}
	return filepath.Join(base, appName, FileName), nil
}

// findProject walks up from dir to the first directory holding ProjectDir.
// A directory with a .git entry ends the walk, so settings never leak in
// from outside a repository.
func findProject(dir string) (string, bool) {
	if dir == "" {
		return "", false
	}
	dir = filepath.Clean(dir)
	for {
		if isDir(filepath.Join(dir, ProjectDir)) {
			return dir, true
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil || !errors.Is(err, os.ErrNotExist) {
			return "", false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
