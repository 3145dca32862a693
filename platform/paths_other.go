//go:build !windows

package platform

import (
	"os"
	"path/filepath"
)

// ShortcutExt is the file extension of shortcuts written by CreateShortcut.
const ShortcutExt = ".desktop"

// LocalAppDataPath returns the path to the current user's data directory.
// This is $XDG_DATA_HOME or ~/.local/share by default.
func LocalAppDataPath() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share"), nil
}

// UserStartMenuPath returns the path to the user's applications directory.
// This is where .desktop files are stored for the current user.
func UserStartMenuPath() (string, error) {
	dataPath, err := LocalAppDataPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataPath, "applications"), nil
}

// UserStartMenuRootPath returns the applications directory; desktop entries
// have no separate menu root.
func UserStartMenuRootPath() (string, error) {
	return UserStartMenuPath()
}

// UserCachePath returns the path to the current user's cache directory.
// This is $XDG_CACHE_HOME or ~/.cache by default.
func UserCachePath() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache"), nil
}
