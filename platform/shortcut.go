package platform

import (
	"os"
)

// Shortcut describes a Start Menu entry.
type Shortcut struct {
	Target      string // Path to the target executable
	Arguments   string // Command-line arguments (optional)
	WorkingDir  string // Working directory (optional, defaults to target's directory)
	Description string // Tooltip description (optional)
	IconPath    string // Path to icon file (optional, defaults to target)
	IconIndex   int    // Icon index within the icon file (optional)
}

// DeleteShortcut removes a shortcut file. A missing file is not an error.
func DeleteShortcut(lnkPath string) error {
	err := os.Remove(lnkPath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
