package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// oldSuffix marks installer executables that were replaced by a self-update.
const oldSuffix = ".old"

// RetireExecutable renames a running executable out of the way so a new copy
// can be written at its path. Windows allows renaming a running image but not
// overwriting it. Returns the new name.
func RetireExecutable(exePath string, now time.Time) (string, error) {
	retired := fmt.Sprintf("%s%s_%s", exePath, oldSuffix, now.Format("20060102150405"))
	if err := os.Rename(exePath, retired); err != nil {
		return "", fmt.Errorf("rename old installer: %w", err)
	}
	return retired, nil
}

// RestoreExecutable moves a retired executable back to exePath, replacing
// whatever a failed update left there.
func RestoreExecutable(retired, exePath string) error {
	if err := os.Remove(exePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove partial installer: %w", err)
	}
	if err := os.Rename(retired, exePath); err != nil {
		return fmt.Errorf("restore old installer: %w", err)
	}
	return nil
}

// CleanupRetiredExecutables deletes executables left behind by RetireExecutable
// in the directory of exePath. Deletion goes through deleteFn so files still
// mapped by an exiting process can be handed to a deferred delete.
// Returns the paths that were handed to deleteFn without error.
func CleanupRetiredExecutables(exePath string, deleteFn func(path string) error, log *Logger) []string {
	dir := filepath.Dir(exePath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warn("Could not scan %s for old installers: %v", dir, err)
		return nil
	}

	prefix := filepath.Base(exePath) + oldSuffix
	var removed []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := deleteFn(path); err != nil {
			log.Error("Failed to delete old installer %s: %v", entry.Name(), err)
			continue
		}
		log.Debug("Deleted old installer %s", entry.Name())
		removed = append(removed, path)
	}
	return removed
}
