//go:build !windows

package platform

import (
	"os"
)

// ScheduleFileDelete schedules a file for deletion.
// On non-Windows platforms a file in use can be unlinked, so this deletes directly.
func ScheduleFileDelete(filePath string) error {
	err := os.Remove(filePath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
