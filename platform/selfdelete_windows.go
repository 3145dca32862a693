//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// ScheduleFileDelete arranges for the specified file to be deleted
// after it is no longer in use. Uses a detached cmd.exe helper that
// repeatedly attempts to delete the file until it succeeds.
//
// The installer uses this for renamed copies of itself that may still be
// mapped by a process that has not exited yet.
func ScheduleFileDelete(filePath string) error {
	script := fmt.Sprintf(
		`:loop & del /f /q "%[1]s" 2>nul & if exist "%[1]s" ( timeout /t 1 /nobreak >nul & goto loop )`,
		filePath,
	)

	cmd := exec.Command("cmd.exe", "/C", script)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP | windows.DETACHED_PROCESS,
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start delete helper: %w", err)
	}

	return nil
}
