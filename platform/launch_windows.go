//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/windows"
)

// Launch starts exePath detached from the installer so the installer can exit
// while the program keeps running. The working directory is the executable's folder.
func Launch(exePath string, args ...string) error {
	cmd := exec.Command(exePath, args...)
	cmd.Dir = filepath.Dir(exePath)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP | windows.DETACHED_PROCESS,
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", filepath.Base(exePath), err)
	}
	return cmd.Process.Release()
}
