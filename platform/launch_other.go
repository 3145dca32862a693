//go:build !windows

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"syscall"
)

// Launch starts exePath in its own process group so the installer can exit
// while the program keeps running. The working directory is the executable's folder.
func Launch(exePath string, args ...string) error {
	cmd := exec.Command(exePath, args...)
	cmd.Dir = filepath.Dir(exePath)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", filepath.Base(exePath), err)
	}
	return cmd.Process.Release()
}
