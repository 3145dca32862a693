//go:build !windows

package platform

import (
	"os"
	"path/filepath"
	"strconv"
	"syscall"
)

// AcquireSingleInstance tries to acquire a file lock to prevent multiple instances.
// The name should be unique to the application (e.g., "MyApps.AppInstaller").
// Returns a release function and true if the lock was acquired.
// Returns nil and false if another instance already holds the lock. When the
// lock file cannot be opened at all the run goes ahead without a lock.
func AcquireSingleInstance(name string) (release func(), ok bool) {
	cacheDir, err := UserCachePath()
	if err != nil {
		cacheDir = os.TempDir()
	}
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		cacheDir = os.TempDir()
	}

	lockPath := filepath.Join(cacheDir, name+".lock")

	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return func() {}, true
	}

	// Non-blocking: a held lock means another installer is running.
	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		file.Close()
		return nil, false
	}

	_ = file.Truncate(0)
	_, _ = file.WriteString(strconv.Itoa(os.Getpid()))

	return func() {
		_ = syscall.Flock(int(file.Fd()), syscall.LOCK_UN)
		file.Close()
	}, true
}
