//go:build windows

package platform

import (
	"golang.org/x/sys/windows"
)

// AcquireSingleInstance tries to acquire a named mutex to prevent multiple instances.
// The name should be unique to the application (e.g., "MyApps.AppInstaller").
// Returns a release function and true if the lock was acquired.
// Returns nil and false if another instance already holds the lock.
func AcquireSingleInstance(name string) (release func(), ok bool) {
	// Local\ scopes the mutex to the user's session; installs are per-user.
	mutexName, _ := windows.UTF16PtrFromString("Local\\" + name)

	handle, err := windows.CreateMutex(nil, false, mutexName)
	if err != nil {
		if err == windows.ERROR_ALREADY_EXISTS {
			if handle != 0 {
				windows.CloseHandle(handle)
			}
			return nil, false
		}
		// Other errors - proceed anyway (fail open)
		return func() {}, true
	}

	return func() { windows.CloseHandle(handle) }, true
}
