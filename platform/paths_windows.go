//go:build windows

package platform

import (
	"golang.org/x/sys/windows"
)

// ShortcutExt is the file extension of shortcuts written by CreateShortcut.
const ShortcutExt = ".lnk"

// UserStartMenuPath returns the path to the current user's Start Menu Programs folder.
// Example: C:\Users\<user>\AppData\Roaming\Microsoft\Windows\Start Menu\Programs
func UserStartMenuPath() (string, error) {
	return windows.KnownFolderPath(windows.FOLDERID_Programs, 0)
}

// UserStartMenuRootPath returns the current user's Start Menu folder itself,
// one level above Programs.
// Example: C:\Users\<user>\AppData\Roaming\Microsoft\Windows\Start Menu
func UserStartMenuRootPath() (string, error) {
	return windows.KnownFolderPath(windows.FOLDERID_StartMenu, 0)
}

// LocalAppDataPath returns the path to the current user's local app data folder.
// Example: C:\Users\<user>\AppData\Local
func LocalAppDataPath() (string, error) {
	return windows.KnownFolderPath(windows.FOLDERID_LocalAppData, 0)
}

// UserCachePath returns the directory used for lock files.
func UserCachePath() (string, error) {
	return LocalAppDataPath()
}
