package myapps

import (
	"github.com/crafted-tech/myapps/platform"
)

// System is the part of the operating system the workflow touches besides
// plain file I/O. Tests substitute a fake.
type System interface {
	IsProcessRunning(exeName string) (bool, error)
	StartMenuDir() (string, error)
	LegacyStartMenuDir() (string, error)
	CreateShortcut(lnkPath string, s platform.Shortcut) error
	ReadShortcutTarget(lnkPath string) (string, error)
	Launch(exePath string) error
	ScheduleFileDelete(path string) error
	AcquireSingleInstance(name string) (release func(), ok bool)
}

// hostSystem implements System with the platform package.
type hostSystem struct{}

var _ System = hostSystem{}

func (hostSystem) IsProcessRunning(exeName string) (bool, error) {
	return platform.IsProcessRunning(exeName)
}

func (hostSystem) StartMenuDir() (string, error) {
	return platform.UserStartMenuPath()
}

func (hostSystem) LegacyStartMenuDir() (string, error) {
	return platform.UserStartMenuRootPath()
}

func (hostSystem) CreateShortcut(lnkPath string, s platform.Shortcut) error {
	return platform.CreateShortcut(lnkPath, s)
}

func (hostSystem) ReadShortcutTarget(lnkPath string) (string, error) {
	return platform.ReadShortcutTarget(lnkPath)
}

func (hostSystem) Launch(exePath string) error {
	return platform.Launch(exePath)
}

func (hostSystem) ScheduleFileDelete(path string) error {
	return platform.ScheduleFileDelete(path)
}

func (hostSystem) AcquireSingleInstance(name string) (func(), bool) {
	return platform.AcquireSingleInstance(name)
}
