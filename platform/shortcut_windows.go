//go:build windows

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// CreateShortcut creates a Windows shortcut (.lnk file) at the specified path.
// An existing shortcut at lnkPath is replaced.
func CreateShortcut(lnkPath string, s Shortcut) error {
	if _, err := os.Stat(s.Target); err != nil {
		return fmt.Errorf("target not found: %s", s.Target)
	}

	parentDir := filepath.Dir(lnkPath)
	if err := os.MkdirAll(parentDir, 0755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", parentDir, err)
	}
	if err := DeleteShortcut(lnkPath); err != nil {
		return fmt.Errorf("remove existing shortcut: %w", err)
	}

	return withShell(func(wshell *ole.IDispatch) error {
		return saveShortcut(wshell, lnkPath, s)
	})
}

// ReadShortcutTarget returns the target path stored in an existing shortcut.
func ReadShortcutTarget(lnkPath string) (string, error) {
	if _, err := os.Stat(lnkPath); err != nil {
		return "", err
	}

	var target string
	err := withShell(func(wshell *ole.IDispatch) error {
		shortcutVariant, err := oleutil.CallMethod(wshell, "CreateShortcut", lnkPath)
		if err != nil {
			return fmt.Errorf("cannot open shortcut: %s", oleErrorString(err))
		}
		shortcut := shortcutVariant.ToIDispatch()
		defer shortcut.Release()

		v, err := oleutil.GetProperty(shortcut, "TargetPath")
		if err != nil {
			return fmt.Errorf("cannot read target path: %s", oleErrorString(err))
		}
		target = v.ToString()
		return nil
	})
	return target, err
}

// withShell runs fn with a WScript.Shell dispatch object on a COM-initialized thread.
func withShell(fn func(wshell *ole.IDispatch) error) error {
	// COM is thread-bound
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		if oleErr, ok := err.(*ole.OleError); ok {
			code := oleErr.Code()
			if code != 0 && code != 1 { // S_OK=0, S_FALSE=1
				return fmt.Errorf("COM initialization failed: %s", oleErrorString(err))
			}
		}
	}
	defer ole.CoUninitialize()

	oleShellObject, err := oleutil.CreateObject("WScript.Shell")
	if err != nil {
		return fmt.Errorf("cannot create WScript.Shell object: %s", oleErrorString(err))
	}
	defer oleShellObject.Release()

	wshell, err := oleShellObject.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return fmt.Errorf("cannot get shell interface: %s", oleErrorString(err))
	}
	defer wshell.Release()

	return fn(wshell)
}

func saveShortcut(wshell *ole.IDispatch, lnkPath string, s Shortcut) error {
	shortcutVariant, err := oleutil.CallMethod(wshell, "CreateShortcut", lnkPath)
	if err != nil {
		return fmt.Errorf("cannot create shortcut object: %s", oleErrorString(err))
	}
	shortcut := shortcutVariant.ToIDispatch()
	defer shortcut.Release()

	if _, err := oleutil.PutProperty(shortcut, "TargetPath", s.Target); err != nil {
		return fmt.Errorf("cannot set target path: %s", oleErrorString(err))
	}

	if s.Arguments != "" {
		if _, err := oleutil.PutProperty(shortcut, "Arguments", s.Arguments); err != nil {
			return fmt.Errorf("cannot set arguments: %s", oleErrorString(err))
		}
	}

	workingDir := s.WorkingDir
	if workingDir == "" {
		workingDir = filepath.Dir(s.Target)
	}
	if _, err := oleutil.PutProperty(shortcut, "WorkingDirectory", workingDir); err != nil {
		return fmt.Errorf("cannot set working directory: %s", oleErrorString(err))
	}

	if s.Description != "" {
		if _, err := oleutil.PutProperty(shortcut, "Description", s.Description); err != nil {
			return fmt.Errorf("cannot set description: %s", oleErrorString(err))
		}
	}

	iconPath := s.IconPath
	if iconPath == "" {
		iconPath = s.Target
	}
	iconLocation := fmt.Sprintf("%s,%d", iconPath, s.IconIndex)
	if _, err := oleutil.PutProperty(shortcut, "IconLocation", iconLocation); err != nil {
		return fmt.Errorf("cannot set icon: %s", oleErrorString(err))
	}

	if _, err := oleutil.CallMethod(shortcut, "Save"); err != nil {
		return fmt.Errorf("cannot save shortcut: %s", oleErrorString(err))
	}

	return nil
}

// oleErrorString extracts a meaningful error message from OLE errors.
func oleErrorString(err error) string {
	if err == nil {
		return "unknown error"
	}
	if oleErr, ok := err.(*ole.OleError); ok {
		return fmt.Sprintf("%s (HRESULT: 0x%08X)", oleErr.Error(), uint32(oleErr.Code()))
	}
	return err.Error()
}
