// Package platform wraps the operating system calls the installer needs.
//
// Windows is the production target. The non-Windows builds exist so the
// workflow can be developed and tested on other machines; they map each
// concept onto the closest freedesktop equivalent.
//
// # Features
//
//   - Paths: local app data and the per-user Start Menu folder
//   - Shortcuts: create, read back and delete .lnk files
//   - Process: find processes by executable name
//   - Launch: start an installed program detached from the installer
//   - Single Instance: refuse a second concurrent installer run
//   - Deferred delete: remove files that are still in use once released
//   - Clipboard: copy the run log for support requests
//
// # Example Usage
//
//	release, ok := platform.AcquireSingleInstance("MyApps.AppInstaller")
//	if !ok {
//	    return errors.New("another installer is running")
//	}
//	defer release()
//
//	startMenu, err := platform.UserStartMenuPath()
//	if err != nil {
//	    return err
//	}
//	err = platform.CreateShortcut(filepath.Join(startMenu, "My Tool.lnk"), platform.Shortcut{
//	    Target: exePath,
//	})
package platform
