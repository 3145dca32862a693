// Package myapps installs and updates per-user applications from a network share.
//
// Each program is published as zip packages in its own folder on the share:
//
//	\\server\apps\MyTool\MyTool-v1.zip
//	\\server\apps\MyTool\MyTool-v2.zip
//
// Install picks the newest package, copies it to %LocalAppData%\MyApps,
// removes the previous installation, extracts the package into
// %LocalAppData%\MyApps\MyTool, writes a Start Menu shortcut and starts the
// program. Before that it checks the share for a newer build of the
// installer itself and swaps it in.
//
// # Basic Usage
//
//	log, err := installer.NewLogger("appinstaller")
//	if err != nil {
//	    return err
//	}
//	defer log.Close()
//
//	wf, err := myapps.New(
//	    myapps.WithSourceDir(`\\server\apps`),
//	    myapps.WithLogger(log),
//	)
//	if err != nil {
//	    return err
//	}
//	req, err := wf.Install("MyTool")
//
// Every step runs once, in order, and the first failure stops the run.
// Errors carry the failed step's name and one of the kinds ErrUsage,
// ErrNotFound, ErrAlreadyRunning, ErrIO or ErrArchive.
package myapps
