// Package gui shows the installer's progress window.
//
// The window is a single webframe page: a progress bar for the running step,
// a bar for the package copy and a live view of the run log. When an install
// fails the same window switches to a log review with a Copy button.
//
//	w, err := gui.New("Installing MyTool")
//	if err != nil {
//	    return err // fall back to console output
//	}
//	defer w.Close()
//
//	err = w.Run(func(r *gui.Reporter) error {
//	    _, err := wf.Install("MyTool")
//	    return err
//	})
//
// Windows only. On other platforms New returns ErrUnsupported.
package gui
