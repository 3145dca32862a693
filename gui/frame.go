package gui

import "errors"

// ErrUnsupported is returned by New where no webview is available.
var ErrUnsupported = errors.New("progress window is not supported on this platform")

// frame is the part of a webframe window the installer drives.
type frame interface {
	LoadHTML(html string)
	Show()
	Run()
	Quit()
	Destroy()
	EvaluateScript(script string)
	IsDarkMode() bool
}

// message is what the page posts through window.external.invoke.
type message struct {
	Type   string `json:"type"`
	Button string `json:"button"`
}
