package gui

import (
	"encoding/json"
	"sync"
	"sync/atomic"
)

// Button names posted by the page.
const (
	buttonCopy  = "copy"
	buttonClose = "close"
)

// Window is the installer's progress window.
type Window struct {
	frame      frame
	title      string
	darkMode   bool
	responseCh chan message
	mu         sync.Mutex
	quitOnMsg  bool // Whether to quit the event loop when a message is received

	// Set once the user closes the window; scripts are no longer sent.
	closed atomic.Bool
}

// New creates a hidden progress window titled title.
func New(title string) (*Window, error) {
	w := &Window{
		title:      title,
		responseCh: make(chan message, 1),
	}
	f, err := newFrame(title, w.handleMessage, w.handleClose)
	if err != nil {
		return nil, err
	}
	w.attach(f)
	return w, nil
}

func (w *Window) attach(f frame) {
	w.frame = f
	w.darkMode = f.IsDarkMode()
}

func (w *Window) handleMessage(raw string) {
	var msg message
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		return
	}
	if msg.Type == "page_ready" {
		return
	}
	w.post(msg)
}

func (w *Window) handleClose() {
	w.post(message{Type: "window_close", Button: buttonClose})
}

func (w *Window) post(msg message) {
	select {
	case w.responseCh <- msg:
		w.mu.Lock()
		shouldQuit := w.quitOnMsg
		w.mu.Unlock()
		if shouldQuit {
			w.frame.Quit()
		}
	default:
	}
}

func (w *Window) setQuitOnMsg(v bool) {
	w.mu.Lock()
	w.quitOnMsg = v
	w.mu.Unlock()
}

// take returns a pending message, if any.
func (w *Window) take() (message, bool) {
	select {
	case msg := <-w.responseCh:
		return msg, true
	default:
		return message{}, false
	}
}

// Run shows the progress page and runs work on its own goroutine, pumping the
// window's event loop until work returns. Closing the window hides progress
// but does not stop work; Run still waits for it and returns its error.
func (w *Window) Run(work func(r *Reporter) error) error {
	w.frame.LoadHTML(renderProgressPage(w.title, w.darkMode))
	w.frame.Show()

	r := &Reporter{window: w, lastPercent: -1}
	done := make(chan error, 1)
	go func() {
		done <- work(r)
		w.frame.Quit()
	}()

	for {
		w.setQuitOnMsg(true)
		w.frame.Run()
		w.setQuitOnMsg(false)

		select {
		case err := <-done:
			return err
		default:
		}
		if msg, ok := w.take(); ok && msg.Type == "window_close" {
			w.closed.Store(true)
			return <-done
		}
	}
}

// ShowLog replaces the page with a read-only view of content and waits until
// the user closes it. onCopy runs each time Copy is pressed; the view stays open.
// Nothing is shown if the user already closed the window.
func (w *Window) ShowLog(title, content string, onCopy func()) {
	if w.closed.Load() {
		return
	}
	w.frame.LoadHTML(renderLogPage(title, content, w.darkMode))
	w.frame.Show()

	for {
		w.setQuitOnMsg(true)
		w.frame.Run()
		w.setQuitOnMsg(false)

		msg, ok := w.take()
		if !ok {
			return
		}
		switch msg.Button {
		case buttonCopy:
			if onCopy != nil {
				onCopy()
			}
			w.eval(`window.copied();`)
			continue
		default:
			if msg.Type == "window_close" {
				w.closed.Store(true)
			}
			return
		}
	}
}

// Close destroys the window.
func (w *Window) Close() {
	if w.frame != nil {
		w.frame.Destroy()
	}
}

func (w *Window) eval(script string) {
	if w.closed.Load() {
		return
	}
	w.frame.EvaluateScript(script)
}
