package gui

import (
	"encoding/json"
	"sync"
)

// Reporter feeds install progress into the window. Its methods match the
// callbacks the install workflow and logger accept, and are safe to call
// from any goroutine.
type Reporter struct {
	window *Window

	mu          sync.Mutex
	lastName    string
	lastPercent int
}

// Update moves the step progress bar. It satisfies installer.Progress.
func (r *Reporter) Update(progress float64, status string) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	r.window.eval(`window.updateProgress(` + formatFloat(progress) + `, ` + jsonString(status) + `);`)
}

// Transfer moves the package copy bar. Calls that don't change the whole
// percentage are dropped.
func (r *Reporter) Transfer(name string, copied, total int64) {
	if total <= 0 {
		return
	}
	percent := int(copied * 100 / total)

	r.mu.Lock()
	if name == r.lastName && percent == r.lastPercent {
		r.mu.Unlock()
		return
	}
	r.lastName, r.lastPercent = name, percent
	r.mu.Unlock()

	r.window.eval(`window.updateTransfer(` + jsonString(name) + `, ` + formatFloat(float64(percent)) + `);`)
}

// LogLine appends a log message to the window's log view.
func (r *Reporter) LogLine(level, msg string) {
	r.window.eval(`window.appendLog(` + jsonString(level) + `, ` + jsonString(msg) + `);`)
}

func formatFloat(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
