package installer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Logger provides structured logging with file output, console echo and in-memory buffering.
// It is safe for concurrent use from multiple goroutines, and all methods accept a nil *Logger.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	path     string
	messages []string
	prefix   string
	console  io.Writer
	debug    bool
	listener func(level, msg string)
}

var levelColors = map[string]*color.Color{
	"DEBUG": color.New(color.FgHiBlack),
	"INFO":  color.New(color.FgCyan),
	"WARN":  color.New(color.FgYellow),
	"ERROR": color.New(color.FgRed, color.Bold),
	"STEP":  color.New(color.FgGreen),
}

// NewLogger creates a new Logger that writes to a timestamped file in the temp directory.
// The prefix is used in the filename: {prefix}-{timestamp}.log
//
// Example:
//
//	log, err := installer.NewLogger("appinstaller")
//	if err != nil {
//	    return err
//	}
//	defer log.Close()
//	log.Info("Starting installation")
func NewLogger(prefix string) (*Logger, error) {
	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("%s-%s.log", prefix, timestamp)
	logPath := filepath.Join(os.TempDir(), filename)

	f, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	l := &Logger{
		file:     f,
		path:     logPath,
		messages: make([]string, 0, 100),
		prefix:   prefix,
	}

	l.Info("=== %s Log ===", prefix)
	l.Info("Started: %s", time.Now().Format(time.RFC3339))
	l.Info("Log file: %s", logPath)

	return l, nil
}

// NewLoggerToFile creates a new Logger that appends to the specified file path.
// Parent directories are created as needed.
func NewLoggerToFile(logPath string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	l := &Logger{
		file:     f,
		path:     logPath,
		messages: make([]string, 0, 100),
	}
	l.Info("=== Log started: %s ===", time.Now().Format(time.RFC3339))

	return l, nil
}

// NewMemoryLogger creates a Logger that only keeps messages in memory.
func NewMemoryLogger() *Logger {
	return &Logger{messages: make([]string, 0, 100)}
}

// SetConsole echoes every subsequent message to w, colored by level.
// Pass nil to stop echoing.
func (l *Logger) SetConsole(w io.Writer) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.console = w
}

// SetListener calls fn with every subsequent message after it is recorded.
// fn runs outside the logger's lock, so it may be slow but must not block forever.
// Pass nil to remove the listener.
func (l *Logger) SetListener(fn func(level, msg string)) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.listener = fn
}

// SetDebug enables or disables DEBUG messages.
func (l *Logger) SetDebug(enabled bool) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = enabled
}

// Close closes the log file.
func (l *Logger) Close() {
	if l == nil || l.file == nil {
		return
	}
	l.Info("=== Log ended: %s ===", time.Now().Format(time.RFC3339))
	l.mu.Lock()
	defer l.mu.Unlock()
	l.file.Close()
	l.file = nil
}

// Path returns the path to the log file.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Content returns the full log content as a string.
// Useful for copying to the clipboard.
func (l *Logger) Content() string {
	if l == nil {
		return ""
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.messages, "\n")
}

// Debug logs a diagnostic message. It is dropped unless SetDebug(true) was called.
func (l *Logger) Debug(format string, args ...any) {
	l.log("DEBUG", format, args...)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...any) {
	l.log("INFO", format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	l.log("ERROR", format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.log("WARN", format, args...)
}

// Step logs a major milestone/step in the process.
func (l *Logger) Step(format string, args ...any) {
	l.log("STEP", format, args...)
}

func (l *Logger) log(level, format string, args ...any) {
	if l == nil {
		return
	}

	l.mu.Lock()
	if level == "DEBUG" && !l.debug {
		l.mu.Unlock()
		return
	}

	timestamp := time.Now().Format("15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("[%s] %s: %s", timestamp, level, msg)

	l.messages = append(l.messages, line)

	if l.file != nil {
		fmt.Fprintln(l.file, line)
		l.file.Sync()
	}

	if l.console != nil {
		c := levelColors[level]
		fmt.Fprintf(l.console, "%s %s\n", c.Sprintf("%-5s", level), msg)
	}
	listener := l.listener
	l.mu.Unlock()

	if listener != nil {
		listener(level, msg)
	}
}
