package installer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_NilIsSafe(t *testing.T) {
	var log *Logger
	assert.NotPanics(t, func() {
		log.Info("hello %d", 1)
		log.Debug("hidden")
		log.SetDebug(true)
		log.SetConsole(nil)
		log.SetListener(nil)
		log.Close()
	})
	assert.Empty(t, log.Content())
	assert.Empty(t, log.Path())
}

func TestLogger_DebugIsGated(t *testing.T) {
	log := NewMemoryLogger()
	log.Debug("first")
	log.SetDebug(true)
	log.Debug("second")

	assert.NotContains(t, log.Content(), "first")
	assert.Contains(t, log.Content(), "DEBUG: second")
}

func TestLogger_ConsoleEcho(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	log := NewMemoryLogger()
	log.SetConsole(&buf)
	log.Warn("low disk %s", "space")
	log.SetConsole(nil)
	log.Info("not echoed")

	assert.Equal(t, "WARN  low disk space\n", buf.String())
}

func TestLogger_Listener(t *testing.T) {
	type entry struct{ level, msg string }
	var got []entry

	log := NewMemoryLogger()
	log.SetListener(func(level, msg string) {
		got = append(got, entry{level, msg})
		// The lock is released before the listener runs.
		assert.NotEmpty(t, log.Content())
	})
	log.Info("copied %d files", 3)
	log.Debug("hidden")
	log.SetListener(nil)
	log.Error("not forwarded")

	assert.Equal(t, []entry{{"INFO", "copied 3 files"}}, got)
}

func TestNewLoggerToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run.log")

	log, err := NewLoggerToFile(path)
	require.NoError(t, err)
	log.Error("it broke")
	log.Close()

	assert.Equal(t, path, log.Path())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ERROR: it broke")
	assert.Contains(t, string(data), "=== Log ended")
}
