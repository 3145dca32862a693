//go:build !windows

package platform

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CreateShortcut writes a freedesktop.org desktop entry at lnkPath.
// An existing entry at lnkPath is replaced.
func CreateShortcut(lnkPath string, s Shortcut) error {
	if _, err := os.Stat(s.Target); err != nil {
		return fmt.Errorf("target not found: %s", s.Target)
	}

	parentDir := filepath.Dir(lnkPath)
	if err := os.MkdirAll(parentDir, 0755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", parentDir, err)
	}

	workingDir := s.WorkingDir
	if workingDir == "" {
		workingDir = filepath.Dir(s.Target)
	}
	iconPath := s.IconPath
	if iconPath == "" {
		iconPath = s.Target
	}

	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	fmt.Fprintf(&b, "Name=%s\n", strings.TrimSuffix(filepath.Base(lnkPath), filepath.Ext(lnkPath)))
	exec := quoteExec(s.Target)
	if s.Arguments != "" {
		exec += " " + s.Arguments
	}
	fmt.Fprintf(&b, "Exec=%s\n", exec)
	fmt.Fprintf(&b, "Path=%s\n", workingDir)
	fmt.Fprintf(&b, "Icon=%s\n", iconPath)
	if s.Description != "" {
		fmt.Fprintf(&b, "Comment=%s\n", s.Description)
	}

	if err := os.WriteFile(lnkPath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("cannot save shortcut: %w", err)
	}
	return nil
}

// ReadShortcutTarget returns the executable named by the Exec key of a desktop entry.
func ReadShortcutTarget(lnkPath string) (string, error) {
	f, err := os.Open(lnkPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		value, ok := strings.CutPrefix(line, "Exec=")
		if !ok {
			continue
		}
		return unquoteExec(value), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", errors.New("shortcut has no Exec entry")
}

func quoteExec(path string) string {
	return `"` + strings.ReplaceAll(path, `"`, `\"`) + `"`
}

// unquoteExec returns the first word of an Exec value.
func unquoteExec(value string) string {
	value = strings.TrimSpace(value)
	if rest, ok := strings.CutPrefix(value, `"`); ok {
		var b strings.Builder
		for i := 0; i < len(rest); i++ {
			c := rest[i]
			if c == '\\' && i+1 < len(rest) {
				i++
				b.WriteByte(rest[i])
				continue
			}
			if c == '"' {
				break
			}
			b.WriteByte(c)
		}
		return b.String()
	}
	if i := strings.IndexByte(value, ' '); i >= 0 {
		return value[:i]
	}
	return value
}
