package installer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoExecutable is returned by FindExecutable when a directory holds no .exe file.
var ErrNoExecutable = errors.New("no executable found")

// copyBufferSize matches the chunk size progress is reported at.
const copyBufferSize = 64 * 1024

// RemoveDir removes path recursively. It reports whether anything was there to remove.
// A partial removal is returned as an error.
func RemoveDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return false, fmt.Errorf("%s is not a directory", path)
	}
	if err := os.RemoveAll(path); err != nil {
		return true, fmt.Errorf("remove directory %s: %w", path, err)
	}
	return true, nil
}

// CopyFileWithProgress copies src to dst and calls onProgress after every chunk
// with the bytes copied so far and the source size. onProgress may be nil.
// On failure the partially written dst is removed (best effort).
func CopyFileWithProgress(src, dst string, onProgress func(copied, total int64)) (err error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	dstFile, err := os.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	defer func() {
		if cerr := dstFile.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close destination: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	total := srcInfo.Size()
	var copied int64
	buf := make([]byte, copyBufferSize)
	for {
		n, rerr := srcFile.Read(buf)
		if n > 0 {
			if _, werr := dstFile.Write(buf[:n]); werr != nil {
				return fmt.Errorf("copy content: %w", werr)
			}
			copied += int64(n)
			if onProgress != nil {
				onProgress(copied, total)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return fmt.Errorf("copy content: %w", rerr)
		}
	}

	return nil
}

// FindExecutable returns the program's executable in the top level of dir.
// <program>.exe is preferred; otherwise the first .exe in name order is used.
func FindExecutable(dir, program string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", dir, err)
	}

	var candidates []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), ".exe") {
			continue
		}
		if strings.EqualFold(strings.TrimSuffix(name, filepath.Ext(name)), program) {
			return filepath.Join(dir, name), nil
		}
		candidates = append(candidates, name)
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoExecutable, dir)
	}
	sort.Strings(candidates)
	return filepath.Join(dir, candidates[0]), nil
}

// WriteVersionFile records the installed version of a program at path.
func WriteVersionFile(path, version string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}
	return os.WriteFile(path, []byte(version), 0644)
}

// ReadVersionFile reads the version from a version file.
// Returns empty string if the file doesn't exist.
func ReadVersionFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// FileExists returns true if the file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DirExists returns true if the directory exists.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
