package installer

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidArchive marks errors caused by the archive itself (corrupt data,
// unsupported compression, entries escaping the destination) as opposed to
// errors writing the extracted files.
var ErrInvalidArchive = errors.New("invalid archive")

// ExtractZip unpacks the zip file at src into dest, creating dest if needed.
// onEntry, if not nil, is called with each entry name before it is written.
// Returns the number of files written.
func ExtractZip(src, dest string, onEntry func(name string)) (int, error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		if r != nil {
			r.Close()
		}
		if errors.Is(err, zip.ErrFormat) || errors.Is(err, zip.ErrAlgorithm) ||
			errors.Is(err, zip.ErrInsecurePath) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, fmt.Errorf("%w: %s: %v", ErrInvalidArchive, filepath.Base(src), err)
		}
		return 0, fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	if err := os.MkdirAll(dest, 0755); err != nil {
		return 0, fmt.Errorf("create directory %s: %w", dest, err)
	}

	count := 0
	for _, f := range r.File {
		target, err := entryPath(dest, f.Name)
		if err != nil {
			return count, err
		}
		if onEntry != nil {
			onEntry(f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return count, fmt.Errorf("create directory %s: %w", target, err)
			}
			continue
		}

		if err := extractFile(f, target); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

// VerifyZip reads every entry of the archive at src without writing anything,
// so checksum and path problems surface before an installation is touched.
func VerifyZip(src string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		if r != nil {
			r.Close()
		}
		return fmt.Errorf("%w: %s: %v", ErrInvalidArchive, filepath.Base(src), err)
	}
	defer r.Close()

	for _, f := range r.File {
		if _, err := entryPath(".", f.Name); err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("%w: open %s: %v", ErrInvalidArchive, f.Name, err)
		}
		_, err = io.Copy(io.Discard, rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("%w: read %s: %v", ErrInvalidArchive, f.Name, err)
		}
	}
	return nil
}

// entryPath resolves an entry name below dest, rejecting names that escape it.
func entryPath(dest, name string) (string, error) {
	rel := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(rel) || strings.HasPrefix(rel, string(filepath.Separator)) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.VolumeName(rel) != "" {
		return "", fmt.Errorf("%w: entry %q escapes destination", ErrInvalidArchive, name)
	}
	return filepath.Join(dest, rel), nil
}

func extractFile(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrInvalidArchive, f.Name, err)
	}
	defer rc.Close()

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", filepath.Dir(target), err)
	}

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}

	_, err = io.Copy(out, archiveReader{rc})
	if cerr := out.Close(); err == nil && cerr != nil {
		return fmt.Errorf("write %s: %w", target, cerr)
	}
	if err != nil {
		if errors.Is(err, ErrInvalidArchive) {
			return fmt.Errorf("extract %s: %w", f.Name, err)
		}
		return fmt.Errorf("write %s: %w", target, err)
	}
	return nil
}

// archiveReader tags read errors as ErrInvalidArchive so io.Copy failures can
// be told apart from write failures.
type archiveReader struct {
	r io.Reader
}

func (a archiveReader) Read(p []byte) (int, error) {
	n, err := a.r.Read(p)
	if err != nil && err != io.EOF {
		err = fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}
	return n, err
}
