package myapps

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/crafted-tech/myapps/installer"
)

// ListPackages returns the zip packages in dir, newest first.
//
// Packages whose file names carry a version token come first, ordered by
// version. Packages with equal or no version are ordered by modification
// time, then by name, so the result does not depend on directory order.
func ListPackages(dir string) ([]Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, withKind(ErrNotFound, fmt.Errorf("source directory %s not reachable: %w", dir, err))
	}

	var pkgs []Package
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.EqualFold(filepath.Ext(entry.Name()), ".zip") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		pkgs = append(pkgs, Package{
			Path:    filepath.Join(dir, entry.Name()),
			Name:    entry.Name(),
			ModTime: info.ModTime(),
			Version: installer.ParseVersionToken(entry.Name()),
		})
	}

	sort.SliceStable(pkgs, func(i, j int) bool {
		return newer(pkgs[i], pkgs[j])
	})
	return pkgs, nil
}

// NewestPackage returns the newest zip package in dir.
func NewestPackage(dir string) (Package, error) {
	pkgs, err := ListPackages(dir)
	if err != nil {
		return Package{}, err
	}
	if len(pkgs) == 0 {
		return Package{}, withKind(ErrNotFound, fmt.Errorf("no .zip files found in %s", dir))
	}
	return pkgs[0], nil
}

// newer reports whether a should be installed in preference to b.
func newer(a, b Package) bool {
	switch {
	case a.Version != nil && b.Version == nil:
		return true
	case a.Version == nil && b.Version != nil:
		return false
	case a.Version != nil && b.Version != nil:
		if c := a.Version.Compare(b.Version); c != 0 {
			return c > 0
		}
	}
	if !a.ModTime.Equal(b.ModTime) {
		return a.ModTime.After(b.ModTime)
	}
	return a.Name > b.Name
}
