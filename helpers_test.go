package myapps

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/crafted-tech/myapps/installer"
	"github.com/crafted-tech/myapps/platform"
)

// fakeSystem records what the workflow asks of the operating system.
// Shortcuts are plain files holding the target path.
type fakeSystem struct {
	mu         sync.Mutex
	startMenu  string
	menuRoot   string
	running    map[string]bool
	runningErr error
	launchErr  error
	launched   []string
	shortcuts  map[string]platform.Shortcut
	scheduled  []string
	locked     bool
}

func newFakeSystem(startMenu string) *fakeSystem {
	return &fakeSystem{
		startMenu: startMenu,
		running:   map[string]bool{},
		shortcuts: map[string]platform.Shortcut{},
	}
}

func (f *fakeSystem) IsProcessRunning(exeName string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.runningErr != nil {
		return false, f.runningErr
	}
	return f.running[strings.ToLower(exeName)], nil
}

func (f *fakeSystem) StartMenuDir() (string, error) {
	if f.startMenu == "" {
		return "", errors.New("no start menu")
	}
	return f.startMenu, nil
}

func (f *fakeSystem) LegacyStartMenuDir() (string, error) {
	if f.menuRoot == "" {
		return "", errors.New("no start menu root")
	}
	return f.menuRoot, nil
}

func (f *fakeSystem) CreateShortcut(lnkPath string, s platform.Shortcut) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(lnkPath), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(lnkPath, []byte(s.Target), 0644); err != nil {
		return err
	}
	f.shortcuts[lnkPath] = s
	return nil
}

func (f *fakeSystem) ReadShortcutTarget(lnkPath string) (string, error) {
	data, err := os.ReadFile(lnkPath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (f *fakeSystem) Launch(exePath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.launchErr != nil {
		return f.launchErr
	}
	f.launched = append(f.launched, exePath)
	return nil
}

func (f *fakeSystem) ScheduleFileDelete(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled = append(f.scheduled, path)
	return os.Remove(path)
}

func (f *fakeSystem) AcquireSingleInstance(string) (func(), bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.locked {
		return nil, false
	}
	f.locked = true
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.locked = false
	}, true
}

var _ System = (*fakeSystem)(nil)

// testEnv is a share, an install root and a Start Menu under one temp dir.
type testEnv struct {
	source   string
	root     string
	menu     string
	menuRoot string
	sys      *fakeSystem
	now      time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		source:   filepath.Join(dir, "share"),
		root:     filepath.Join(dir, "LocalAppData", "MyApps"),
		menu:     filepath.Join(dir, "StartMenu", "Programs"),
		menuRoot: filepath.Join(dir, "StartMenu"),
		now:      time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	env.sys = newFakeSystem(env.menu)
	env.sys.menuRoot = env.menuRoot
	require.NoError(t, os.MkdirAll(env.source, 0755))
	return env
}

// workflow builds a Workflow on env. Self-update is off unless opts turn it on.
func (e *testEnv) workflow(t *testing.T, opts ...Option) *Workflow {
	t.Helper()
	base := []Option{
		WithSourceDir(e.source),
		WithInstallRoot(e.root),
		WithSystem(e.sys),
		WithSelfUpdate(false),
		WithClock(func() time.Time { return e.now }),
	}
	w, err := New(append(base, opts...)...)
	require.NoError(t, err)
	return w
}

// publish writes a zip package for program onto the share.
func (e *testEnv) publish(t *testing.T, program, name string, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(e.source, program)
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	writeZip(t, path, files)
	return path
}

func (e *testEnv) shortcut(program string) string {
	return filepath.Join(e.menu, installer.DisplayName(program)+platform.ShortcutExt)
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	zw := zip.NewWriter(f)
	for _, name := range names {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(files[name]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

// writeStoredZip creates an uncompressed single-entry zip so tests can
// corrupt the entry's bytes in place.
func writeStoredZip(t *testing.T, path, name, content string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Store})
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}

// readTree returns every regular file below dir keyed by slash path.
func readTree(t *testing.T, dir string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return out
}

func setModTime(t *testing.T, path string, mt time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, mt, mt))
}
