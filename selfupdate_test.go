package myapps

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelfUpdate_InstallsMissingInstaller(t *testing.T) {
	env := newTestEnv(t)
	env.publish(t, "MyTool", "MyTool.zip", map[string]string{"MyTool.exe": "x"})
	env.publish(t, DefaultInstallerName, "AppInstaller-1.0.zip", map[string]string{"AppInstaller.exe": "installer 1.0"})

	running := filepath.Join(t.TempDir(), "AppInstaller.exe")
	require.NoError(t, os.WriteFile(running, []byte("dev build"), 0755))

	w := env.workflow(t, WithSelfUpdate(true), WithInstaller("", "1.0", running))
	_, err := w.Install("MyTool")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"AppInstaller.exe": "installer 1.0"},
		readTree(t, filepath.Join(env.root, DefaultInstallerName)))
	assert.FileExists(t, running)
	assert.NoFileExists(t, filepath.Join(env.root, "AppInstaller-1.0.zip"))
}

func TestSelfUpdate_ReplacesOutdatedInstaller(t *testing.T) {
	env := newTestEnv(t)
	env.publish(t, "MyTool", "MyTool.zip", map[string]string{"MyTool.exe": "x"})
	env.publish(t, DefaultInstallerName, "AppInstaller-1.1.zip", map[string]string{"AppInstaller.exe": "installer 1.1"})

	localDir := filepath.Join(env.root, DefaultInstallerName)
	running := filepath.Join(localDir, "AppInstaller.exe")
	require.NoError(t, os.MkdirAll(localDir, 0755))
	require.NoError(t, os.WriteFile(running, []byte("installer 1.0"), 0755))

	w := env.workflow(t, WithSelfUpdate(true), WithInstaller("", "1.0", running))
	_, err := w.Install("MyTool")
	require.NoError(t, err)

	retired := running + ".old_20240601120000"
	assert.Equal(t, map[string]string{
		"AppInstaller.exe":                    "installer 1.1",
		"AppInstaller.exe.old_20240601120000": "installer 1.0",
	}, readTree(t, localDir))
	assert.FileExists(t, retired)

	// The next run, now on 1.1, clears the retired copy.
	w = env.workflow(t, WithSelfUpdate(true), WithInstaller("", "1.1", running))
	_, err = w.Install("MyTool")
	require.NoError(t, err)
	assert.Contains(t, env.sys.scheduled, retired)
	assert.NoFileExists(t, retired)
}

func TestSelfUpdate_UpToDate(t *testing.T) {
	env := newTestEnv(t)
	env.publish(t, "MyTool", "MyTool.zip", map[string]string{"MyTool.exe": "x"})
	env.publish(t, DefaultInstallerName, "AppInstaller-1.1.zip", map[string]string{"AppInstaller.exe": "installer 1.1"})

	localDir := filepath.Join(env.root, DefaultInstallerName)
	running := filepath.Join(localDir, "AppInstaller.exe")
	require.NoError(t, os.MkdirAll(localDir, 0755))
	require.NoError(t, os.WriteFile(running, []byte("current"), 0755))

	w := env.workflow(t, WithSelfUpdate(true), WithInstaller("", "1.1", running))
	_, err := w.Install("MyTool")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"AppInstaller.exe": "current"}, readTree(t, localDir))
}

func TestSelfUpdate_ComparesModTimeWithoutVersions(t *testing.T) {
	env := newTestEnv(t)
	env.publish(t, "MyTool", "MyTool.zip", map[string]string{"MyTool.exe": "x"})
	pkg := env.publish(t, DefaultInstallerName, "AppInstaller.zip", map[string]string{"AppInstaller.exe": "new"})

	localDir := filepath.Join(env.root, DefaultInstallerName)
	running := filepath.Join(localDir, "AppInstaller.exe")
	require.NoError(t, os.MkdirAll(localDir, 0755))
	require.NoError(t, os.WriteFile(running, []byte("old"), 0755))
	setModTime(t, running, env.now.Add(-48*time.Hour))
	setModTime(t, pkg, env.now)

	w := env.workflow(t, WithSelfUpdate(true), WithInstaller("", "dev", running))
	_, err := w.Install("MyTool")
	require.NoError(t, err)

	got, err := os.ReadFile(running)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestSelfUpdate_NoInstallerPackages(t *testing.T) {
	env := newTestEnv(t)
	env.publish(t, "MyTool", "MyTool.zip", map[string]string{"MyTool.exe": "x"})

	w := env.workflow(t, WithSelfUpdate(true), WithInstaller("", "1.0", filepath.Join(t.TempDir(), "AppInstaller.exe")))
	_, err := w.Install("MyTool")
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(env.root, DefaultInstallerName))
}

func TestSelfUpdate_SkippedForInstallerItself(t *testing.T) {
	env := newTestEnv(t)
	env.publish(t, DefaultInstallerName, "AppInstaller-2.0.zip", map[string]string{"AppInstaller.exe": "2.0"})

	w := env.workflow(t, WithSelfUpdate(true), WithInstaller("", "1.0", filepath.Join(t.TempDir(), "AppInstaller.exe")), WithLaunch(false))
	req, err := w.Install(DefaultInstallerName)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"AppInstaller.exe": "2.0"}, readTree(t, req.InstallDir))
}

func TestSelfUpdate_CorruptInstallerPackage(t *testing.T) {
	env := newTestEnv(t)
	env.publish(t, "MyTool", "MyTool.zip", map[string]string{"MyTool.exe": "x"})
	require.NoError(t, os.MkdirAll(filepath.Join(env.source, DefaultInstallerName), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(env.source, DefaultInstallerName, "AppInstaller-9.zip"), []byte("junk"), 0644))

	w := env.workflow(t, WithSelfUpdate(true), WithInstaller("", "1.0", filepath.Join(t.TempDir(), "AppInstaller.exe")))
	_, err := w.Install("MyTool")
	assert.ErrorIs(t, err, ErrArchive)
	assert.NoDirExists(t, filepath.Join(env.root, "MyTool"))
}

func TestSelfUpdate_CorruptPackageKeepsRunningInstaller(t *testing.T) {
	env := newTestEnv(t)
	env.publish(t, "MyTool", "MyTool.zip", map[string]string{"MyTool.exe": "x"})
	require.NoError(t, os.MkdirAll(filepath.Join(env.source, DefaultInstallerName), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(env.source, DefaultInstallerName, "AppInstaller-9.zip"), []byte("junk"), 0644))

	localDir := filepath.Join(env.root, DefaultInstallerName)
	running := filepath.Join(localDir, "AppInstaller.exe")
	require.NoError(t, os.MkdirAll(localDir, 0755))
	require.NoError(t, os.WriteFile(running, []byte("installer 1.0"), 0755))

	for run := 0; run < 2; run++ {
		w := env.workflow(t, WithSelfUpdate(true), WithInstaller("", "1.0", running))
		_, err := w.Install("MyTool")
		assert.ErrorIs(t, err, ErrArchive)
		assert.Equal(t, map[string]string{"AppInstaller.exe": "installer 1.0"}, readTree(t, localDir), "run %d", run+1)
	}
}

func TestSelfUpdate_ChecksumMismatchKeepsRunningInstaller(t *testing.T) {
	env := newTestEnv(t)
	env.publish(t, "MyTool", "MyTool.zip", map[string]string{"MyTool.exe": "x"})
	pkg := filepath.Join(env.source, DefaultInstallerName, "AppInstaller-2.0.zip")
	require.NoError(t, os.MkdirAll(filepath.Dir(pkg), 0755))
	writeStoredZip(t, pkg, "AppInstaller.exe", "installer 2.0")
	data, err := os.ReadFile(pkg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(pkg, bytes.Replace(data, []byte("installer 2.0"), []byte("installer X.X"), 1), 0644))

	localDir := filepath.Join(env.root, DefaultInstallerName)
	running := filepath.Join(localDir, "AppInstaller.exe")
	require.NoError(t, os.MkdirAll(localDir, 0755))
	require.NoError(t, os.WriteFile(running, []byte("installer 1.0"), 0755))

	w := env.workflow(t, WithSelfUpdate(true), WithInstaller("", "1.0", running))
	_, err = w.Install("MyTool")
	assert.ErrorIs(t, err, ErrArchive)
	assert.Equal(t, map[string]string{"AppInstaller.exe": "installer 1.0"}, readTree(t, localDir))
	assert.NoFileExists(t, filepath.Join(env.root, "AppInstaller-2.0.zip"))
}

func TestSelfUpdate_ExtractionFailureRestoresInstaller(t *testing.T) {
	env := newTestEnv(t)
	env.publish(t, "MyTool", "MyTool.zip", map[string]string{"MyTool.exe": "x"})
	env.publish(t, DefaultInstallerName, "AppInstaller-2.0.zip", map[string]string{
		"AppInstaller.exe": "installer 2.0",
		"data/cfg.json":    "{}",
	})

	localDir := filepath.Join(env.root, DefaultInstallerName)
	running := filepath.Join(localDir, "AppInstaller.exe")
	require.NoError(t, os.MkdirAll(localDir, 0755))
	require.NoError(t, os.WriteFile(running, []byte("installer 1.0"), 0755))
	// A file where the package needs a directory makes extraction fail midway.
	require.NoError(t, os.WriteFile(filepath.Join(localDir, "data"), []byte("blocker"), 0644))

	w := env.workflow(t, WithSelfUpdate(true), WithInstaller("", "1.0", running))
	_, err := w.Install("MyTool")
	assert.ErrorIs(t, err, ErrIO)

	assert.Equal(t, map[string]string{
		"AppInstaller.exe": "installer 1.0",
		"data":             "blocker",
	}, readTree(t, localDir))
}
