package installer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestCopyFileWithProgress(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.zip")
	content := strings.Repeat("x", copyBufferSize*2+10)
	writeFile(t, src, content)

	var calls []int64
	var total int64
	dst := filepath.Join(dir, "nested", "dst.zip")
	err := CopyFileWithProgress(src, dst, func(copied, size int64) {
		calls = append(calls, copied)
		total = size
	})
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
	assert.Equal(t, int64(len(content)), total)
	require.Len(t, calls, 3)
	assert.Equal(t, int64(len(content)), calls[len(calls)-1])
}

func TestCopyFileWithProgress_MissingSource(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "dst")

	err := CopyFileWithProgress(filepath.Join(dir, "missing"), dst, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoFileExists(t, dst)
}

func TestRemoveDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "app")
	writeFile(t, filepath.Join(dir, "sub", "file.txt"), "data")

	removed, err := RemoveDir(dir)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NoDirExists(t, dir)

	removed, err = RemoveDir(dir)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRemoveDir_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	writeFile(t, file, "x")

	_, err := RemoveDir(file)
	assert.Error(t, err)
	assert.FileExists(t, file)
}

func TestFindExecutable(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{name: "program exe preferred", files: []string{"Helper.exe", "MyTool.exe"}, want: "MyTool.exe"},
		{name: "case insensitive", files: []string{"mytool.EXE"}, want: "mytool.EXE"},
		{name: "first exe by name", files: []string{"b.exe", "a.exe", "readme.txt"}, want: "a.exe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				writeFile(t, filepath.Join(dir, f), "")
			}
			got, err := FindExecutable(dir, "MyTool")
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.want), got)
		})
	}
}

func TestFindExecutable_IgnoresSubdirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bin", "MyTool.exe"), "")
	writeFile(t, filepath.Join(dir, "readme.txt"), "")

	_, err := FindExecutable(dir, "MyTool")
	assert.ErrorIs(t, err, ErrNoExecutable)
}

func TestVersionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".versions", "MyTool")
	assert.Empty(t, ReadVersionFile(path))

	require.NoError(t, WriteVersionFile(path, "1.2.3"))
	assert.Equal(t, "1.2.3", ReadVersionFile(path))
}
