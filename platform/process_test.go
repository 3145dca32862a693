package platform

import (
	"os"
	"testing"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutableName(t *testing.T) {
	assert.Equal(t, "MyTool.exe", ExecutableName("MyTool"))
	assert.Equal(t, "MyTool.EXE", ExecutableName("MyTool.EXE"))
}

func TestSameImageName(t *testing.T) {
	assert.True(t, sameImageName("MyTool.exe", "mytool.EXE"))
	assert.True(t, sameImageName("mytool", "MyTool.exe"))
	assert.False(t, sameImageName("MyTool.exe", "MyTool2.exe"))
}

func TestIsProcessRunning_Unknown(t *testing.T) {
	running, err := IsProcessRunning("no-such-program-7f3a9c.exe")
	assert.NoError(t, err)
	assert.False(t, running)
}

func TestIsProcessRunning_IgnoresSelf(t *testing.T) {
	self, err := process.NewProcess(int32(os.Getpid()))
	require.NoError(t, err)
	name, err := self.Name()
	require.NoError(t, err)

	pids, err := FindProcessesByName(name)
	require.NoError(t, err)
	assert.NotContains(t, pids, uint32(os.Getpid()))
}
