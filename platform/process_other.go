//go:build !windows

package platform

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

// FindProcessesByName returns PIDs of all processes matching the given executable name.
// Processes that exit while the table is being walked are ignored, and the
// calling process is never included.
func FindProcessesByName(exeName string) ([]uint32, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	self := int32(os.Getpid())
	var pids []uint32
	for _, p := range procs {
		if p.Pid == self {
			continue
		}
		name, err := p.Name()
		if err != nil {
			continue
		}
		if sameImageName(name, exeName) {
			pids = append(pids, uint32(p.Pid))
		}
	}
	return pids, nil
}
