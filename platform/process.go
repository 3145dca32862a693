package platform

import "strings"

// ExecutableName returns the process image name for a program name.
// "MyTool" -> "MyTool.exe". A name that already ends in .exe is returned as is.
func ExecutableName(program string) string {
	if strings.HasSuffix(strings.ToLower(program), ".exe") {
		return program
	}
	return program + ".exe"
}

// IsProcessRunning checks if any process with the given executable name is running.
func IsProcessRunning(exeName string) (bool, error) {
	pids, err := FindProcessesByName(exeName)
	if err != nil {
		return false, err
	}
	return len(pids) > 0, nil
}

// sameImageName compares process names the way Windows does: case-insensitive,
// and tolerant of a missing .exe suffix on either side.
func sameImageName(a, b string) bool {
	trim := func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimSuffix(s, ".exe")
	}
	return trim(a) == trim(b)
}
