package installer

import (
	"errors"
	"fmt"
)

// ErrProcessRunning is returned by StepRequireNotRunning when the program is running.
var ErrProcessRunning = errors.New("process is running")

// StepRequireNotRunning creates a Step that fails if a process with the given
// executable name is running. The process is never terminated; the user is
// asked to close it instead.
func StepRequireNotRunning(exeName string, isRunning func(exeName string) (bool, error)) Step {
	return Step{
		Name: fmt.Sprintf("Check %s is not running", exeName),
		Action: func() StepResult {
			running, err := isRunning(exeName)
			if err != nil {
				return Failed(fmt.Errorf("query process table: %w", err))
			}
			if running {
				return Failed(fmt.Errorf("%w: %s is running, please close it and try again", ErrProcessRunning, exeName))
			}
			return Success("")
		},
	}
}
