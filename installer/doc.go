// Package installer provides the building blocks of the install workflow.
//
// This package offers reusable components the workflow picks from:
//   - Logger: Unified logging with in-memory buffer, file output and console echo
//   - Step execution: Run named steps in order, stopping at the first failure
//   - Files: copy with progress, recursive removal, zip extraction
//   - Detection helpers: version tokens in package names, executable lookup
//
// # Basic Usage
//
// Create a logger:
//
//	log, err := installer.NewLogger("appinstaller")
//	if err != nil {
//	    return err
//	}
//	defer log.Close()
//
// Build and run installation steps:
//
//	steps := []installer.Step{
//	    installer.StepRequireNotRunning("MyTool.exe", platform.IsProcessRunning),
//	    installer.SimpleStep("Extract", func() error {
//	        _, err := installer.ExtractZip(zipPath, installDir, nil)
//	        return err
//	    }),
//	}
//	return installer.RunSteps(steps, log, nil)
//
// # Step Pattern
//
// Steps are simple structs with a name and action function:
//
//	type Step struct {
//	    Name   string
//	    Action func() StepResult
//	}
//
// The StepResult indicates success, skip, or failure:
//
//	type StepResult struct {
//	    Skip bool   // Step was skipped (already done, not needed)
//	    Info string // Success/info message
//	    Err  error  // Error (nil = success)
//	}
//
// A failed step stops the run; RunSteps returns a *StepError naming it.
package installer
