package installer

// Progress receives progress updates while steps run.
type Progress interface {
	// Update reports overall completion in percent (0-100) and the current status.
	Update(progress float64, status string)
}

// ProgressFunc adapts a function to the Progress interface.
type ProgressFunc func(progress float64, status string)

// Update calls f(progress, status).
func (f ProgressFunc) Update(progress float64, status string) {
	f(progress, status)
}

// RunSteps executes steps sequentially, stopping at the first failure.
// Returns a *StepError wrapping the failed step's error, or nil if all succeeded.
// Both log and p may be nil.
//
// Example:
//
//	steps := []installer.Step{
//	    installer.SimpleStep("Remove old version", func() error {
//	        _, err := installer.RemoveDir(targetDir)
//	        return err
//	    }),
//	    installer.SimpleStep("Copy package", func() error {
//	        return installer.CopyFileWithProgress(srcZip, dstZip, nil)
//	    }),
//	}
//	if err := installer.RunSteps(steps, log, nil); err != nil {
//	    return err
//	}
func RunSteps(steps []Step, log *Logger, p Progress) error {
	totalSteps := len(steps)

	for i, step := range steps {
		if p != nil {
			p.Update(float64(i)/float64(totalSteps)*100, step.Name)
		}
		log.Step("Starting: %s", step.Name)

		result := step.Action()

		if result.Err != nil {
			log.Error("Step '%s' failed: %v", step.Name, result.Err)
			return &StepError{Step: step.Name, Err: result.Err}
		}

		switch {
		case result.Skip && result.Info != "":
			log.Info("Step '%s' skipped: %s", step.Name, result.Info)
		case result.Skip:
			log.Info("Step '%s' skipped", step.Name)
		case result.Info != "":
			log.Info("Step '%s' completed: %s", step.Name, result.Info)
		default:
			log.Info("Step '%s' completed", step.Name)
		}
	}

	if p != nil {
		p.Update(100, "Complete")
	}
	log.Info("All steps completed successfully")
	return nil
}
