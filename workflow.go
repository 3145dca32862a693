package myapps

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/crafted-tech/myapps/installer"
	"github.com/crafted-tech/myapps/platform"
)

// Step names, as reported in errors and logs.
const (
	StepResolve    = "Resolve program name"
	StepLocate     = "Locate newest package"
	StepSelfUpdate = "Check for installer update"
	StepDownload   = "Download package"
	StepRunning    = "Check program is not running"
	StepUninstall  = "Uninstall previous version"
	StepExtract    = "Extract package"
	StepShortcut   = "Create shortcut"
	StepLaunch     = "Launch program"
)

// Workflow installs programs from the share. It runs one install at a time
// and keeps no state between runs besides the filesystem.
type Workflow struct {
	config Config
	sys    System
	log    *installer.Logger
	now    func() time.Time
}

// New creates a Workflow with the given options.
// The install root defaults to %LocalAppData%\MyApps.
func New(opts ...Option) (*Workflow, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.InstallRoot == "" {
		localAppData, err := platform.LocalAppDataPath()
		if err != nil {
			return nil, withKind(ErrIO, fmt.Errorf("locate local app data: %w", err))
		}
		cfg.InstallRoot = filepath.Join(localAppData, DefaultRootName)
	}

	w := &Workflow{
		config: cfg,
		sys:    cfg.System,
		log:    cfg.Logger,
		now:    cfg.Now,
	}
	if w.sys == nil {
		w.sys = hostSystem{}
	}
	if w.now == nil {
		w.now = time.Now
	}
	return w, nil
}

// Config returns the effective configuration.
func (w *Workflow) Config() Config {
	return w.config
}

// NewRequest validates a program name and derives the paths of an install run.
func (w *Workflow) NewRequest(program string) (*Request, error) {
	program = strings.TrimSpace(program)
	if program == "" {
		return nil, withKind(ErrUsage, errors.New("program name is empty"))
	}
	if strings.ContainsAny(program, `/\:`) || program == "." || program == ".." {
		return nil, withKind(ErrUsage, fmt.Errorf("invalid program name %q", program))
	}

	return &Request{
		Program:     program,
		SourceDir:   filepath.Join(w.config.SourceDir, program),
		InstallRoot: w.config.InstallRoot,
		InstallDir:  filepath.Join(w.config.InstallRoot, program),
	}, nil
}

// Install runs the install workflow for program. The returned Request holds
// whatever was resolved before the run stopped, even on error.
func (w *Workflow) Install(program string) (*Request, error) {
	release, ok := w.sys.AcquireSingleInstance(singleInstanceName)
	if !ok {
		return nil, withKind(ErrAlreadyRunning, errors.New("another installer run is in progress"))
	}
	defer release()

	req := &Request{Program: program}
	steps := []installer.Step{
		installer.SimpleStep(StepResolve, func() error {
			r, err := w.NewRequest(program)
			if err != nil {
				return err
			}
			*req = *r
			return nil
		}),
		installer.SimpleStep(StepLocate, func() error {
			return w.locate(req)
		}),
		{Name: StepSelfUpdate, Action: w.selfUpdate(req)},
		installer.SimpleStep(StepDownload, func() error {
			return w.download(req)
		}),
		w.requireNotRunning(req),
		{Name: StepUninstall, Action: func() installer.StepResult {
			return w.uninstall(req)
		}},
		{Name: StepExtract, Action: func() installer.StepResult {
			return w.extract(req)
		}},
		{Name: StepShortcut, Action: func() installer.StepResult {
			return w.createShortcut(req)
		}},
		{Name: StepLaunch, Action: func() installer.StepResult {
			return w.launch(req)
		}},
	}

	w.log.Info("Starting installation for %s", program)
	if err := installer.RunSteps(steps, w.log, w.config.Progress); err != nil {
		// A run stopped before extraction leaves its download behind.
		if req.LocalZip != "" {
			if rmErr := os.Remove(req.LocalZip); rmErr != nil && !os.IsNotExist(rmErr) {
				w.log.Warn("Failed to delete temporary zip file: %v", rmErr)
			}
		}
		// Every error leaving Install carries a kind; untagged ones are I/O.
		if Kind(err) == nil {
			err = withKind(ErrIO, err)
		}
		return req, err
	}
	w.log.Info("Installation of %s finished", program)
	return req, nil
}

func (w *Workflow) locate(req *Request) error {
	w.log.Debug("Searching for zip files in %s", req.SourceDir)
	pkg, err := NewestPackage(req.SourceDir)
	if err != nil {
		return err
	}
	req.Package = pkg
	w.log.Info("Found latest package %s", pkg.Name)
	return nil
}

func (w *Workflow) download(req *Request) error {
	zipPath, err := w.fetch(req.Package)
	if err != nil {
		return err
	}
	req.LocalZip = zipPath
	return nil
}

// fetch copies a package from the share into the install root.
func (w *Workflow) fetch(pkg Package) (string, error) {
	dst := filepath.Join(w.config.InstallRoot, pkg.Name)
	var onProgress func(copied, total int64)
	if w.config.Transfer != nil {
		onProgress = func(copied, total int64) {
			w.config.Transfer(pkg.Name, copied, total)
		}
	}
	if err := installer.CopyFileWithProgress(pkg.Path, dst, onProgress); err != nil {
		return "", withKind(ErrIO, fmt.Errorf("copy %s: %w", pkg.Name, err))
	}
	w.log.Debug("Copied %s to %s", pkg.Name, dst)
	return dst, nil
}

// unpack extracts a downloaded package into dir and removes the download.
func (w *Workflow) unpack(zipPath, dir string) (int, error) {
	count, err := installer.ExtractZip(zipPath, dir, func(name string) {
		w.log.Debug("Extracting file: %s", name)
	})
	if rmErr := os.Remove(zipPath); rmErr != nil && !os.IsNotExist(rmErr) {
		w.log.Warn("Failed to delete temporary zip file: %v", rmErr)
	}
	if err != nil {
		if errors.Is(err, installer.ErrInvalidArchive) {
			return count, withKind(ErrArchive, err)
		}
		return count, withKind(ErrIO, err)
	}
	return count, nil
}

func (w *Workflow) requireNotRunning(req *Request) installer.Step {
	return installer.Step{
		Name: StepRunning,
		Action: func() installer.StepResult {
			exe := platform.ExecutableName(req.Program)
			result := installer.StepRequireNotRunning(exe, w.sys.IsProcessRunning).Action()
			if errors.Is(result.Err, installer.ErrProcessRunning) {
				result.Err = withKind(ErrAlreadyRunning, result.Err)
			}
			return result
		},
	}
}

func (w *Workflow) uninstall(req *Request) installer.StepResult {
	installed := installer.DirExists(req.InstallDir)
	previous := installer.ReadVersionFile(w.versionFile(req.Program))
	req.Action = installer.DetermineAction(installed, previous, req.Package.VersionString()).String()
	w.log.Info("%s of %s", req.Action, req.Program)

	removedAny := false

	for _, lnk := range w.existingShortcuts(req.Program) {
		if target, err := w.sys.ReadShortcutTarget(lnk); err != nil {
			w.log.Warn("Could not read shortcut %s: %v", lnk, err)
		} else if target != "" && !within(req.InstallDir, target) {
			// Display names can collide ("MyTool", "My Tool"); the other
			// program's files are left alone and only the shortcut is replaced.
			w.log.Warn("Shortcut %s pointed at %s, outside %s; replacing the shortcut only", lnk, target, req.InstallDir)
		}
		if err := platform.DeleteShortcut(lnk); err != nil {
			return installer.Failed(withKind(ErrIO, fmt.Errorf("delete shortcut %s: %w", lnk, err)))
		}
		w.log.Debug("Deleted shortcut at %s", lnk)
		removedAny = true
	}

	removed, err := installer.RemoveDir(req.InstallDir)
	if err != nil {
		return installer.Failed(withKind(ErrIO, err))
	}
	if removed {
		w.log.Debug("Deleted existing directory at %s", req.InstallDir)
		removedAny = true
	}

	if err := os.Remove(w.versionFile(req.Program)); err != nil && !os.IsNotExist(err) {
		return installer.Failed(withKind(ErrIO, fmt.Errorf("delete version record: %w", err)))
	}

	if !removedAny {
		return installer.Skipped("no previous installation")
	}
	return installer.Success(previous)
}

func (w *Workflow) extract(req *Request) installer.StepResult {
	count, err := w.unpack(req.LocalZip, req.InstallDir)
	if err != nil {
		return installer.Failed(err)
	}
	w.log.Info("Successfully unzipped %d files to %s", count, req.InstallDir)
	return installer.Success(fmt.Sprintf("%d files", count))
}

func (w *Workflow) createShortcut(req *Request) installer.StepResult {
	exe, err := installer.FindExecutable(req.InstallDir, req.Program)
	if err != nil {
		return installer.Failed(withKind(ErrNotFound, fmt.Errorf("could not find executable for %s: %w", req.Program, err)))
	}
	req.Executable = exe
	w.log.Debug("Found executable at %s", exe)

	lnkPath, err := w.shortcutPath(req.Program)
	if err != nil {
		return installer.Failed(withKind(ErrIO, fmt.Errorf("could not find Start Menu path: %w", err)))
	}
	req.ShortcutPath = lnkPath

	err = w.sys.CreateShortcut(lnkPath, platform.Shortcut{
		Target:      exe,
		Description: installer.DisplayName(req.Program),
	})
	if err != nil {
		return installer.Failed(withKind(ErrIO, fmt.Errorf("create shortcut: %w", err)))
	}

	if v := req.Package.VersionString(); v != "" {
		if err := installer.WriteVersionFile(w.versionFile(req.Program), v); err != nil {
			w.log.Warn("Could not record installed version: %v", err)
		}
	}
	return installer.Success(lnkPath)
}

func (w *Workflow) launch(req *Request) installer.StepResult {
	if !w.config.Launch {
		return installer.Skipped("disabled")
	}
	if err := w.sys.Launch(req.Executable); err != nil {
		return installer.Failed(withKind(ErrIO, fmt.Errorf("failed to start application: %w", err)))
	}
	w.log.Info("Successfully started %s", req.Program)
	return installer.Success("")
}

// shortcutPath returns the Start Menu shortcut location for a program.
func (w *Workflow) shortcutPath(program string) (string, error) {
	startMenu, err := w.sys.StartMenuDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(startMenu, installer.DisplayName(program)+platform.ShortcutExt), nil
}

// existingShortcuts returns the program's shortcuts in the Start Menu
// Programs folder and in the Start Menu root, where older installers put them.
func (w *Workflow) existingShortcuts(program string) []string {
	name := installer.DisplayName(program) + platform.ShortcutExt
	var found []string
	seen := map[string]bool{}
	for _, dirFn := range []func() (string, error){w.sys.StartMenuDir, w.sys.LegacyStartMenuDir} {
		dir, err := dirFn()
		if err != nil {
			w.log.Warn("Could not resolve Start Menu folder: %v", err)
			continue
		}
		lnk := filepath.Join(dir, name)
		if seen[lnk] || !installer.FileExists(lnk) {
			continue
		}
		seen[lnk] = true
		found = append(found, lnk)
	}
	return found
}

// versionFile is where the installed package version of a program is recorded.
// It lives outside the install directory so that directory mirrors the package.
func (w *Workflow) versionFile(program string) string {
	return filepath.Join(w.config.InstallRoot, ".versions", program)
}

// within reports whether path is strictly below root.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
