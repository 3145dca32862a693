package myapps

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/crafted-tech/myapps/installer"
)

// selfUpdate returns the action of the self-update step. It makes sure a
// copy of the installer exists under the install root and replaces it when
// the share has a newer build. The run continues with the current process.
func (w *Workflow) selfUpdate(req *Request) func() installer.StepResult {
	return func() installer.StepResult {
		if !w.config.SelfUpdate {
			return installer.Skipped("disabled")
		}
		if strings.EqualFold(req.Program, w.config.InstallerName) {
			return installer.Skipped("installing the installer itself")
		}

		exe := w.config.Executable
		if exe == "" {
			var err error
			if exe, err = os.Executable(); err != nil {
				return installer.Failed(withKind(ErrIO, fmt.Errorf("locate running installer: %w", err)))
			}
		}
		installer.CleanupRetiredExecutables(exe, w.sys.ScheduleFileDelete, w.log)

		w.log.Info("Checking for installer updates...")
		pkg, err := NewestPackage(filepath.Join(w.config.SourceDir, w.config.InstallerName))
		if errors.Is(err, ErrNotFound) {
			w.log.Debug("No installer packages on the share: %v", err)
			return installer.Skipped("no installer packages published")
		}
		if err != nil {
			return installer.Failed(err)
		}

		localDir := filepath.Join(w.config.InstallRoot, w.config.InstallerName)
		if !installer.DirExists(localDir) {
			w.log.Info("No local installer found. Downloading...")
			if err := w.installInstaller(pkg, localDir, ""); err != nil {
				return installer.Failed(err)
			}
			return installer.Success("installed " + pkg.Name)
		}

		outdated, err := w.installerOutdated(pkg, exe)
		if err != nil {
			return installer.Failed(err)
		}
		if !outdated {
			return installer.Skipped("installer is up to date")
		}

		w.log.Info("Newer installer found. Updating...")
		retire := ""
		if within(localDir, exe) {
			retire = exe
		}
		if err := w.installInstaller(pkg, localDir, retire); err != nil {
			return installer.Failed(err)
		}
		return installer.Success("updated to " + pkg.Name + ", takes effect on the next run")
	}
}

// installerOutdated reports whether pkg is newer than the running installer.
// Versions are compared when both sides have one, modification times otherwise.
func (w *Workflow) installerOutdated(pkg Package, exe string) (bool, error) {
	if pkg.Version != nil {
		if current, err := goversion.NewVersion(w.config.InstallerVersion); err == nil {
			w.log.Debug("Installer version %s, share has %s", current, pkg.Version)
			return pkg.Version.GreaterThan(current), nil
		}
	}

	info, err := os.Stat(exe)
	if err != nil {
		return false, withKind(ErrIO, fmt.Errorf("stat running installer: %w", err))
	}
	w.log.Debug("Installer built %s, share has %s", info.ModTime().Format("2006-01-02 15:04:05"), pkg.ModTime.Format("2006-01-02 15:04:05"))
	return pkg.ModTime.After(info.ModTime()), nil
}

// installInstaller downloads pkg and extracts it into dir with the same
// primitives used for programs. A running executable inside dir is renamed
// first so the new one can take its place, and renamed back if extraction fails.
func (w *Workflow) installInstaller(pkg Package, dir, retire string) error {
	zipPath, err := w.fetch(pkg)
	if err != nil {
		return err
	}

	// The package is checked before the running copy is moved aside, so a
	// bad package leaves the current installer in place.
	if err := installer.VerifyZip(zipPath); err != nil {
		_ = os.Remove(zipPath)
		return withKind(ErrArchive, err)
	}

	retired := ""
	if retire != "" {
		retired, err = installer.RetireExecutable(retire, w.now())
		if err != nil {
			_ = os.Remove(zipPath)
			return withKind(ErrIO, err)
		}
		w.log.Debug("Renamed running installer to %s", filepath.Base(retired))
	}

	if _, err := w.unpack(zipPath, dir); err != nil {
		if retired != "" {
			if rerr := installer.RestoreExecutable(retired, retire); rerr != nil {
				w.log.Error("Could not restore installer from %s: %v", filepath.Base(retired), rerr)
			} else {
				w.log.Warn("Installer update failed, restored %s", filepath.Base(retire))
			}
		}
		return err
	}
	w.log.Info("Installer updated from %s", pkg.Name)
	return nil
}
