package myapps

import (
	"time"

	goversion "github.com/hashicorp/go-version"
)

// Package is one zip archive published on the share.
type Package struct {
	Path    string             // Full path on the share
	Name    string             // File name, e.g. "MyTool-v2.zip"
	ModTime time.Time          // Last modification time
	Version *goversion.Version // Version token from the file name, nil if none
}

// VersionString returns the package version, or "" when the name carries none.
func (p Package) VersionString() string {
	if p.Version == nil {
		return ""
	}
	return p.Version.Original()
}

// Request describes one install run. It is filled in step by step and
// returned by Install so callers can report what happened.
type Request struct {
	Program     string // Program name as given on the command line
	SourceDir   string // Share folder holding this program's packages
	InstallRoot string // %LocalAppData%\MyApps
	InstallDir  string // InstallRoot\Program

	Package      Package // Selected package
	LocalZip     string  // Downloaded copy of the package
	Executable   string  // Program executable inside InstallDir
	ShortcutPath string  // Start Menu shortcut
	Action       string  // Fresh Install, Upgrade, Downgrade or Reinstall
}
