package myapps

import (
	"time"

	"github.com/crafted-tech/myapps/installer"
)

// Defaults.
const (
	DefaultSourceDir     = `C:\dev\apps`  // Share holding one folder of packages per program
	DefaultRootName      = "MyApps"       // Folder under %LocalAppData% holding installs
	DefaultInstallerName = "AppInstaller" // Program name the installer publishes itself under
	singleInstanceName   = "MyApps.AppInstaller"
)

// Config holds the configuration for creating a new Workflow.
type Config struct {
	SourceDir        string                                 // Share root; packages live in SourceDir\<program>
	InstallRoot      string                                 // Local root; default %LocalAppData%\MyApps
	InstallerName    string                                 // Program name of the installer itself on the share
	InstallerVersion string                                 // Version of the running installer ("" or "dev" = unknown)
	Executable       string                                 // Path of the running installer; default os.Executable()
	Launch           bool                                   // Start the program after installing
	SelfUpdate       bool                                   // Check the share for a newer installer first
	Logger           *installer.Logger                      // Run log (nil = no logging)
	Progress         installer.Progress                     // Step progress (nil = none)
	Transfer         func(name string, copied, total int64) // Byte progress while copying packages
	System           System                                 // OS access (nil = host system)
	Now              func() time.Time                       // Clock (nil = time.Now)
}

func defaultConfig() Config {
	return Config{
		SourceDir:     DefaultSourceDir,
		InstallerName: DefaultInstallerName,
		Launch:        true,
		SelfUpdate:    true,
	}
}

// Option is a function that configures a Workflow.
type Option func(*Config)

// WithSourceDir sets the share root. Empty values are ignored.
func WithSourceDir(dir string) Option {
	return func(c *Config) {
		if dir != "" {
			c.SourceDir = dir
		}
	}
}

// WithInstallRoot sets the local install root. Empty values are ignored.
func WithInstallRoot(dir string) Option {
	return func(c *Config) {
		if dir != "" {
			c.InstallRoot = dir
		}
	}
}

// WithInstaller identifies the running installer for the self-update check.
func WithInstaller(name, version, executable string) Option {
	return func(c *Config) {
		if name != "" {
			c.InstallerName = name
		}
		c.InstallerVersion = version
		c.Executable = executable
	}
}

// WithLaunch sets whether the program is started after installing.
func WithLaunch(launch bool) Option {
	return func(c *Config) {
		c.Launch = launch
	}
}

// WithSelfUpdate sets whether the installer updates itself first.
func WithSelfUpdate(enabled bool) Option {
	return func(c *Config) {
		c.SelfUpdate = enabled
	}
}

// WithLogger sets the run log.
func WithLogger(log *installer.Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

// WithProgress sets the step progress receiver.
func WithProgress(p installer.Progress) Option {
	return func(c *Config) {
		c.Progress = p
	}
}

// WithTransferProgress sets a callback receiving byte counts while packages are copied.
func WithTransferProgress(fn func(name string, copied, total int64)) Option {
	return func(c *Config) {
		c.Transfer = fn
	}
}

// WithSystem replaces the operating system access layer.
func WithSystem(s System) Option {
	return func(c *Config) {
		c.System = s
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}
