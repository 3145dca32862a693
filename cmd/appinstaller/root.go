package main

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/crafted-tech/myapps"
	"github.com/crafted-tech/myapps/config"
	"github.com/crafted-tech/myapps/gui"
	"github.com/crafted-tech/myapps/installer"
	"github.com/crafted-tech/myapps/platform"
)

type rootOptions struct {
	sourceDir    string
	installRoot  string
	configPath   string
	logFile      string
	debug        bool
	noLaunch     bool
	noSelfUpdate bool
	copyLog      bool
	gui          bool
}

// newRootCommand creates the appinstaller command. Messages and progress go to stderr.
func newRootCommand(version string, stderr io.Writer) *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "appinstaller <program_name>",
		Short: "Install or update a program from the apps share",
		Long: `appinstaller copies the newest package of a program from the apps share,
removes the previous installation, extracts the new one under
%LocalAppData%\MyApps, creates a Start Menu shortcut and starts the program.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (main prints them)
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: expected exactly one program name, got %d arguments", myapps.ErrUsage, len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, opts, args[0], version)
		},
	}
	cmd.SetErr(stderr)
	cmd.SetOut(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", myapps.ErrUsage, err)
	})

	f := cmd.Flags()
	f.StringVar(&opts.sourceDir, "source", "", "share root holding one folder of packages per program (default "+myapps.DefaultSourceDir+")")
	f.StringVar(&opts.installRoot, "root", "", `local install root (default %LocalAppData%\MyApps)`)
	f.StringVar(&opts.configPath, "config", "", "settings file (default <root>/"+config.FileName+")")
	f.StringVar(&opts.logFile, "log-file", "", "append the run log to this file instead of a new file in the temp directory")
	f.BoolVar(&opts.debug, "debug", false, "show debug messages")
	f.BoolVar(&opts.noLaunch, "no-launch", false, "do not start the program after installing")
	f.BoolVar(&opts.noSelfUpdate, "no-self-update", false, "skip the installer update check")
	f.BoolVar(&opts.copyLog, "copy-log", false, "copy the run log to the clipboard when the install fails")
	f.BoolVar(&opts.gui, "gui", runtime.GOOS == "windows", "show progress in a window instead of the console")

	return cmd
}

func runInstall(cmd *cobra.Command, opts rootOptions, program, version string) error {
	stderr := cmd.ErrOrStderr()

	root := opts.installRoot
	if root == "" {
		localAppData, err := platform.LocalAppDataPath()
		if err != nil {
			return fmt.Errorf("%w: locate local app data: %w", myapps.ErrIO, err)
		}
		root = filepath.Join(localAppData, myapps.DefaultRootName)
	}

	configPath := opts.configPath
	if configPath == "" {
		configPath = config.DefaultPath(root)
	}
	settings, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("%w: %w", myapps.ErrUsage, err)
	}
	if opts.installRoot == "" && settings.InstallRoot != "" {
		root = settings.InstallRoot
	}

	logFile := opts.logFile
	if logFile == "" {
		logFile = settings.LogFile
	}
	log := newLogger(logFile, stderr)
	defer log.Close()
	log.SetDebug(opts.debug || settings.Debug())

	wfOpts := []myapps.Option{
		myapps.WithSourceDir(settings.SourceDir),
		myapps.WithSourceDir(opts.sourceDir),
		myapps.WithInstallRoot(root),
		myapps.WithInstaller(settings.InstallerName, version, ""),
		myapps.WithLogger(log),
	}
	if settings.Launch != nil {
		wfOpts = append(wfOpts, myapps.WithLaunch(*settings.Launch))
	}
	if settings.SelfUpdate != nil {
		wfOpts = append(wfOpts, myapps.WithSelfUpdate(*settings.SelfUpdate))
	}
	if opts.noLaunch {
		wfOpts = append(wfOpts, myapps.WithLaunch(false))
	}
	if opts.noSelfUpdate {
		wfOpts = append(wfOpts, myapps.WithSelfUpdate(false))
	}

	install := func(extra ...myapps.Option) error {
		wf, err := myapps.New(append(wfOpts, extra...)...)
		if err != nil {
			return err
		}
		_, err = wf.Install(program)
		return err
	}

	useGUI := opts.gui
	if !cmd.Flags().Changed("gui") && settings.GUI != nil {
		useGUI = *settings.GUI
	}
	var window *gui.Window
	if useGUI {
		window, err = gui.New(fmt.Sprintf("Installing %s", program))
		if err != nil {
			log.Warn("Progress window unavailable, using console output: %v", err)
			window = nil
		} else {
			defer window.Close()
		}
	}

	if window != nil {
		err = window.Run(func(r *gui.Reporter) error {
			log.SetListener(r.LogLine)
			defer log.SetListener(nil)
			return install(myapps.WithProgress(r), myapps.WithTransferProgress(r.Transfer))
		})
	} else {
		err = install(myapps.WithTransferProgress(newTransferPrinter(stderr)))
	}
	if err != nil {
		log.Error("Installation failed for %s.", program)
		if path := log.Path(); path != "" {
			fmt.Fprintf(stderr, "Log file: %s\n", path)
		}
		if opts.copyLog {
			copyLog(log, stderr)
		}
		if window != nil {
			window.ShowLog(fmt.Sprintf("Installation of %s failed", program), log.Content(), func() {
				copyLog(log, stderr)
			})
		}
		return err
	}
	return nil
}

// copyLog puts the run log on the clipboard and says so on stderr.
func copyLog(log *installer.Logger, stderr io.Writer) {
	if err := platform.CopyToClipboard(log.Content()); err != nil {
		fmt.Fprintf(stderr, "Could not copy log to clipboard: %v\n", err)
		return
	}
	fmt.Fprintln(stderr, "Log copied to clipboard.")
}

// newLogger opens the run log. When no file can be created the run continues
// with an in-memory log so a full disk does not block reinstalling.
func newLogger(logFile string, console io.Writer) *installer.Logger {
	var (
		log *installer.Logger
		err error
	)
	if logFile != "" {
		log, err = installer.NewLoggerToFile(logFile)
	} else {
		log, err = installer.NewLogger("appinstaller")
	}
	if err != nil {
		log = installer.NewMemoryLogger()
		log.SetConsole(console)
		log.Warn("Logging to memory only: %v", err)
		return log
	}
	log.SetConsole(console)
	return log
}

// newTransferPrinter reports package copies in 10% increments.
func newTransferPrinter(w io.Writer) func(name string, copied, total int64) {
	lastName, lastDecile := "", int64(-1)
	return func(name string, copied, total int64) {
		if name != lastName {
			lastName, lastDecile = name, -1
		}
		if total <= 0 {
			return
		}
		decile := copied * 10 / total
		if decile == lastDecile {
			return
		}
		lastDecile = decile
		fmt.Fprintf(w, "  %s %3d%%\n", name, decile*10)
	}
}
