// Command appinstaller installs or updates a program from the apps share.
//
//	appinstaller [flags] <program_name>
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/crafted-tech/myapps"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}
	cmd := newRootCommand(version, stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return myapps.ExitCode(err)
}
