package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/cli"
	"mwdeps/internal/cmdutil"
	"mwdeps/internal/config"
	"mwdeps/internal/info"
	"mwdeps/internal/resolve"
	uiPkg "mwdeps/internal/ui"
)

var mwdepsVersion = "0.1.0"

const defaultCommand = "resolve"

func main() {
	args := os.Args[1:]
	cpuprofileFile := ""
	traceFile := ""
	argsEnd := 0
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "--trace="):
			traceFile = arg[len("--trace="):]
		case strings.HasPrefix(arg, "--cpuprofile="):
			cpuprofileFile = arg[len("--cpuprofile="):]
		default:
			// Strip any arguments that were handled above
			args[argsEnd] = arg
			argsEnd++
		}
	}
	args = resolveArgs(args[:argsEnd])

	c := cli.NewCLI("mwdeps", mwdepsVersion)
	ui := uiPkg.Default()

	c.Args = args
	c.HelpWriter = os.Stdout
	c.ErrorWriter = os.Stderr
	// Parse and validate cmd line flags and env vars
	cf, err := config.ParseAndValidate(c.Args, mwdepsVersion)
	if err != nil {
		ui.Error(uiPkg.Error(err))
		os.Exit(1)
	}
	helper := cmdutil.Helper{Config: cf, Ui: ui}
	c.Commands = map[string]cli.CommandFactory{
		"resolve": func() (cli.Command, error) {
			return &resolve.ResolveCommand{Helper: helper}, nil
		},
		"graph": func() (cli.Command, error) {
			return &info.GraphCommand{Helper: helper}, nil
		},
		"validate": func() (cli.Command, error) {
			return &info.ValidateCommand{Helper: helper}, nil
		},
	}

	exitCode := 1
	func() {
		// To view a CPU trace, use "go tool trace [file]".
		if traceFile != "" {
			done := createTraceFile(args, traceFile)
			if done == nil {
				return
			}
			defer done()
		}
		if cpuprofileFile != "" {
			done := createCpuprofileFile(args, cpuprofileFile)
			if done == nil {
				return
			}
			defer done()
		}

		exitCode, err = c.Run()
		if err != nil {
			ui.Error(uiPkg.Error(fmt.Errorf("%v", err)))
		}
	}()
	os.Exit(exitCode)
}

// resolveArgs inserts the default command when none is given. Help and version
// requests for the root command are left alone. -v raises the log level, so the
// version is only available as --version.
func resolveArgs(args []string) []string {
	if len(args) == 0 {
		return []string{defaultCommand}
	}
	switch args[0] {
	case "-h", "-help", "--help", "-version", "--version":
		if len(args) == 1 {
			return args
		}
	}
	if strings.HasPrefix(args[0], "-") {
		return append([]string{defaultCommand}, args...)
	}
	return args
}
