// Package ui holds the terminal output helpers shared by mwdeps commands.
package ui

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/mitchellh/cli"
)

const ansiEscapeStr = "[\u001B\u009B][[\\]()#;?]*(?:(?:(?:[a-zA-Z\\d]*(?:;[a-zA-Z\\d]*)*)?\u0007)|(?:(?:\\d{1,4}(?:;\\d{0,4})*)?[\\dA-PRZcf-ntqry=><~]))"

// IsTTY is true when stdout appears to be a tty
var IsTTY = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

// IsCI is true when we appear to be running in a non-interactive context.
var IsCI = !IsTTY || isCIEnv(os.Getenv)

var gray = color.New(color.Faint)
var bold = color.New(color.Bold)

// ErrorPrefix is printed before error messages on stderr.
var ErrorPrefix = color.New(color.Bold, color.FgRed, color.ReverseVideo).Sprint(" ERROR ")

// WarningPrefix is printed before warnings on stderr.
var WarningPrefix = color.New(color.Bold, color.FgYellow, color.ReverseVideo).Sprint(" WARNING ")

var ansiRegex = regexp.MustCompile(ansiEscapeStr)

// ciEnvVars are set by the CI systems Quibble jobs usually run on.
var ciEnvVars = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"BUILD_NUMBER",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"JENKINS_URL",
	"ZUUL_PROJECT",
}

func isCIEnv(getenv func(string) string) bool {
	for _, name := range ciEnvVars {
		if getenv(name) != "" {
			return true
		}
	}
	return false
}

// Dim prints out dimmed text
func Dim(str string) string {
	return gray.Sprint(str)
}

// Bold prints out bold text
func Bold(str string) string {
	return bold.Sprint(str)
}

// Error formats err for stderr with the error prefix.
func Error(err error) string {
	return fmt.Sprintf("%s%s", ErrorPrefix, color.RedString(" %v", err))
}

// Warn formats a warning message for stderr with the warning prefix.
func Warn(str string) string {
	return fmt.Sprintf("%s%s", WarningPrefix, color.YellowString(" %v", str))
}

type stripAnsiWriter struct {
	wrappedWriter io.Writer
}

func (into *stripAnsiWriter) Write(p []byte) (int, error) {
	n, err := into.wrappedWriter.Write(ansiRegex.ReplaceAll(p, []byte{}))
	if err != nil {
		return n, err
	}
	// Report the caller's byte count; the stripped output is shorter.
	return len(p), nil
}

// Default returns the colored ui writing to stdout and stderr.
func Default() *cli.ColoredUi {
	return BuildColoredUi(GetColorModeFromEnv(), os.Stdout, os.Stderr)
}

// BuildColoredUi returns a ui writing to out and errOut. ANSI codes are stripped
// from both writers when color is suppressed.
func BuildColoredUi(colorMode ColorMode, out io.Writer, errOut io.Writer) *cli.ColoredUi {
	colorMode = applyColorMode(colorMode)

	if colorMode == ColorModeSuppressed {
		out = &stripAnsiWriter{wrappedWriter: out}
		errOut = &stripAnsiWriter{wrappedWriter: errOut}
	}

	return &cli.ColoredUi{
		Ui: &cli.BasicUi{
			Reader:      os.Stdin,
			Writer:      out,
			ErrorWriter: errOut,
		},
		OutputColor: cli.UiColorNone,
		InfoColor:   cli.UiColorNone,
		WarnColor:   cli.UiColor{Code: int(color.FgYellow), Bold: false},
		ErrorColor:  cli.UiColorRed,
	}
}
