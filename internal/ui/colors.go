package ui

import (
	"os"

	"github.com/fatih/color"
)

// ColorMode decides whether ANSI colors reach the terminal.
type ColorMode int

const (
	ColorModeUndefined ColorMode = iota + 1
	ColorModeSuppressed
	ColorModeForced
)

// GetColorModeFromEnv reads FORCE_COLOR. "0" and "false" disable color, "1" to "3"
// and "true" force it; anything else leaves the decision to fatih/color, which
// honours NO_COLOR and whether stdout is a terminal.
func GetColorModeFromEnv() ColorMode {
	switch forceColor := os.Getenv("FORCE_COLOR"); forceColor {
	case "false", "0":
		return ColorModeSuppressed
	case "true", "1", "2", "3":
		return ColorModeForced
	default:
		if IsCI && !IsTTY {
			return ColorModeSuppressed
		}
		return ColorModeUndefined
	}
}

func applyColorMode(colorMode ColorMode) ColorMode {
	switch colorMode {
	case ColorModeForced:
		color.NoColor = false
	case ColorModeSuppressed:
		color.NoColor = true
	}

	if color.NoColor {
		return ColorModeSuppressed
	}
	return ColorModeForced
}
