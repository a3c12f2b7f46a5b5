// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection and handling for the wayfind CLI.
//
// USABILITY: TTY detection for proper terminal handling
//
// Colors are disabled automatically for non-TTY output (piped,
// redirected), NO_COLOR (https://no-color.org/) is respected, and
// FORCE_COLOR overrides detection for CI systems that want color anyway.

package cli

import (
	"os"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsStdoutTTY returns true if stdout is a terminal. Use this to decide
// whether styled output is appropriate.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

const (
	// DefaultTerminalWidth is the fallback width when detection fails
	DefaultTerminalWidth = 80

	// MinTerminalWidth is the minimum width used for wrapping
	MinTerminalWidth = 40
)

// GetTerminalWidth returns the current terminal width, clamped to
// [MinTerminalWidth, ...) with DefaultTerminalWidth as fallback.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	if width < MinTerminalWidth {
		return MinTerminalWidth
	}
	return width
}

var (
	colorProfileOnce sync.Once
	colorProfile     termenv.Profile
)

// GetColorProfile returns the color profile output should use, honoring
// NO_COLOR, FORCE_COLOR, and TTY detection, in that order.
func GetColorProfile() termenv.Profile {
	colorProfileOnce.Do(func() {
		switch {
		case os.Getenv("NO_COLOR") != "":
			colorProfile = termenv.Ascii
		case os.Getenv("FORCE_COLOR") != "":
			colorProfile = termenv.ANSI256
		case !IsStdoutTTY():
			colorProfile = termenv.Ascii
		default:
			colorProfile = termenv.ColorProfile()
		}
	})
	return colorProfile
}

// ColorEnabled reports whether styled output is active.
func ColorEnabled() bool {
	return GetColorProfile() != termenv.Ascii
}
