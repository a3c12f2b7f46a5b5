// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Unified error handling for all wayfind CLI commands.
//
// STANDARDIZED PATTERN:
//   - command handlers ALWAYS return errors (never print and return nil)
//   - the dispatcher decides how to display them and which code to exit with
//
// ERROR HANDLING: Errors must not be silently ignored

package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/jeranaias/wayfind/internal/config"
)

// Exit codes for the wayfind CLI.
const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates the document failed to parse or validate
	ExitConfigError = 3
	// ExitIOError indicates a filesystem problem (unreadable file, ...)
	ExitIOError = 4
)

// UsageError marks a problem with how the command was invoked, as opposed
// to a problem with the document under inspection.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return e.Message }

// usageErrorf builds a UsageError.
func usageErrorf(format string, args ...any) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// exitCodeFor maps an error to the exit code contract above.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		return ExitUsageError
	}
	if isConfigError(err) {
		return ExitConfigError
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return ExitIOError
	}
	return ExitGeneralError
}

// isConfigError reports whether the error originates from the document
// rather than the environment.
func isConfigError(err error) bool {
	var (
		parse      *config.ParseError
		missing    *config.MissingSectionError
		variant    *config.UnknownVariantError
		incomplete *config.IncompleteTurnTableError
		invalid    *config.InvalidValueError
		all        config.ValidationErrors
	)
	return errors.As(err, &parse) ||
		errors.As(err, &missing) ||
		errors.As(err, &variant) ||
		errors.As(err, &incomplete) ||
		errors.As(err, &invalid) ||
		errors.As(err, &all)
}
