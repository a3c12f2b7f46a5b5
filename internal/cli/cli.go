// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command dispatch for the wayfind CLI.
//
// The binary is a thin wrapper: main parses nothing and exits with
// whatever Run returns. All command handlers live in *_cmd.go files and
// return errors; the dispatcher maps errors to exit codes.

package cli

import (
	"fmt"
	"os"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Command identifies a top-level CLI command.
type Command string

const (
	CmdValidate Command = "validate"
	CmdShow     Command = "show"
	CmdGet      Command = "get"
	CmdExplain  Command = "explain"
	CmdWatch    Command = "watch"
	CmdInit     Command = "init"
	CmdVersion  Command = "version"
	CmdHelp     Command = "help"
)

const usage = `wayfind - routing engine configuration toolkit

Usage:
  wayfind <command> [arguments]

Commands:
  validate <file>        Parse and validate a configuration document
  show <file>            Pretty-print a configuration with highlighting
  get <file> <key>       Look up a value by dotted key path
  explain [section]      Describe the configuration schema
  watch <file>           Revalidate the document whenever it changes
  init [file]            Write a starter configuration document
  version                Print the wayfind version
  help                   Show this help

Common flags:
  --json                 Machine-readable JSON output (validate, get)
  --quiet                Suppress the report, exit code only (validate)
  --resolve-paths        Resolve relative *_file paths (show)
  --force                Overwrite an existing file (init)
  --interval <dur>       Minimum delay between reloads (watch, default 500ms)

Exit codes:
  0  success
  1  general error
  2  usage error
  3  configuration error
  4  filesystem error
`

// Run dispatches a command line and returns the process exit code.
func Run(argv []string) int {
	if len(argv) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return ExitUsageError
	}

	cmd := Command(argv[0])
	args := NewArgParser(argv[1:])

	var err error
	switch cmd {
	case CmdValidate:
		err = runValidate(args)
	case CmdShow:
		err = runShow(args)
	case CmdGet:
		err = runGet(args)
	case CmdExplain:
		err = runExplain(args)
	case CmdWatch:
		err = runWatch(args)
	case CmdInit:
		err = runInit(args)
	case CmdVersion:
		fmt.Printf("wayfind %s\n", Version)
		return ExitSuccess
	case CmdHelp, "--help", "-h":
		fmt.Print(usage)
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "wayfind: unknown command %q\n\n%s", argv[0], usage)
		return ExitUsageError
	}

	if err != nil {
		code := exitCodeFor(err)
		if code == ExitUsageError {
			fmt.Fprintf(os.Stderr, "%s\n\n%s", ErrorStyle.Render("error: "+err.Error()), usage)
		} else {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("error: ")+err.Error())
		}
		return code
	}
	return ExitSuccess
}
