// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// validate_cmd.go - wayfind validate: parse and validate a document.
//
// All problems are reported in one pass. A document with three mistakes
// produces three findings, not a fix-one-rerun loop.

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/jeranaias/wayfind/internal/config"
)

// runValidate handles `wayfind validate <file> [--json]`.
func runValidate(args *ArgParser) error {
	path := args.Positional(0)
	if path == "" {
		return usageErrorf("validate requires a file argument")
	}

	cfg, err := config.Load(path)
	if err == nil {
		// overrides can invalidate an otherwise valid document
		cfg.ApplyEnvOverrides()
		err = cfg.Validate()
	}

	if args.BoolFlag("json") {
		report := newReport(path)
		report.addError(err)
		if werr := report.write(os.Stdout); werr != nil {
			return werr
		}
		return err
	}

	// --quiet keeps the exit code contract and suppresses the report
	if args.BoolFlag("quiet") {
		return err
	}

	if err != nil {
		printFindings(path, err)
		return err
	}

	fmt.Println(SuccessStyle.Render("ok") + DimStyle.Render(" "+path))
	printSummary(cfg)
	return nil
}

// printFindings writes every problem in err, one line each, with the
// dotted key path highlighted.
func printFindings(path string, err error) {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("invalid")+DimStyle.Render(" "+path))

	var all config.ValidationErrors
	if !errors.As(err, &all) {
		all = config.ValidationErrors{err}
	}
	for _, e := range all {
		f := findingFor(e)
		if f.Path != "" {
			fmt.Fprintf(os.Stderr, "  %s %s\n", PathStyle.Render(f.Path), f.Message)
		} else {
			fmt.Fprintf(os.Stderr, "  %s\n", f.Message)
		}
	}
	fmt.Fprintln(os.Stderr, DimStyle.Render(fmt.Sprintf("%d finding(s)", len(all))))
}

// printSummary gives a one-glance overview of a valid document.
func printSummary(cfg *config.Config) {
	row := func(label, value string) {
		fmt.Println(LabelStyle.Render(label) + ValueStyle.Render(value))
	}
	row("parallelism", fmt.Sprintf("%d", cfg.Parallelism))
	row("search orientation", cfg.SearchOrientation)
	row("traversal", variantName(cfg.Traversal))
	row("access", variantName(cfg.Access))
	row("vehicle rates", fmt.Sprintf("%d", len(cfg.Cost.VehicleRates)))
	row("input plugins", fmt.Sprintf("%d", len(cfg.Plugin.InputPlugins)))
	row("output plugins", fmt.Sprintf("%d", len(cfg.Plugin.OutputPlugins)))
}

// variantName extracts the type discriminator of a tagged variant.
func variantName(v any) string {
	switch m := v.(type) {
	case *config.DistanceTraversal:
		return m.Type
	case *config.SpeedTableTraversal:
		return m.Type
	case *config.TurnDelayAccess:
		return m.Type
	case nil:
		return "(none)"
	default:
		return fmt.Sprintf("%T", v)
	}
}
