// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// get_cmd.go - wayfind get: look up one value by dotted key path.
//
// Paths mirror the TOML structure, with numeric indices for plugin
// chains: `wayfind get config.toml plugin.output_plugins.1.type`.

package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/wayfind/internal/config"
)

// runGet handles `wayfind get <file> <key> [--json]`.
func runGet(args *ArgParser) error {
	path := args.Positional(0)
	key := args.Positional(1)
	if path == "" || key == "" {
		return usageErrorf("get requires a file and a key argument")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return err
	}

	value, err := cfg.Get(key)

	if args.BoolFlag("json") {
		report := newReport(path)
		report.Key = key
		if err != nil {
			report.addError(err)
		} else {
			report.Value = value
		}
		if werr := report.write(os.Stdout); werr != nil {
			return werr
		}
		return err
	}

	if err != nil {
		return err
	}
	fmt.Printf("%v\n", value)
	return nil
}
