// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// init_cmd.go - wayfind init: write a starter configuration document.
//
// The starter document is the canonical default, so a freshly written
// file always validates.

package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/wayfind/internal/config"
)

const defaultConfigPath = "wayfind.toml"

// runInit handles `wayfind init [file] [--force]`.
func runInit(args *ArgParser) error {
	path := args.Positional(0)
	if path == "" {
		path = defaultConfigPath
	}

	if _, err := os.Stat(path); err == nil {
		if !args.BoolFlag("force") {
			return usageErrorf("%s already exists (use --force to overwrite)", path)
		}
		fmt.Println(WarningStyle.Render("overwriting") + DimStyle.Render(" "+path))
	}

	if err := os.WriteFile(path, config.DefaultDocument(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Println(SuccessStyle.Render("wrote") + DimStyle.Render(" "+path))
	return nil
}
