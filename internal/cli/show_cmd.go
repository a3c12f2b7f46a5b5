// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// show_cmd.go - wayfind show: pretty-print a configuration document.
//
// The document is parsed, validated, optionally path-resolved, and
// re-encoded, so the printed form is the canonical shape regardless of
// how the source file was formatted.

package cli

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/jeranaias/wayfind/internal/config"
)

// runShow handles `wayfind show <file> [--resolve-paths]`.
func runShow(args *ArgParser) error {
	path := args.Positional(0)
	if path == "" {
		return usageErrorf("show requires a file argument")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if args.BoolFlag("resolve-paths") {
		cfg.NormalizeFilePaths(filepath.Dir(path))
	}

	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	fmt.Print(highlightTOML(buf.String()))
	return nil
}

// highlightTOML applies syntax highlighting using the chroma library.
// Falls back to the plain text when highlighting is unavailable or
// color output is disabled.
func highlightTOML(doc string) string {
	if !ColorEnabled() {
		return doc
	}

	lexer := lexers.Get("toml")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, doc)
	if err != nil {
		return doc
	}

	var out strings.Builder
	if err := formatter.Format(&out, style, iterator); err != nil {
		return doc
	}
	return out.String()
}
