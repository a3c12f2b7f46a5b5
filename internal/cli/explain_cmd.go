// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// explain_cmd.go - wayfind explain: render the schema reference.
//
// The schema document is embedded in the binary so `explain` works
// offline. Markdown is rendered with glamour on a TTY and printed raw
// when piped, so `wayfind explain > schema.md` stays clean markdown.

package cli

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

//go:embed schema.md
var schemaDoc string

// runExplain handles `wayfind explain [section]`.
func runExplain(args *ArgParser) error {
	doc := schemaDoc
	if section := args.Positional(0); section != "" {
		extracted, ok := extractSection(schemaDoc, section)
		if !ok {
			return usageErrorf("no schema section matches %q", section)
		}
		doc = extracted
	}

	if !IsStdoutTTY() {
		fmt.Print(doc)
		return nil
	}
	fmt.Print(renderMarkdown(doc))
	return nil
}

// extractSection returns the `## ...` block whose heading contains name,
// matched case-insensitively so `explain cost` finds "## `[cost]`".
func extractSection(doc, name string) (string, bool) {
	name = strings.ToLower(name)
	lines := strings.Split(doc, "\n")

	var out []string
	inSection := false
	for _, line := range lines {
		if strings.HasPrefix(line, "## ") {
			if inSection {
				break
			}
			inSection = strings.Contains(strings.ToLower(line), name)
		}
		if inSection {
			out = append(out, line)
		}
	}
	if !inSection {
		return "", false
	}
	return strings.Join(out, "\n") + "\n", true
}

// renderMarkdown renders markdown for terminal display. Returns the
// original content if rendering fails.
func renderMarkdown(content string) string {
	width := GetTerminalWidth()
	if width > 100 {
		width = 100
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
