// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// args.go - Unified argument parsing for all wayfind commands.
//
// Every command shares one parser so flags behave identically everywhere:
//   - Long flags: --flag value or --flag=value
//   - Boolean flags: --flag (no value needed)
//   - Positional arguments: arguments without flags

package cli

import (
	"strconv"
	"strings"
	"time"
)

// ArgParser holds the parsed form of a command's arguments.
type ArgParser struct {
	flags      map[string]string
	boolFlags  map[string]bool
	positional []string
}

// NewArgParser parses raw arguments.
//
// Example:
//
//	args := NewArgParser([]string{"config.toml", "--json", "--interval=2s"})
//	args.Positional(0)       // "config.toml"
//	args.BoolFlag("json")    // true
//	args.Flag("interval")    // "2s"
func NewArgParser(raw []string) *ArgParser {
	p := &ArgParser{
		flags:     make(map[string]string),
		boolFlags: make(map[string]bool),
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]
		if len(arg) == 0 || arg[0] != '-' {
			p.positional = append(p.positional, arg)
			continue
		}

		name := strings.TrimLeft(arg, "-")

		// --flag=value form
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			value := name[eq+1:]
			name = name[:eq]
			if value == "true" || value == "false" {
				p.boolFlags[name] = value == "true"
			} else {
				p.flags[name] = value
			}
			continue
		}

		// --flag value form, when the next argument is not a flag
		if i+1 < len(raw) && len(raw[i+1]) > 0 && raw[i+1][0] != '-' && flagTakesValue(name) {
			p.flags[name] = raw[i+1]
			i++
			continue
		}

		p.boolFlags[name] = true
	}

	return p
}

// valueFlags are the flags that consume the following argument. Anything
// else with no "=value" is treated as boolean, so positional arguments
// after flags like --json are not swallowed.
var valueFlags = map[string]bool{
	"interval": true,
	"output":   true,
	"o":        true,
}

func flagTakesValue(name string) bool { return valueFlags[name] }

// Flag returns the value of a string flag, or "".
func (p *ArgParser) Flag(name string) string { return p.flags[name] }

// BoolFlag returns true if the boolean flag was set.
func (p *ArgParser) BoolFlag(name string) bool { return p.boolFlags[name] }

// DurationFlag returns the flag parsed as a duration, or fallback.
func (p *ArgParser) DurationFlag(name string, fallback time.Duration) time.Duration {
	if v := p.flags[name]; v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		// bare seconds, e.g. --interval 2
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	return fallback
}

// Positional returns the i-th positional argument, or "".
func (p *ArgParser) Positional(i int) string {
	if i < 0 || i >= len(p.positional) {
		return ""
	}
	return p.positional[i]
}

// PositionalCount returns the number of positional arguments.
func (p *ArgParser) PositionalCount() int { return len(p.positional) }
