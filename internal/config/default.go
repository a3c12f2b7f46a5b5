// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// default.go - Built-in default configuration document.

package config

import (
	_ "embed"
	"os"
	"strconv"
	"strings"
)

// defaultDocument is the default parameter set for running the engine
// against an OSM-derived road network. It doubles as the reference
// example of the document format.
//
//go:embed default.toml
var defaultDocument []byte

// DefaultDocument returns the raw bytes of the built-in default document,
// suitable for writing a starter config file.
func DefaultDocument() []byte {
	out := make([]byte, len(defaultDocument))
	copy(out, defaultDocument)
	return out
}

// Default returns the built-in default configuration, already validated.
// The embedded document is compiled into the binary, so a failure here is
// a build defect, not a runtime condition.
func Default() *Config {
	cfg, err := Parse(defaultDocument)
	if err != nil {
		panic("config: embedded default document does not parse: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		panic("config: embedded default document does not validate: " + err.Error())
	}
	return cfg
}

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported environment variables:
//   - WAYFIND_PARALLELISM: overrides parallelism
//   - WAYFIND_VERBOSE: set to "1" or "true" to override graph.verbose
//
// The loader itself never consults the environment. Callers that apply
// overrides must validate the result, since an override can invalidate
// an otherwise valid document.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("WAYFIND_PARALLELISM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Parallelism = n
		}
	}
	if v := os.Getenv("WAYFIND_VERBOSE"); v != "" {
		c.Graph.Verbose = v == "1" || strings.EqualFold(v, "true")
	}
}
