// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/wayfind/internal/config"
)

// writeConfig drops a document into a temp dir and returns its path.
func writeConfig(t *testing.T, doc []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, doc, 0o644))
	return path
}

func TestArgParser(t *testing.T) {
	args := NewArgParser([]string{"config.toml", "--json", "--interval=2s", "parallelism"})

	assert.Equal(t, 2, args.PositionalCount())
	assert.Equal(t, "config.toml", args.Positional(0))
	assert.Equal(t, "parallelism", args.Positional(1))
	assert.Equal(t, "", args.Positional(2))
	assert.True(t, args.BoolFlag("json"))
	assert.False(t, args.BoolFlag("force"))
	assert.Equal(t, "2s", args.Flag("interval"))
	assert.Equal(t, 2*time.Second, args.DurationFlag("interval", time.Minute))
}

func TestArgParser_ValueFlagConsumesNext(t *testing.T) {
	args := NewArgParser([]string{"--interval", "3", "config.toml"})

	assert.Equal(t, 3*time.Second, args.DurationFlag("interval", time.Minute))
	assert.Equal(t, "config.toml", args.Positional(0))
}

func TestArgParser_BoolFlagDoesNotSwallowPositional(t *testing.T) {
	args := NewArgParser([]string{"--json", "config.toml"})

	assert.True(t, args.BoolFlag("json"))
	assert.Equal(t, "config.toml", args.Positional(0))
}

func TestRun_ExitCodes(t *testing.T) {
	valid := writeConfig(t, config.DefaultDocument())
	invalid := writeConfig(t, []byte(`parallelism = "not a number"`))

	tests := []struct {
		name string
		argv []string
		want int
	}{
		{"no arguments", nil, ExitUsageError},
		{"unknown command", []string{"frobnicate"}, ExitUsageError},
		{"validate without file", []string{"validate"}, ExitUsageError},
		{"validate valid", []string{"validate", valid}, ExitSuccess},
		{"validate invalid", []string{"validate", invalid}, ExitConfigError},
		{"validate missing file", []string{"validate", valid + ".nope"}, ExitIOError},
		{"get valid key", []string{"get", valid, "parallelism"}, ExitSuccess},
		{"get without key", []string{"get", valid}, ExitUsageError},
		{"show valid", []string{"show", valid}, ExitSuccess},
		{"validate quiet invalid", []string{"validate", invalid, "--quiet"}, ExitConfigError},
		{"explain", []string{"explain"}, ExitSuccess},
		{"explain section", []string{"explain", "cost"}, ExitSuccess},
		{"explain unknown section", []string{"explain", "wormholes"}, ExitUsageError},
		{"version", []string{"version"}, ExitSuccess},
		{"help", []string{"help"}, ExitSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Run(tt.argv))
		})
	}
}

func TestRun_InitRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wayfind.toml")

	require.Equal(t, ExitSuccess, Run([]string{"init", path}))

	// freshly written starter must validate
	require.Equal(t, ExitSuccess, Run([]string{"validate", path}))

	// second init refuses, --force overwrites
	assert.Equal(t, ExitUsageError, Run([]string{"init", path}))
	assert.Equal(t, ExitSuccess, Run([]string{"init", path, "--force"}))
}

func TestReport_FlattensValidationErrors(t *testing.T) {
	err := config.ValidationErrors{
		&config.MissingSectionError{Section: "graph"},
		&config.UnknownVariantError{Path: "traversal.type", Value: "teleport"},
		&config.InvalidValueError{Path: "parallelism", Value: 0, Reason: "must be at least 1"},
	}

	report := newReport("config.toml")
	report.addError(err)

	require.False(t, report.Valid)
	require.Len(t, report.Findings, 3)
	assert.Equal(t, "missing_section", report.Findings[0].Kind)
	assert.Equal(t, "unknown_variant", report.Findings[1].Kind)
	assert.Equal(t, "traversal.type", report.Findings[1].Path)
	assert.Equal(t, "invalid_value", report.Findings[2].Kind)

	var buf bytes.Buffer
	require.NoError(t, report.write(&buf))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.NotEmpty(t, decoded.ReportID)
	assert.Len(t, decoded.Findings, 3)
}

// TestRun_EnvOverridesAreValidated verifies that an environment override
// is subject to the same validation rules as the document itself.
func TestRun_EnvOverridesAreValidated(t *testing.T) {
	valid := writeConfig(t, config.DefaultDocument())

	t.Setenv("WAYFIND_PARALLELISM", "0")
	assert.Equal(t, ExitConfigError, Run([]string{"validate", valid}))
	assert.Equal(t, ExitConfigError, Run([]string{"get", valid, "parallelism"}))

	t.Setenv("WAYFIND_PARALLELISM", "8")
	assert.Equal(t, ExitSuccess, Run([]string{"validate", valid}))
	assert.Equal(t, ExitSuccess, Run([]string{"get", valid, "parallelism"}))
}

func TestExtractSection(t *testing.T) {
	section, ok := extractSection(schemaDoc, "cost")
	require.True(t, ok)
	assert.Contains(t, section, "cost_aggregation")
	assert.NotContains(t, section, "output_plugins")

	_, ok = extractSection(schemaDoc, "wormholes")
	assert.False(t, ok)
}

// TestSchemaDoc_UsesDocumentKeyNames checks the schema reference against
// the key names the loader actually accepts.
func TestSchemaDoc_UsesDocumentKeyNames(t *testing.T) {
	assert.Contains(t, schemaDoc, "`search_orientation`")
	assert.NotContains(t, schemaDoc, "search.orientation")
	assert.Contains(t, schemaDoc, "`verbose`")

	// every key the default document defines should be documented
	for _, key := range []string{
		"parallelism", "edge_list_input_file", "vertex_list_input_file",
		"distance_unit", "turn_delay_model", "vehicle_rates", "weights",
		"input_plugins", "output_plugins", "uuid_input_file",
	} {
		assert.Contains(t, schemaDoc, key, "schema.md is missing %s", key)
	}
}

func TestExitCodeFor(t *testing.T) {
	assert.Equal(t, ExitSuccess, exitCodeFor(nil))
	assert.Equal(t, ExitUsageError, exitCodeFor(usageErrorf("bad flag")))
	assert.Equal(t, ExitConfigError, exitCodeFor(&config.MissingSectionError{Section: "cost"}))
	assert.Equal(t, ExitConfigError, exitCodeFor(config.ValidationErrors{
		&config.InvalidValueError{Path: "cost.weights.distance", Value: -1.0, Reason: "must be non-negative"},
	}))
	assert.Equal(t, ExitGeneralError, exitCodeFor(os.ErrPermission))
}
