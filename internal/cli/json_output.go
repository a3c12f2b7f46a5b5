// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - Machine-readable report envelope for scripted use.
//
// The --json flag on validate and get emits one of these instead of the
// styled human output. Every report carries a unique ID so pipeline logs
// can correlate repeated runs over the same file.

package cli

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/wayfind/internal/config"
)

// Finding is the JSON form of a single validation problem.
type Finding struct {
	// Path is the dotted key path the problem was found at, when known
	Path string `json:"path,omitempty"`
	// Kind names the problem class (parse, missing_section, ...)
	Kind string `json:"kind"`
	// Message is the human-readable description
	Message string `json:"message"`
}

// Report is the JSON envelope written by --json commands.
type Report struct {
	ReportID  string    `json:"report_id"`
	Timestamp time.Time `json:"timestamp"`
	File      string    `json:"file,omitempty"`
	Valid     bool      `json:"valid"`
	Findings  []Finding `json:"findings,omitempty"`
	// Key and Value are set by `get --json`
	Key   string `json:"key,omitempty"`
	Value any    `json:"value,omitempty"`
}

// newReport builds the envelope skeleton.
func newReport(file string) *Report {
	return &Report{
		ReportID:  uuid.NewString(),
		Timestamp: time.Now().UTC(),
		File:      file,
		Valid:     true,
	}
}

// addError flattens err into findings. ValidationErrors expands to one
// finding per contained error.
func (r *Report) addError(err error) {
	if err == nil {
		return
	}
	r.Valid = false

	var all config.ValidationErrors
	if errors.As(err, &all) {
		for _, e := range all {
			r.Findings = append(r.Findings, findingFor(e))
		}
		return
	}
	r.Findings = append(r.Findings, findingFor(err))
}

// findingFor classifies a single config error.
func findingFor(err error) Finding {
	switch e := err.(type) {
	case *config.ParseError:
		return Finding{Kind: "parse", Message: e.Error()}
	case *config.MissingSectionError:
		return Finding{Path: e.Section, Kind: "missing_section", Message: e.Error()}
	case *config.UnknownVariantError:
		return Finding{Path: e.Path, Kind: "unknown_variant", Message: e.Error()}
	case *config.IncompleteTurnTableError:
		return Finding{Path: e.Path, Kind: "incomplete_turn_table", Message: e.Error()}
	case *config.InvalidValueError:
		return Finding{Path: e.Path, Kind: "invalid_value", Message: e.Error()}
	default:
		return Finding{Kind: "error", Message: err.Error()}
	}
}

// write emits the report as indented JSON.
func (r *Report) write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
