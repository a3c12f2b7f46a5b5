// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Typed validation errors for wayfind configuration documents.
//
// Every error carries the full dotted key path to the offending value
// (e.g. "access.turn_delay_model.table.u_turn") so a document can be
// corrected without reading this source.
//
// ERROR HANDLING: Errors must not be silently ignored

package config

import (
	"fmt"
	"strings"
)

// ParseError indicates the document is not well-formed TOML, or that a
// value could not be decoded into its declared shape at all. Nothing
// beyond the reported position was examined.
type ParseError struct {
	// File is the path the document was read from, or "" when parsing
	// from memory.
	File string
	Err  error
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("parse error: %v", e.Err)
	}
	return fmt.Sprintf("parse error in %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingSectionError indicates a required top-level section (graph,
// traversal, access, cost, plugin) is absent from the document.
type MissingSectionError struct {
	Section string
}

func (e *MissingSectionError) Error() string {
	return fmt.Sprintf("%s: required section is missing", e.Section)
}

// UnknownVariantError indicates a `type` discriminator (or another closed
// enum value) is not a member of its allowed set.
type UnknownVariantError struct {
	// Path is the dotted key path of the discriminator field.
	Path string
	// Value is the unrecognized value found in the document.
	Value string
	// Allowed is the closed set of accepted values.
	Allowed []string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("%s: unknown value %q, must be one of: %s",
		e.Path, e.Value, strings.Join(e.Allowed, ", "))
}

// IncompleteTurnTableError indicates the turn delay table does not cover
// every turn category.
type IncompleteTurnTableError struct {
	// Path is the dotted key path of the table.
	Path string
	// Missing lists the absent categories in canonical order.
	Missing []string
}

func (e *IncompleteTurnTableError) Error() string {
	return fmt.Sprintf("%s: missing turn categories: %s",
		e.Path, strings.Join(e.Missing, ", "))
}

// InvalidValueError indicates a value is present but unusable: wrong type,
// out of range, an unknown key, or a missing required key.
type InvalidValueError struct {
	Path string
	// Value is the offending value, nil when the key is absent entirely.
	Value any
	// Reason describes the constraint that was violated.
	Reason string
}

func (e *InvalidValueError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("%s: invalid value %v: %s", e.Path, e.Value, e.Reason)
}

// ValidationErrors collects every finding from a validation pass. The
// loader reports all problems at once rather than stopping at the first.
type ValidationErrors []error

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual findings to errors.Is and errors.As.
func (e ValidationErrors) Unwrap() []error { return e }

// orNil returns the collection as an error, or nil when empty. A typed
// nil slice must not escape as a non-nil error.
func (e ValidationErrors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
