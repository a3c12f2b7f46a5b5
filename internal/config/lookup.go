// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// lookup.go - Dot-notation access and path normalization.

package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
)

// Get retrieves a configuration value using dot notation, addressing
// fields by their document key names (e.g. "graph.verbose",
// "access.turn_delay_model.table.u_turn", "plugin.input_plugins.0.type").
// Slice elements are addressed by numeric index.
func (c *Config) Get(key string) (any, error) {
	parts := strings.Split(key, ".")
	v := reflect.ValueOf(c)
	for i, part := range parts {
		prefix := strings.Join(parts[:i+1], ".")
		var err error
		if v, err = step(v, part, prefix); err != nil {
			return nil, err
		}
	}
	v = indirect(v)
	if !v.IsValid() {
		return nil, fmt.Errorf("unknown key: %s", key)
	}
	return v.Interface(), nil
}

// step descends one path segment.
func step(v reflect.Value, part, prefix string) (reflect.Value, error) {
	v = indirect(v)
	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			if tomlTag(t.Field(i)) == part {
				return v.Field(i), nil
			}
		}
		return reflect.Value{}, fmt.Errorf("unknown key: %s", prefix)
	case reflect.Map:
		elem := v.MapIndex(reflect.ValueOf(part))
		if !elem.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown key: %s", prefix)
		}
		return elem, nil
	case reflect.Slice:
		idx, err := strconv.Atoi(part)
		if err != nil || idx < 0 || idx >= v.Len() {
			return reflect.Value{}, fmt.Errorf("unknown key: %s", prefix)
		}
		return v.Index(idx), nil
	default:
		return reflect.Value{}, fmt.Errorf("%s does not address a table", prefix)
	}
}

// indirect unwraps pointers and interfaces.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// tomlTag returns the document key name of a struct field, or "" for
// fields that do not appear in the document.
func tomlTag(f reflect.StructField) string {
	if f.PkgPath != "" {
		return ""
	}
	tag := f.Tag.Get("toml")
	if tag == "" || tag == "-" {
		return ""
	}
	if i := strings.IndexByte(tag, ','); i >= 0 {
		tag = tag[:i]
	}
	return tag
}

// NormalizeFilePaths resolves every relative *_input_file value against
// root, typically the directory containing the document. The resolution
// is purely lexical; no file existence is checked.
func (c *Config) NormalizeFilePaths(root string) {
	normalizePaths(reflect.ValueOf(c).Elem(), root)
}

func normalizePaths(v reflect.Value, root string) {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if !v.IsNil() {
			normalizePaths(v.Elem(), root)
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			field := v.Field(i)
			tag := tomlTag(t.Field(i))
			if tag == "" {
				continue
			}
			if field.Kind() == reflect.String && strings.HasSuffix(tag, "_input_file") {
				if p := field.String(); p != "" && !filepath.IsAbs(p) {
					field.SetString(filepath.Join(root, p))
				}
				continue
			}
			normalizePaths(field, root)
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			normalizePaths(v.Index(i), root)
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			// variant values are pointers, so mutation reaches the
			// underlying struct even though map values are copies
			normalizePaths(iter.Value(), root)
		}
	}
}
