// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefault_MatchesReferenceDocument checks that the embedded default
// document yields the documented reference values.
func TestDefault_MatchesReferenceDocument(t *testing.T) {
	cfg := Default()

	if cfg.Parallelism != 2 {
		t.Errorf("parallelism = %d, want 2", cfg.Parallelism)
	}
	if cfg.SearchOrientation != "vertex" {
		t.Errorf("search_orientation = %q, want %q", cfg.SearchOrientation, "vertex")
	}
	if !cfg.Graph.Verbose {
		t.Error("graph.verbose should default to true")
	}

	dist, ok := cfg.Traversal.(*DistanceTraversal)
	if !ok {
		t.Fatalf("traversal = %T, want *DistanceTraversal", cfg.Traversal)
	}
	if dist.DistanceUnit != "miles" {
		t.Errorf("traversal.distance_unit = %q, want %q", dist.DistanceUnit, "miles")
	}

	rate, ok := cfg.Cost.VehicleRates["distance"].(*FactorRate)
	if !ok {
		t.Fatalf("cost.vehicle_rates.distance = %T, want *FactorRate", cfg.Cost.VehicleRates["distance"])
	}
	if rate.Factor != 0.655 {
		t.Errorf("cost.vehicle_rates.distance.factor = %v, want 0.655", rate.Factor)
	}

	if got := len(cfg.Plugin.InputPlugins); got != 3 {
		t.Fatalf("len(input_plugins) = %d, want 3", got)
	}
	if _, ok := cfg.Plugin.InputPlugins[0].(*VertexRTreePlugin); !ok {
		t.Errorf("input_plugins[0] = %T, want *VertexRTreePlugin", cfg.Plugin.InputPlugins[0])
	}
	if _, ok := cfg.Plugin.InputPlugins[1].(*GridSearchPlugin); !ok {
		t.Errorf("input_plugins[1] = %T, want *GridSearchPlugin", cfg.Plugin.InputPlugins[1])
	}
	lb, ok := cfg.Plugin.InputPlugins[2].(*LoadBalancerPlugin)
	if !ok {
		t.Fatalf("input_plugins[2] = %T, want *LoadBalancerPlugin", cfg.Plugin.InputPlugins[2])
	}
	if _, ok := lb.WeightHeuristic.(*HaversineHeuristic); !ok {
		t.Errorf("weight_heuristic = %T, want *HaversineHeuristic", lb.WeightHeuristic)
	}

	if got := len(cfg.Plugin.OutputPlugins); got != 3 {
		t.Fatalf("len(output_plugins) = %d, want 3", got)
	}
	if _, ok := cfg.Plugin.OutputPlugins[0].(*SummaryPlugin); !ok {
		t.Errorf("output_plugins[0] = %T, want *SummaryPlugin", cfg.Plugin.OutputPlugins[0])
	}
	if _, ok := cfg.Plugin.OutputPlugins[1].(*TraversalPlugin); !ok {
		t.Errorf("output_plugins[1] = %T, want *TraversalPlugin", cfg.Plugin.OutputPlugins[1])
	}
	if _, ok := cfg.Plugin.OutputPlugins[2].(*UUIDPlugin); !ok {
		t.Errorf("output_plugins[2] = %T, want *UUIDPlugin", cfg.Plugin.OutputPlugins[2])
	}
}

// TestLoad_FromFile loads the default document through the file path API.
func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, DefaultDocument(), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Parallelism != 2 {
		t.Errorf("parallelism = %d, want 2", cfg.Parallelism)
	}
}

// TestLoad_MalformedTOML verifies syntax errors surface as ParseError with
// the file path attached.
func TestLoad_MalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("parallelism = = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should fail on malformed TOML")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("Load() error = %T, want *ParseError", err)
	}
	if pe.File != path {
		t.Errorf("ParseError.File = %q, want %q", pe.File, path)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("WAYFIND_PARALLELISM", "8")
	t.Setenv("WAYFIND_VERBOSE", "false")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Parallelism != 8 {
		t.Errorf("parallelism = %d, want 8 from WAYFIND_PARALLELISM", cfg.Parallelism)
	}
	if cfg.Graph.Verbose {
		t.Error("graph.verbose should be false from WAYFIND_VERBOSE")
	}
}

func TestGet_DotNotation(t *testing.T) {
	cfg := Default()

	tests := []struct {
		key  string
		want any
	}{
		{"parallelism", 2},
		{"search_orientation", "vertex"},
		{"graph.verbose", true},
		{"traversal.distance_unit", "miles"},
		{"access.turn_delay_model.time_unit", "seconds"},
		{"access.turn_delay_model.table.u_turn", 9.5},
		{"cost.vehicle_rates.distance.factor", 0.655},
		{"cost.weights.distance", 1.0},
		{"plugin.input_plugins.1.type", "grid_search"},
		{"plugin.output_plugins.2.uuid_input_file", "vertices-uuids-enumerated.txt.gz"},
	}
	for _, tt := range tests {
		got, err := cfg.Get(tt.key)
		if err != nil {
			t.Errorf("Get(%q) error: %v", tt.key, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Get(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestGet_UnknownKey(t *testing.T) {
	cfg := Default()

	for _, key := range []string{"nope", "graph.nope", "plugin.input_plugins.9.type"} {
		if _, err := cfg.Get(key); err == nil {
			t.Errorf("Get(%q) should fail", key)
		}
	}
}

// TestNormalizeFilePaths resolves relative file references against the
// document's directory, including references inside plugin entries.
func TestNormalizeFilePaths(t *testing.T) {
	cfg := Default()
	cfg.NormalizeFilePaths("/data/denver")

	if got := cfg.Graph.EdgeListInputFile; got != "/data/denver/edges-compass.csv.gz" {
		t.Errorf("edge_list_input_file = %q", got)
	}
	rtree := cfg.Plugin.InputPlugins[0].(*VertexRTreePlugin)
	if got := rtree.VerticesInputFile; got != "/data/denver/vertices-compass.csv.gz" {
		t.Errorf("vertices_input_file = %q", got)
	}
	access := cfg.Access.(*TurnDelayAccess)
	if got := access.EdgeHeadingInputFile; got != "/data/denver/edges-headings-enumerated.txt.gz" {
		t.Errorf("edge_heading_input_file = %q", got)
	}

	// absolute paths are left alone
	cfg.NormalizeFilePaths("/elsewhere")
	if got := cfg.Graph.EdgeListInputFile; got != "/data/denver/edges-compass.csv.gz" {
		t.Errorf("absolute path was rewritten: %q", got)
	}
}
