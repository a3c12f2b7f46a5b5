// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// validate.go - Semantic validation of wayfind configuration documents.
//
// Validation is a pure function of the parsed document. It either accepts
// the whole Config or reports every finding at once; there is no partial
// success. File-reference fields are checked for well-formed path syntax
// only - existence is the engine's concern at run time.

package config

import (
	"fmt"
	"sort"
	"strings"
)

func inputPluginPath(i int) string  { return fmt.Sprintf("plugin.input_plugins[%d]", i) }
func outputPluginPath(i int) string { return fmt.Sprintf("plugin.output_plugins[%d]", i) }

// Validate enforces the semantic rules of the configuration contract and
// returns a ValidationErrors collection, or nil when the document is
// acceptable. Structural findings recorded during Parse (unknown
// discriminators, unknown keys, missing sections) are included.
func (c *Config) Validate() error {
	errs := append(ValidationErrors{}, c.findings...)

	// run parameters
	if c.Parallelism < 1 {
		errs = append(errs, &InvalidValueError{
			Path: "parallelism", Value: c.Parallelism, Reason: "must be at least 1",
		})
	}
	errs = appendEnum(errs, "search_orientation", c.SearchOrientation, searchOrientations)

	// graph
	if c.hasSection("graph") {
		errs = appendPath(errs, "graph.edge_list_input_file", c.Graph.EdgeListInputFile)
		errs = appendPath(errs, "graph.vertex_list_input_file", c.Graph.VertexListInputFile)
	}

	errs = c.validateTraversal(errs)
	errs = c.validateAccess(errs)
	errs = c.validateCost(errs)
	errs = c.validatePlugins(errs)

	return errs.orNil()
}

func (c *Config) validateTraversal(errs ValidationErrors) ValidationErrors {
	if c.Traversal == nil {
		return c.missingUnlessReported(errs, "traversal")
	}
	switch t := c.Traversal.(type) {
	case *DistanceTraversal:
		errs = appendEnum(errs, "traversal.distance_unit", t.DistanceUnit, distanceUnits)
	case *SpeedTableTraversal:
		errs = appendPath(errs, "traversal.speed_table_input_file", t.SpeedTableInputFile)
		errs = appendEnum(errs, "traversal.speed_unit", t.SpeedUnit, speedUnits)
	}
	return errs
}

func (c *Config) validateAccess(errs ValidationErrors) ValidationErrors {
	if c.Access == nil {
		return c.missingUnlessReported(errs, "access")
	}
	td, ok := c.Access.(*TurnDelayAccess)
	if !ok {
		return errs
	}
	errs = appendPath(errs, "access.edge_heading_input_file", td.EdgeHeadingInputFile)
	if td.TurnDelayModel == nil {
		// parse already reported the missing or unknown model
		return errs
	}
	model, ok := td.TurnDelayModel.(*TabularDiscreteTurnDelay)
	if !ok {
		return errs
	}
	errs = appendEnum(errs, "access.turn_delay_model.time_unit", model.TimeUnit, timeUnits)
	return validateTurnTable(errs, "access.turn_delay_model.table", model.Table)
}

// validateTurnTable checks that the table covers every turn category,
// carries no stray keys, and holds only non-negative delays.
func validateTurnTable(errs ValidationErrors, path string, table TurnDelayTable) ValidationErrors {
	var missing []string
	for _, category := range TurnCategories {
		value, ok := table[category]
		if !ok {
			missing = append(missing, category)
			continue
		}
		if value < 0 {
			errs = append(errs, &InvalidValueError{
				Path: path + "." + category, Value: value, Reason: "turn delay must be non-negative",
			})
		}
	}
	if len(missing) > 0 {
		errs = append(errs, &IncompleteTurnTableError{Path: path, Missing: missing})
	}

	var unknown []string
	for key := range table {
		if !contains(TurnCategories, key) {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		errs = append(errs, &InvalidValueError{Path: path + "." + key, Reason: "unknown key"})
	}
	return errs
}

func (c *Config) validateCost(errs ValidationErrors) ValidationErrors {
	if !c.hasSection("cost") {
		return errs
	}
	if len(c.Cost.VehicleRates) == 0 {
		errs = append(errs, &InvalidValueError{
			Path: "cost.vehicle_rates", Reason: "at least one vehicle rate is required",
		})
	}
	for _, name := range sortedKeys(c.Cost.VehicleRates) {
		if rate, ok := c.Cost.VehicleRates[name].(*FactorRate); ok && rate.Factor < 0 {
			errs = append(errs, &InvalidValueError{
				Path: "cost.vehicle_rates." + name + ".factor", Value: rate.Factor,
				Reason: "rate factor must be non-negative",
			})
		}
	}

	if len(c.Cost.Weights) == 0 {
		errs = append(errs, &InvalidValueError{
			Path: "cost.weights", Reason: "at least one weight is required",
		})
	} else {
		positive := false
		for _, name := range sortedKeys(c.Cost.Weights) {
			w := c.Cost.Weights[name]
			if w < 0 {
				errs = append(errs, &InvalidValueError{
					Path: "cost.weights." + name, Value: w, Reason: "weight must be non-negative",
				})
			}
			if w > 0 {
				positive = true
			}
		}
		if !positive {
			errs = append(errs, &InvalidValueError{
				Path: "cost.weights", Reason: "at least one weight must be positive",
			})
		}
	}

	if c.Cost.CostAggregation != "" && !contains(costAggregations, c.Cost.CostAggregation) {
		errs = append(errs, &UnknownVariantError{
			Path: "cost.cost_aggregation", Value: c.Cost.CostAggregation, Allowed: costAggregations,
		})
	}
	return errs
}

func (c *Config) validatePlugins(errs ValidationErrors) ValidationErrors {
	for i, plugin := range c.Plugin.InputPlugins {
		path := inputPluginPath(i)
		switch p := plugin.(type) {
		case *VertexRTreePlugin:
			errs = appendPath(errs, path+".vertices_input_file", p.VerticesInputFile)
			if p.DistanceTolerance < 0 {
				errs = append(errs, &InvalidValueError{
					Path: path + ".distance_tolerance", Value: p.DistanceTolerance,
					Reason: "distance tolerance must be non-negative",
				})
			}
			errs = appendEnum(errs, path+".distance_unit", p.DistanceUnit, distanceUnits)
		case *GridSearchPlugin:
			// no parameters beyond the discriminator
		case *LoadBalancerPlugin:
			if p.WeightHeuristic == nil {
				// parse already reported the missing or unknown heuristic
				continue
			}
			if h, ok := p.WeightHeuristic.(*CustomHeuristic); ok {
				hpath := path + ".weight_heuristic.weights"
				if len(h.Weights) == 0 {
					errs = append(errs, &InvalidValueError{
						Path: hpath, Reason: "at least one weight is required",
					})
				}
				for _, name := range sortedKeys(h.Weights) {
					if h.Weights[name] < 0 {
						errs = append(errs, &InvalidValueError{
							Path: hpath + "." + name, Value: h.Weights[name],
							Reason: "weight must be non-negative",
						})
					}
				}
			}
		}
	}

	for i, plugin := range c.Plugin.OutputPlugins {
		path := outputPluginPath(i)
		switch p := plugin.(type) {
		case *SummaryPlugin:
			// no parameters beyond the discriminator
		case *TraversalPlugin:
			errs = appendPath(errs, path+".geometry_input_file", p.GeometryInputFile)
			if p.Route != "" && !contains(routeFormats, p.Route) {
				errs = append(errs, &UnknownVariantError{
					Path: path + ".route", Value: p.Route, Allowed: routeFormats,
				})
			}
		case *UUIDPlugin:
			errs = appendPath(errs, path+".uuid_input_file", p.UUIDInputFile)
		}
	}
	return errs
}

// =============================================================================
// HELPERS
// =============================================================================

// hasSection reports whether the section is present, judged by the absence
// of a MissingSectionError finding. Configs built in code (not parsed)
// carry no findings and are treated as fully present.
func (c *Config) hasSection(name string) bool {
	for _, err := range c.findings {
		if ms, ok := err.(*MissingSectionError); ok && ms.Section == name {
			return false
		}
	}
	return true
}

// missingUnlessReported records a MissingSectionError for a nil variant
// section, unless parse already reported why the section is unusable.
func (c *Config) missingUnlessReported(errs ValidationErrors, section string) ValidationErrors {
	if !c.hasSection(section) {
		return errs // parse finding already covers it
	}
	for _, err := range c.findings {
		if pathOf(err) == section || strings.HasPrefix(pathOf(err), section+".") {
			return errs
		}
	}
	return append(errs, &MissingSectionError{Section: section})
}

// pathOf extracts the dotted path from a typed finding, or "".
func pathOf(err error) string {
	switch e := err.(type) {
	case *UnknownVariantError:
		return e.Path
	case *InvalidValueError:
		return e.Path
	case *IncompleteTurnTableError:
		return e.Path
	}
	return ""
}

// appendEnum checks membership of a closed string set. An empty value is
// reported as a missing key rather than an unknown variant.
func appendEnum(errs ValidationErrors, path, value string, allowed []string) ValidationErrors {
	if value == "" {
		return append(errs, &InvalidValueError{Path: path, Reason: "missing required key"})
	}
	if !contains(allowed, value) {
		return append(errs, &UnknownVariantError{Path: path, Value: value, Allowed: allowed})
	}
	return errs
}

// appendPath checks file-reference fields for well-formed path syntax.
// Existence and readability are explicitly out of scope.
func appendPath(errs ValidationErrors, path, value string) ValidationErrors {
	switch {
	case value == "":
		return append(errs, &InvalidValueError{Path: path, Reason: "missing required key"})
	case strings.ContainsRune(value, 0):
		return append(errs, &InvalidValueError{Path: path, Value: value, Reason: "path contains a NUL byte"})
	case strings.HasSuffix(value, "/"):
		return append(errs, &InvalidValueError{Path: path, Value: value, Reason: "path refers to a directory"})
	}
	return errs
}

func contains(set []string, value string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
