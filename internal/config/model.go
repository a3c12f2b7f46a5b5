// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// model.go - Typed data model for the wayfind engine configuration document.
//
// The document is a TOML tree. Several sections are tagged variants: a
// `type` discriminator selects the shape of the rest of the table. Each
// known discriminator gets its own struct, and unknown discriminators are
// rejected rather than defaulted. Keys not named by a variant's schema are
// also rejected, since accepting them would silently mask typos.

package config

// =============================================================================
// ROOT DOCUMENT
// =============================================================================

// Config is the root of a wayfind configuration document. It is built
// once by Load (or Parse), validated, and never mutated afterwards; the
// engine treats it as immutable for the duration of a run.
type Config struct {
	// Parallelism is the number of concurrent searches the engine may run.
	Parallelism int `toml:"parallelism"`
	// SearchOrientation selects vertex- or edge-oriented search.
	SearchOrientation string `toml:"search_orientation"`

	Graph     GraphConfig    `toml:"graph"`
	Traversal TraversalModel `toml:"traversal"`
	Access    AccessModel    `toml:"access"`
	Cost      CostConfig     `toml:"cost"`
	Plugin    PluginConfig   `toml:"plugin"`

	// findings holds structural problems discovered while materializing
	// tagged variants (unknown discriminators, unknown keys). They are
	// surfaced by Validate so that a single pass reports everything.
	findings ValidationErrors
}

// Search orientations accepted for Config.SearchOrientation.
var searchOrientations = []string{"vertex", "edge"}

// GraphConfig describes the static road network inputs.
type GraphConfig struct {
	// EdgeListInputFile is the compressed tabular edge list.
	EdgeListInputFile string `toml:"edge_list_input_file"`
	// VertexListInputFile is the compressed tabular vertex list.
	VertexListInputFile string `toml:"vertex_list_input_file"`
	// Verbose enables progress reporting while the engine loads the graph.
	Verbose bool `toml:"verbose"`
}

// =============================================================================
// TRAVERSAL MODEL (edge cost)
// =============================================================================

// TraversalModel produces a base cost for moving along a graph edge.
// Tagged variant: the `type` key selects the concrete model.
type TraversalModel interface {
	traversalModel()
}

// Discriminators accepted for the traversal section.
var traversalTypes = []string{"distance", "speed_table"}

// Distance units accepted wherever a distance_unit key appears.
var distanceUnits = []string{"miles", "kilometers", "meters"}

// DistanceTraversal costs each edge by its length.
type DistanceTraversal struct {
	Type         string `toml:"type"`
	DistanceUnit string `toml:"distance_unit"`
}

func (*DistanceTraversal) traversalModel() {}

// SpeedTableTraversal costs each edge by travel time, looking up a speed
// per edge from a table enumerated by edge id.
type SpeedTableTraversal struct {
	Type                string `toml:"type"`
	SpeedTableInputFile string `toml:"speed_table_input_file"`
	SpeedUnit           string `toml:"speed_unit"`
}

func (*SpeedTableTraversal) traversalModel() {}

// Speed units accepted for the speed_table traversal model.
var speedUnits = []string{"kph", "mph"}

// =============================================================================
// ACCESS MODEL (edge-to-edge transition cost)
// =============================================================================

// AccessModel produces an additional cost for transitioning between edges
// at a vertex. Tagged variant keyed by `type`.
type AccessModel interface {
	accessModel()
}

var accessTypes = []string{"turn_delay"}

// TurnDelayAccess penalizes transitions by turn category, classified from
// the headings of the incoming and outgoing edges.
type TurnDelayAccess struct {
	Type                 string         `toml:"type"`
	EdgeHeadingInputFile string         `toml:"edge_heading_input_file"`
	TurnDelayModel       TurnDelayModel `toml:"turn_delay_model"`
}

func (*TurnDelayAccess) accessModel() {}

// TurnDelayModel maps a turn category to a delay. Tagged variant keyed by
// `type`.
type TurnDelayModel interface {
	turnDelayModel()
}

var turnDelayModelTypes = []string{"tabular_discrete"}

// Time units accepted for turn delay values.
var timeUnits = []string{"seconds", "milliseconds", "minutes", "hours"}

// TabularDiscreteTurnDelay holds one delay per discrete turn category.
type TabularDiscreteTurnDelay struct {
	Type     string         `toml:"type"`
	TimeUnit string         `toml:"time_unit"`
	Table    TurnDelayTable `toml:"table"`
}

func (*TabularDiscreteTurnDelay) turnDelayModel() {}

// TurnDelayTable maps turn category names to non-negative delays. The
// categories are a fixed, closed set: every one must be present, and no
// other key is allowed.
type TurnDelayTable map[string]float64

// TurnCategories is the exhaustive set of turn angle buckets, in canonical
// order. The buckets are mutually exclusive classifications of the angle
// between an incoming and outgoing edge.
var TurnCategories = []string{
	"no_turn",
	"slight_right",
	"right",
	"sharp_right",
	"slight_left",
	"left",
	"sharp_left",
	"u_turn",
}

// =============================================================================
// COST MODEL
// =============================================================================

// CostConfig combines traversal outputs into a scalar cost.
type CostConfig struct {
	// VehicleRates converts traversal state dimensions (distance, time,
	// energy, ...) into costs, keyed by dimension name.
	VehicleRates map[string]VehicleRate `toml:"vehicle_rates"`
	// Weights assigns a relative weight per dimension when aggregating.
	// Weights are not required to sum to 1; normalization, if any, is the
	// engine's concern.
	Weights map[string]float64 `toml:"weights"`
	// CostAggregation combines the weighted dimension costs. Empty means
	// the engine default (sum).
	CostAggregation string `toml:"cost_aggregation,omitempty"`
}

var costAggregations = []string{"sum", "mul"}

// VehicleRate converts one traversal dimension into a cost. Tagged
// variant keyed by `type`.
type VehicleRate interface {
	vehicleRate()
}

var vehicleRateTypes = []string{"factor", "raw"}

// FactorRate multiplies the dimension value by a constant factor.
type FactorRate struct {
	Type   string  `toml:"type"`
	Factor float64 `toml:"factor"`
}

func (*FactorRate) vehicleRate() {}

// RawRate passes the dimension value through unchanged.
type RawRate struct {
	Type string `toml:"type"`
}

func (*RawRate) vehicleRate() {}

// =============================================================================
// PLUGIN CHAINS
// =============================================================================

// PluginConfig holds the ordered pre- and post-processing chains applied
// around a search. Order is load-bearing: plugins run sequentially in
// document order.
type PluginConfig struct {
	InputPlugins  []InputPlugin  `toml:"input_plugins"`
	OutputPlugins []OutputPlugin `toml:"output_plugins"`
}

// InputPlugin is a pre-processing step applied to each query before the
// search runs. Tagged variant keyed by `type`.
type InputPlugin interface {
	inputPlugin()
}

var inputPluginTypes = []string{"vertex_rtree", "grid_search", "load_balancer"}

// VertexRTreePlugin snaps query coordinates to the nearest graph vertex
// within a distance tolerance.
type VertexRTreePlugin struct {
	Type              string  `toml:"type"`
	VerticesInputFile string  `toml:"vertices_input_file"`
	DistanceTolerance float64 `toml:"distance_tolerance"`
	DistanceUnit      string  `toml:"distance_unit"`
}

func (*VertexRTreePlugin) inputPlugin() {}

// GridSearchPlugin expands a query containing a grid_search key into the
// cartesian product of its parameterizations.
type GridSearchPlugin struct {
	Type string `toml:"type"`
}

func (*GridSearchPlugin) inputPlugin() {}

// LoadBalancerPlugin estimates per-query workload so a batch can be
// distributed evenly across the engine's parallelism.
type LoadBalancerPlugin struct {
	Type            string          `toml:"type"`
	WeightHeuristic WeightHeuristic `toml:"weight_heuristic"`
}

func (*LoadBalancerPlugin) inputPlugin() {}

// WeightHeuristic estimates the relative cost of one query. Tagged
// variant keyed by `type`.
type WeightHeuristic interface {
	weightHeuristic()
}

var weightHeuristicTypes = []string{"haversine", "custom"}

// HaversineHeuristic weighs a query by great-circle distance between its
// origin and destination.
type HaversineHeuristic struct {
	Type string `toml:"type"`
}

func (*HaversineHeuristic) weightHeuristic() {}

// CustomHeuristic weighs a query by user-provided feature weights.
type CustomHeuristic struct {
	Type    string             `toml:"type"`
	Weights map[string]float64 `toml:"weights"`
}

func (*CustomHeuristic) weightHeuristic() {}

// OutputPlugin is a post-processing step applied to each search result.
// Tagged variant keyed by `type`.
type OutputPlugin interface {
	outputPlugin()
}

var outputPluginTypes = []string{"summary", "traversal", "uuid"}

// SummaryPlugin attaches aggregate route statistics to each result row.
type SummaryPlugin struct {
	Type string `toml:"type"`
}

func (*SummaryPlugin) outputPlugin() {}

// TraversalPlugin attaches route geometry to each result row, read from a
// geometry file enumerated by edge id.
type TraversalPlugin struct {
	Type string `toml:"type"`
	// Route selects the geometry encoding. Empty means the engine default.
	Route             string `toml:"route,omitempty"`
	GeometryInputFile string `toml:"geometry_input_file"`
}

func (*TraversalPlugin) outputPlugin() {}

// Route encodings accepted by the traversal output plugin.
var routeFormats = []string{"geo_json", "wkt", "edge_id"}

// UUIDPlugin maps internal vertex ids back to stable UUIDs from the
// source data set.
type UUIDPlugin struct {
	Type          string `toml:"type"`
	UUIDInputFile string `toml:"uuid_input_file"`
}

func (*UUIDPlugin) outputPlugin() {}
