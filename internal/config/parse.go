// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// parse.go - TOML decoding for wayfind configuration documents.
//
// Decoding happens in two phases. The document is first decoded into raw
// sections holding toml.Primitive values, then each tagged-variant section
// is materialized by peeking its `type` discriminator and decoding the
// remaining keys against that variant's closed schema. Structural problems
// (unknown discriminators, unknown keys, undecodable values) are collected
// as findings on the Config and surfaced by Validate, so a single pass
// reports every problem in the document.

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// requiredSections are the top-level tables every document must define.
var requiredSections = []string{"graph", "traversal", "access", "cost", "plugin"}

// =============================================================================
// RAW DOCUMENT SHAPES
// =============================================================================

// rawConfig defers tagged-variant sections to toml.Primitive so their
// shape can be selected after the `type` discriminator is known.
type rawConfig struct {
	Parallelism       int            `toml:"parallelism"`
	SearchOrientation string         `toml:"search_orientation"`
	Graph             GraphConfig    `toml:"graph"`
	Traversal         toml.Primitive `toml:"traversal"`
	Access            toml.Primitive `toml:"access"`
	Cost              rawCost        `toml:"cost"`
	Plugin            rawPlugin      `toml:"plugin"`
}

type rawCost struct {
	VehicleRates    map[string]toml.Primitive `toml:"vehicle_rates"`
	Weights         map[string]float64        `toml:"weights"`
	CostAggregation string                    `toml:"cost_aggregation"`
}

type rawPlugin struct {
	InputPlugins  []toml.Primitive `toml:"input_plugins"`
	OutputPlugins []toml.Primitive `toml:"output_plugins"`
}

type rawTurnDelayAccess struct {
	Type                 string          `toml:"type"`
	EdgeHeadingInputFile string          `toml:"edge_heading_input_file"`
	TurnDelayModel       *toml.Primitive `toml:"turn_delay_model"`
}

type rawLoadBalancer struct {
	Type            string          `toml:"type"`
	WeightHeuristic *toml.Primitive `toml:"weight_heuristic"`
}

// Required numeric keys decode through pointers; zero is a legal value
// for both, so an absent key must be distinguishable from it.

type rawVertexRTree struct {
	Type              string   `toml:"type"`
	VerticesInputFile string   `toml:"vertices_input_file"`
	DistanceTolerance *float64 `toml:"distance_tolerance"`
	DistanceUnit      string   `toml:"distance_unit"`
}

type rawFactorRate struct {
	Type   string   `toml:"type"`
	Factor *float64 `toml:"factor"`
}

// =============================================================================
// LOAD / PARSE
// =============================================================================

// Load reads, parses and validates the configuration document at path.
// It returns a fully validated Config or an error; there is no
// partial-success mode. Malformed TOML yields a *ParseError, semantic
// problems a ValidationErrors collection of typed findings.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.File = path
		}
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes a configuration document from memory. The result is not
// yet validated; callers must invoke Validate before handing the Config
// to anything that trusts it. Load does both.
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	b := &builder{md: md}
	cfg := &Config{
		Parallelism:       raw.Parallelism,
		SearchOrientation: raw.SearchOrientation,
		Graph:             raw.Graph,
	}

	for _, section := range requiredSections {
		if !md.IsDefined(section) {
			b.add(&MissingSectionError{Section: section})
		}
	}

	if md.IsDefined("traversal") {
		cfg.Traversal = b.traversal(raw.Traversal)
	}
	if md.IsDefined("access") {
		cfg.Access = b.access(raw.Access)
	}
	if md.IsDefined("cost") {
		cfg.Cost = b.cost(raw.Cost)
	}
	if md.IsDefined("plugin") {
		cfg.Plugin = b.plugins(raw.Plugin)
	}

	b.reportUndecoded()
	cfg.findings = b.findings
	return cfg, nil
}

// =============================================================================
// VARIANT MATERIALIZATION
// =============================================================================

// builder materializes tagged variants and accumulates findings.
type builder struct {
	md       toml.MetaData
	findings ValidationErrors

	// opaque holds dotted path prefixes whose subtrees were abandoned
	// (unknown discriminator, undecodable table). Undecoded keys under
	// these prefixes are not reported; the variant finding covers them.
	opaque []string
}

func (b *builder) add(err error) {
	b.findings = append(b.findings, err)
}

func (b *builder) markOpaque(path string) {
	b.opaque = append(b.opaque, path)
}

// peekType reads the `type` discriminator of a variant table. A missing
// discriminator is a finding; the empty string return means the variant
// cannot be materialized.
func (b *builder) peekType(prim toml.Primitive, path string) string {
	var head struct {
		Type string `toml:"type"`
	}
	if err := b.md.PrimitiveDecode(prim, &head); err != nil {
		b.add(&InvalidValueError{Path: path, Reason: err.Error()})
		b.markOpaque(path)
		return ""
	}
	if head.Type == "" {
		b.add(&InvalidValueError{Path: path + ".type", Reason: "missing required key"})
		b.markOpaque(path)
	}
	return head.Type
}

// decodeInto decodes the remaining keys of a variant table against its
// concrete schema. Returns false when the table could not be decoded.
func (b *builder) decodeInto(prim toml.Primitive, path string, v any) bool {
	if err := b.md.PrimitiveDecode(prim, v); err != nil {
		b.add(&InvalidValueError{Path: path, Reason: err.Error()})
		b.markOpaque(path)
		return false
	}
	return true
}

func (b *builder) unknownVariant(path, value string, allowed []string) {
	b.add(&UnknownVariantError{Path: path + ".type", Value: value, Allowed: allowed})
	b.markOpaque(path)
}

func (b *builder) traversal(prim toml.Primitive) TraversalModel {
	const path = "traversal"
	switch t := b.peekType(prim, path); t {
	case "":
		return nil
	case "distance":
		v := new(DistanceTraversal)
		if !b.decodeInto(prim, path, v) {
			return nil
		}
		return v
	case "speed_table":
		v := new(SpeedTableTraversal)
		if !b.decodeInto(prim, path, v) {
			return nil
		}
		return v
	default:
		b.unknownVariant(path, t, traversalTypes)
		return nil
	}
}

func (b *builder) access(prim toml.Primitive) AccessModel {
	const path = "access"
	switch t := b.peekType(prim, path); t {
	case "":
		return nil
	case "turn_delay":
		var raw rawTurnDelayAccess
		if !b.decodeInto(prim, path, &raw) {
			return nil
		}
		v := &TurnDelayAccess{
			Type:                 raw.Type,
			EdgeHeadingInputFile: raw.EdgeHeadingInputFile,
		}
		if raw.TurnDelayModel == nil {
			b.add(&InvalidValueError{Path: path + ".turn_delay_model", Reason: "missing required table"})
			return v
		}
		v.TurnDelayModel = b.turnDelayModel(*raw.TurnDelayModel)
		return v
	default:
		b.unknownVariant(path, t, accessTypes)
		return nil
	}
}

func (b *builder) turnDelayModel(prim toml.Primitive) TurnDelayModel {
	const path = "access.turn_delay_model"
	switch t := b.peekType(prim, path); t {
	case "":
		return nil
	case "tabular_discrete":
		v := new(TabularDiscreteTurnDelay)
		if !b.decodeInto(prim, path, v) {
			return nil
		}
		return v
	default:
		b.unknownVariant(path, t, turnDelayModelTypes)
		return nil
	}
}

func (b *builder) cost(raw rawCost) CostConfig {
	cost := CostConfig{
		Weights:         raw.Weights,
		CostAggregation: raw.CostAggregation,
	}
	if raw.VehicleRates != nil {
		cost.VehicleRates = make(map[string]VehicleRate, len(raw.VehicleRates))
		// deterministic finding order
		names := make([]string, 0, len(raw.VehicleRates))
		for name := range raw.VehicleRates {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			path := "cost.vehicle_rates." + name
			if rate := b.vehicleRate(raw.VehicleRates[name], path); rate != nil {
				cost.VehicleRates[name] = rate
			}
		}
	}
	return cost
}

func (b *builder) vehicleRate(prim toml.Primitive, path string) VehicleRate {
	switch t := b.peekType(prim, path); t {
	case "":
		return nil
	case "factor":
		var raw rawFactorRate
		if !b.decodeInto(prim, path, &raw) {
			return nil
		}
		v := &FactorRate{Type: raw.Type}
		if raw.Factor == nil {
			b.add(&InvalidValueError{Path: path + ".factor", Reason: "missing required key"})
			return v
		}
		v.Factor = *raw.Factor
		return v
	case "raw":
		v := new(RawRate)
		if !b.decodeInto(prim, path, v) {
			return nil
		}
		return v
	default:
		b.unknownVariant(path, t, vehicleRateTypes)
		return nil
	}
}

func (b *builder) plugins(raw rawPlugin) PluginConfig {
	var plugin PluginConfig
	if raw.InputPlugins != nil {
		plugin.InputPlugins = make([]InputPlugin, 0, len(raw.InputPlugins))
		for i, prim := range raw.InputPlugins {
			path := inputPluginPath(i)
			if p := b.inputPlugin(prim, path); p != nil {
				plugin.InputPlugins = append(plugin.InputPlugins, p)
			}
		}
	}
	if raw.OutputPlugins != nil {
		plugin.OutputPlugins = make([]OutputPlugin, 0, len(raw.OutputPlugins))
		for i, prim := range raw.OutputPlugins {
			path := outputPluginPath(i)
			if p := b.outputPlugin(prim, path); p != nil {
				plugin.OutputPlugins = append(plugin.OutputPlugins, p)
			}
		}
	}
	return plugin
}

func (b *builder) inputPlugin(prim toml.Primitive, path string) InputPlugin {
	switch t := b.peekType(prim, path); t {
	case "":
		b.markOpaque("plugin.input_plugins")
		return nil
	case "vertex_rtree":
		var raw rawVertexRTree
		if !b.decodeInto(prim, path, &raw) {
			return nil
		}
		v := &VertexRTreePlugin{
			Type:              raw.Type,
			VerticesInputFile: raw.VerticesInputFile,
			DistanceUnit:      raw.DistanceUnit,
		}
		if raw.DistanceTolerance == nil {
			b.add(&InvalidValueError{Path: path + ".distance_tolerance", Reason: "missing required key"})
			return v
		}
		v.DistanceTolerance = *raw.DistanceTolerance
		return v
	case "grid_search":
		v := new(GridSearchPlugin)
		if !b.decodeInto(prim, path, v) {
			return nil
		}
		return v
	case "load_balancer":
		var raw rawLoadBalancer
		if !b.decodeInto(prim, path, &raw) {
			return nil
		}
		v := &LoadBalancerPlugin{Type: raw.Type}
		if raw.WeightHeuristic == nil {
			b.add(&InvalidValueError{Path: path + ".weight_heuristic", Reason: "missing required table"})
			return v
		}
		v.WeightHeuristic = b.weightHeuristic(*raw.WeightHeuristic, path+".weight_heuristic")
		return v
	default:
		b.unknownVariant(path, t, inputPluginTypes)
		b.markOpaque("plugin.input_plugins")
		return nil
	}
}

func (b *builder) weightHeuristic(prim toml.Primitive, path string) WeightHeuristic {
	switch t := b.peekType(prim, path); t {
	case "":
		return nil
	case "haversine":
		v := new(HaversineHeuristic)
		if !b.decodeInto(prim, path, v) {
			return nil
		}
		return v
	case "custom":
		v := new(CustomHeuristic)
		if !b.decodeInto(prim, path, v) {
			return nil
		}
		return v
	default:
		b.unknownVariant(path, t, weightHeuristicTypes)
		return nil
	}
}

func (b *builder) outputPlugin(prim toml.Primitive, path string) OutputPlugin {
	switch t := b.peekType(prim, path); t {
	case "":
		b.markOpaque("plugin.output_plugins")
		return nil
	case "summary":
		v := new(SummaryPlugin)
		if !b.decodeInto(prim, path, v) {
			return nil
		}
		return v
	case "traversal":
		v := new(TraversalPlugin)
		if !b.decodeInto(prim, path, v) {
			return nil
		}
		return v
	case "uuid":
		v := new(UUIDPlugin)
		if !b.decodeInto(prim, path, v) {
			return nil
		}
		return v
	default:
		b.unknownVariant(path, t, outputPluginTypes)
		b.markOpaque("plugin.output_plugins")
		return nil
	}
}

// reportUndecoded flags every document key that no schema consumed.
// Accepting unknown keys would silently mask typos, so each one is a
// finding, except under subtrees already covered by a variant finding.
func (b *builder) reportUndecoded() {
	for _, key := range b.md.Undecoded() {
		path := key.String()
		if b.isOpaque(path) {
			continue
		}
		b.add(&InvalidValueError{Path: path, Reason: "unknown key"})
	}
}

func (b *builder) isOpaque(path string) bool {
	for _, prefix := range b.opaque {
		if path == prefix || strings.HasPrefix(path, prefix+".") {
			return true
		}
	}
	return false
}

// =============================================================================
// SERIALIZATION
// =============================================================================

// Encode writes the document form of the configuration. A validated
// Config round-trips: parsing the encoded output yields an equal Config.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Save writes the configuration document to path, preceded by a short
// provenance comment.
func (c *Config) Save(path string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# wayfind engine configuration")
	fmt.Fprintln(file, "# Generated by wayfind - edit with care")
	fmt.Fprintln(file, "")

	if err := c.Encode(file); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
