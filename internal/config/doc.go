// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and validates wayfind engine configuration
// documents.
//
// A document is a TOML file parametrizing a road-network routing run:
// graph inputs, the traversal cost model, the turn-delay access model,
// cost weighting, and the ordered input/output plugin chains. The engine
// itself lives elsewhere; this package owns the document contract.
//
// # Key Types
//
//   - Config: the root of a parsed document
//   - TraversalModel, AccessModel, VehicleRate: tagged variants for the
//     cost models, selected by their `type` discriminator
//   - InputPlugin, OutputPlugin: tagged variants for the plugin chains
//
// # Usage
//
// Load and validate a document:
//
//	cfg, err := config.Load("osm_default.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Loading either returns a fully validated Config or an error carrying
// the dotted key path of every problem; there is no partial success. A
// loaded Config is immutable for the lifetime of the run.
package config
