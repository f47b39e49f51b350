// Package io reads and writes flow definition documents.
//
// # Overview
//
// A document is a flow graph plus optional presentation metadata. The same
// graph can be authored in any of the supported formats:
//
//   - JSON (.json)
//   - JSONC, JSON with comments and trailing commas (.jsonc)
//   - YAML (.yaml, .yml)
//   - TOML (.toml)
//
// # Document Shape
//
// The body is either a bare graph array:
//
//	["Start", [["Branch A"], ["Branch B"]], "Complete"]
//
// or an object carrying metadata next to the graph:
//
//	{
//	  "title": "Basic Flow",
//	  "description": "A *markdown* description shown on the showcase page.",
//	  "graph": ["Start", [["Branch A"], ["Branch B"]], "Complete"]
//	}
//
// TOML has no top-level arrays, so TOML documents always use the object
// form:
//
//	title = "Basic Flow"
//	graph = ["Start", [["Branch A"], ["Branch B"]], "Complete"]
//
// Graph elements follow the rules of [flow.Decode]: strings and objects
// with an "id" are nodes, arrays of arrays are forks.
//
// # Import
//
// Use [ReadFile] for a path (the format comes from the extension), [Read]
// for any io.Reader, or [ReadDir] to load every document in a directory:
//
//	doc, err := io.ReadFile("examples/basic.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	parsed, err := flow.Parse(doc.Graph)
//
// Structural errors from the graph are returned unchanged inside the
// wrapping error, so errors.Is(err, flow.ErrMultipleForks) keeps working.
//
// # Export
//
// [Marshal] and [WriteFile] write a document back out as JSON or YAML using
// [flow.Encode]. Reading the output again yields an equal graph.
package io
