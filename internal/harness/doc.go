// Package harness provides conformance testing for block graphs.
//
// The harness loads a graph document, replays a scripted sequence of
// incoming messages through the execution resolver, optionally compiles
// the graph, and validates expectations declared in the scenario file.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	graph: routing.json
//	schemas: schemas.cue        # optional, defaults to builtin blocks
//	messages:
//	  - entry: cond
//	    text: "sales please"
//	    vars: { tier: gold }    # optional conversation variables
//	    expect_next: [sales]    # exact next-block set, in edge order
//	  - entry: evt
//	    text: "support"
//	    path: true
//	    expect_path: [evt, cond, support]
//	compile:                    # optional
//	  entries: [evt]            # default: every EVENT block
//	  expect_unreachable: [orphan]
//	  expect_contains:
//	    - 'send_text("Sales")'
//
// File paths resolve relative to the scenario file's directory.
//
// # Deterministic Testing
//
// Scenario runs are deterministic by construction: graphs load from
// documents with fixed ids, edges resolve in Order/Seq order, and the
// generated code depends only on the document. Traces are therefore
// stable for golden comparison via RunWithGolden.
package harness
