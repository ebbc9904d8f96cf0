// Package graph implements the live block-instance store and the typed
// connection graph between instances.
//
// Storage follows the arena+index pattern: instances and connections live
// in flat maps keyed by generated id, with derived incoming/outgoing
// indexes for traversal. Nothing holds object pointers across records, so
// removal cascades and cycle detection are plain index scans and the
// whole structure serializes trivially.
//
// Every mutation validates fully before writing: a rejected edit leaves
// the graph exactly as it was. Connections are soft-deleted (IsActive
// flips to false) rather than removed, preserving undo history; the
// active-edge subgraph is kept acyclic at all times. Loop semantics
// belong in block field data (a repeat count), never in graph topology.
package graph
