package graph

import (
	"github.com/chatforge/blockflow/internal/ir"
	"github.com/chatforge/blockflow/internal/registry"
)

// Graph holds one document's live block instances and connections.
//
// A Graph is not safe for concurrent mutation; callers serialize edits
// per document (one edit session per open document). Preview and
// validation operations that must not observe a half-mutated graph work
// on a Snapshot instead.
type Graph struct {
	registry *registry.Registry

	instances   map[string]ir.BlockInstance
	connections map[string]ir.Connection

	// Derived traversal indexes, connection ids in insertion order.
	// Reverse lookup only; ownership stays with the connections map.
	outgoing map[string][]string
	incoming map[string][]string

	clock *Clock
	ids   IDGenerator
}

// Option configures a Graph at construction.
type Option func(*Graph)

// WithIDGenerator replaces the default UUIDv7 id generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(gr *Graph) { gr.ids = g }
}

// New creates an empty graph backed by the given schema registry.
// The registry is injected, never a global: independent graphs and tests
// can each carry their own.
func New(reg *registry.Registry, opts ...Option) *Graph {
	g := &Graph{
		registry:    reg,
		instances:   make(map[string]ir.BlockInstance),
		connections: make(map[string]ir.Connection),
		outgoing:    make(map[string][]string),
		incoming:    make(map[string][]string),
		clock:       NewClock(),
		ids:         UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Registry returns the schema registry this graph resolves block types
// against.
func (g *Graph) Registry() *registry.Registry {
	return g.registry
}

// Schema resolves the schema for an instance. The second return is false
// if the instance does not exist or its block type is no longer
// registered.
func (g *Graph) Schema(blockID string) (ir.BlockSchema, bool) {
	inst, ok := g.instances[blockID]
	if !ok {
		return ir.BlockSchema{}, false
	}
	return g.registry.Get(inst.BlockType)
}

// Snapshot returns an independent deep copy of the graph. Mutations on
// either side are invisible to the other; use it for preview and
// validation while an edit session continues.
func (g *Graph) Snapshot() *Graph {
	out := &Graph{
		registry:    g.registry,
		instances:   make(map[string]ir.BlockInstance, len(g.instances)),
		connections: make(map[string]ir.Connection, len(g.connections)),
		outgoing:    make(map[string][]string, len(g.outgoing)),
		incoming:    make(map[string][]string, len(g.incoming)),
		clock:       NewClockAt(g.clock.Current()),
		ids:         g.ids,
	}
	for id, inst := range g.instances {
		out.instances[id] = inst.Clone()
	}
	for id, conn := range g.connections {
		out.connections[id] = conn
	}
	for id, conns := range g.outgoing {
		out.outgoing[id] = append([]string(nil), conns...)
	}
	for id, conns := range g.incoming {
		out.incoming[id] = append([]string(nil), conns...)
	}
	return out
}
