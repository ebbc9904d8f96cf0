package graph

import (
	"fmt"
	"slices"

	"github.com/chatforge/blockflow/internal/ir"
)

// Connect creates a typed edge from source to target. condition is the
// predicate string for CONDITION edges and must be empty otherwise; order
// disambiguates multiple outgoing edges from the same source.
//
// Validation runs fully before any write, in order: request shape,
// endpoint existence (UNKNOWN_BLOCK), acyclicity of the active subgraph
// (CYCLE_DETECTED), category/port compatibility (INCOMPATIBLE_BLOCKS).
// On rejection the graph is untouched.
func (g *Graph) Connect(source, target string, typ ir.ConnectionType, condition string, order int64) (ir.Connection, error) {
	if err := checkRequest(typ, condition); err != nil {
		return ir.Connection{}, err
	}

	srcInst, ok := g.instances[source]
	if !ok {
		return ir.Connection{}, unknownBlock(source)
	}
	dstInst, ok := g.instances[target]
	if !ok {
		return ir.Connection{}, unknownBlock(target)
	}

	// Cycle check before compatibility: a reachability walk from target
	// back to source over existing active edges. O(V+E) per insertion is
	// fine for interactively edited graphs.
	if source == target || g.reaches(target, source) {
		return ir.Connection{}, &Error{
			Code:    ErrCodeCycleDetected,
			Message: fmt.Sprintf("connecting %s to %s would create a cycle", source, target),
		}
	}

	srcSchema, ok := g.registry.Get(srcInst.BlockType)
	if !ok {
		return ir.Connection{}, unknownBlock(source)
	}
	dstSchema, ok := g.registry.Get(dstInst.BlockType)
	if !ok {
		return ir.Connection{}, unknownBlock(target)
	}
	if err := checkCompatibility(srcSchema, dstSchema, typ); err != nil {
		return ir.Connection{}, err
	}

	conn := ir.Connection{
		ID:            g.ids.Generate(),
		SourceBlockID: source,
		TargetBlockID: target,
		Type:          typ,
		Condition:     condition,
		Order:         order,
		Seq:           g.clock.Next(),
		IsActive:      true,
	}
	g.connections[conn.ID] = conn
	g.outgoing[source] = append(g.outgoing[source], conn.ID)
	g.incoming[target] = append(g.incoming[target], conn.ID)
	return conn, nil
}

func checkRequest(typ ir.ConnectionType, condition string) error {
	if !typ.Valid() {
		return &Error{
			Code:    ErrCodeInvalidConnection,
			Message: fmt.Sprintf("unrecognized connection type %q", typ),
		}
	}
	if typ == ir.ConnectionCondition && condition == "" {
		return &Error{
			Code:    ErrCodeInvalidConnection,
			Message: "CONDITION connections require a predicate",
		}
	}
	if typ != ir.ConnectionCondition && condition != "" {
		return &Error{
			Code:    ErrCodeInvalidConnection,
			Message: fmt.Sprintf("%s connections must not carry a predicate", typ),
		}
	}
	return nil
}

func unknownBlock(id string) error {
	return &Error{
		Code:    ErrCodeUnknownBlock,
		Message: "connection endpoint references a non-existent block",
		BlockID: id,
	}
}

// Disconnect soft-deletes a connection: IsActive flips to false, the
// record stays for undo history and re-validation. Fails with NOT_FOUND
// for unknown ids; disconnecting an already inactive connection is a
// no-op.
func (g *Graph) Disconnect(connectionID string) error {
	if _, ok := g.connections[connectionID]; !ok {
		return &Error{
			Code:         ErrCodeNotFound,
			Message:      "no such connection",
			ConnectionID: connectionID,
		}
	}
	g.deactivate(connectionID)
	return nil
}

// Connection returns a copy of the connection with the given id,
// active or not.
func (g *Graph) Connection(id string) (ir.Connection, bool) {
	conn, ok := g.connections[id]
	return conn, ok
}

// OutgoingEdges returns the active outgoing edges of a block, ascending
// by Order with ties broken by insertion sequence. This is the traversal
// primitive the resolver and code generator build on; the ordering is
// what makes their walks deterministic.
func (g *Graph) OutgoingEdges(blockID string) []ir.Connection {
	return g.activeEdges(g.outgoing[blockID])
}

// IncomingEdges returns the active incoming edges of a block in the same
// deterministic order.
func (g *Graph) IncomingEdges(blockID string) []ir.Connection {
	return g.activeEdges(g.incoming[blockID])
}

func (g *Graph) activeEdges(connIDs []string) []ir.Connection {
	var out []ir.Connection
	for _, id := range connIDs {
		conn, ok := g.connections[id]
		if !ok || !conn.IsActive {
			continue
		}
		out = append(out, conn)
	}
	slices.SortFunc(out, func(a, b ir.Connection) int {
		if a.Order != b.Order {
			if a.Order < b.Order {
				return -1
			}
			return 1
		}
		if a.Seq != b.Seq {
			if a.Seq < b.Seq {
				return -1
			}
			return 1
		}
		return 0
	})
	return out
}

// Connections returns copies of all connections (active and inactive),
// ascending by insertion sequence.
func (g *Graph) Connections() []ir.Connection {
	out := make([]ir.Connection, 0, len(g.connections))
	for _, conn := range g.connections {
		out = append(out, conn)
	}
	slices.SortFunc(out, func(a, b ir.Connection) int {
		if a.Seq < b.Seq {
			return -1
		}
		if a.Seq > b.Seq {
			return 1
		}
		return 0
	})
	return out
}
