package engine

import (
	"github.com/chatforge/blockflow/internal/graph"
	"github.com/chatforge/blockflow/internal/ir"
)

// Resolver walks a graph against incoming message contexts. It keeps no
// execution state of its own; give it a Snapshot if edits may happen
// concurrently.
type Resolver struct {
	graph *graph.Graph
}

// NewResolver creates a resolver over the given graph.
func NewResolver(g *graph.Graph) *Resolver {
	return &Resolver{graph: g}
}

// NextBlocks computes the full set of blocks to execute after blockID
// under the given context, in deterministic edge order (Order ascending,
// insertion sequence on ties), de-duplicated.
//
// Inclusion per edge type: SEQUENCE always, DATA never, CONDITION iff
// its predicate matches. All qualifying branches are returned; there is
// no exclusive if/else short-circuit.
func (r *Resolver) NextBlocks(blockID string, ctx ir.RuntimeContext) ([]string, error) {
	if _, ok := r.graph.Instance(blockID); !ok {
		return nil, &graph.Error{
			Code:    graph.ErrCodeNotFound,
			Message: "cannot resolve from a non-existent block",
			BlockID: blockID,
		}
	}

	var next []string
	seen := make(map[string]bool)
	for _, edge := range r.graph.OutgoingEdges(blockID) {
		if !includeEdge(edge, ctx) {
			continue
		}
		if seen[edge.TargetBlockID] {
			continue
		}
		seen[edge.TargetBlockID] = true
		next = append(next, edge.TargetBlockID)
	}
	return next, nil
}

func includeEdge(edge ir.Connection, ctx ir.RuntimeContext) bool {
	switch edge.Type {
	case ir.ConnectionSequence:
		return true
	case ir.ConnectionData:
		return false
	case ir.ConnectionCondition:
		return Evaluate(edge.Condition, ctx)
	default:
		return false
	}
}
