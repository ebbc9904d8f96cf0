package engine

import (
	"github.com/chatforge/blockflow/internal/graph"
	"github.com/chatforge/blockflow/internal/ir"
)

// DefaultMaxDepth bounds ExecutionPath when the caller passes no limit.
// Interactive graphs are shallow; anything deeper than this is a
// pathological document, not a real flow.
const DefaultMaxDepth = 64

// ExecutionPath previews what would run from an entry block under a
// context: a depth-bounded depth-first walk returning block ids in visit
// order. Diagnostic only; dispatch goes through NextBlocks one step at
// a time.
//
// Already-visited blocks short-circuit, so the walk terminates even if a
// defect elsewhere produced a cycle. maxDepth <= 0 means
// DefaultMaxDepth.
func (r *Resolver) ExecutionPath(entryID string, ctx ir.RuntimeContext, maxDepth int) ([]string, error) {
	if _, ok := r.graph.Instance(entryID); !ok {
		return nil, &graph.Error{
			Code:    graph.ErrCodeNotFound,
			Message: "entry block does not exist",
			BlockID: entryID,
		}
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	var path []string
	visited := make(map[string]bool)

	var walk func(id string, depth int)
	walk = func(id string, depth int) {
		if visited[id] || depth > maxDepth {
			return
		}
		visited[id] = true
		path = append(path, id)

		next, err := r.NextBlocks(id, ctx)
		if err != nil {
			// Block vanished mid-walk; preview tolerates it.
			return
		}
		for _, target := range next {
			walk(target, depth+1)
		}
	}
	walk(entryID, 1)

	return path, nil
}
