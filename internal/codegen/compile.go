package codegen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/chatforge/blockflow/internal/graph"
	"github.com/chatforge/blockflow/internal/ir"
)

// Result is the output of a successful compilation.
type Result struct {
	// Code is the generated program source. Opaque to the core beyond
	// template substitution; the executing runtime gives it meaning.
	Code string `json:"code"`

	// UnreachableBlockIDs lists blocks no entry point reaches, sorted by
	// id. Dead code is a warning, not an error.
	UnreachableBlockIDs []string `json:"unreachable_block_ids"`

	// Warnings collects non-fatal findings: missing template fields,
	// terminal replies with outgoing flow, dead blocks.
	Warnings []string `json:"warnings"`

	// Stats summarizes what was emitted.
	Stats Stats `json:"stats"`
}

// Stats holds compilation summary counters.
type Stats struct {
	EntryCount    int `json:"entry_count"`
	BlocksEmitted int `json:"blocks_emitted"`
	EdgesWalked   int `json:"edges_walked"`
}

// CompileError means compilation could not start: one or more requested
// entry blocks do not exist in the graph.
type CompileError struct {
	MissingEntryIDs []string
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("compile: entry blocks not found: %s", strings.Join(e.MissingEntryIDs, ", "))
}

// Compile generates the response program for a graph, rooted at the
// given entry blocks (typically EVENT instances). Entries are walked in
// the order given; traversal is deterministic, so identical graphs
// produce identical code.
func Compile(g *graph.Graph, entryIDs []string) (*Result, error) {
	var missing []string
	for _, id := range entryIDs {
		if _, ok := g.Instance(id); !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, &CompileError{MissingEntryIDs: missing}
	}

	visited := make(map[string]bool)
	var order []string
	edgesWalked := 0

	var walk func(id string)
	walk = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		order = append(order, id)
		for _, edge := range g.OutgoingEdges(id) {
			// Static context: CONDITION edges count as reachable, the
			// runtime decides for real. DATA edges are value wiring.
			if edge.Type == ir.ConnectionData {
				continue
			}
			edgesWalked++
			walk(edge.TargetBlockID)
		}
	}
	for _, id := range entryIDs {
		walk(id)
	}

	result := &Result{
		Stats: Stats{
			EntryCount:    len(entryIDs),
			BlocksEmitted: len(order),
			EdgesWalked:   edgesWalked,
		},
	}

	var code strings.Builder
	for _, id := range order {
		inst, _ := g.Instance(id)
		schema, ok := g.Registry().Get(inst.BlockType)
		if !ok {
			// Load guarantees schemas exist; a miss here means hot
			// reload removed one. Emit nothing, warn.
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("block %s: schema %q no longer registered, skipped", id, inst.BlockType))
			continue
		}

		rendered, missingFields := Render(schema.CodeTemplate, inst.Fields)
		for _, f := range missingFields {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("block %s: template field %q has no value, rendered empty", id, f))
		}

		if schema.Category == ir.CategoryEvent {
			code.WriteString(rendered)
		} else {
			code.WriteString("  ")
			code.WriteString(rendered)
		}
		code.WriteByte('\n')
	}
	result.Code = code.String()

	for _, inst := range g.Instances() {
		if !visited[inst.ID] {
			result.UnreachableBlockIDs = append(result.UnreachableBlockIDs, inst.ID)
		}
	}
	slices.Sort(result.UnreachableBlockIDs)
	for _, id := range result.UnreachableBlockIDs {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("block %s is unreachable from any entry point", id))
	}

	for _, d := range g.ValidateAll() {
		if d.Severity == graph.SeverityWarning {
			result.Warnings = append(result.Warnings, d.Message)
		}
	}

	return result, nil
}
