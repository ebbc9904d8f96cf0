package graph

import (
	"fmt"

	"github.com/chatforge/blockflow/internal/ir"
	"github.com/chatforge/blockflow/internal/registry"
)

// LoadError aggregates everything wrong with a document. A document
// loads completely or not at all.
type LoadError struct {
	Problems []string
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid graph document: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid graph document: %s (and %d more)", e.Problems[0], len(e.Problems)-1)
}

// LoadDocument rebuilds a graph from its serialized form, validating
// wholesale: unknown schemas, duplicate ids, dangling connection
// references, malformed connections, and active-edge cycles all reject
// the whole document.
func LoadDocument(reg *registry.Registry, doc ir.GraphDocument, opts ...Option) (*Graph, error) {
	g := New(reg, opts...)
	var problems []string

	for _, inst := range doc.Instances {
		if inst.ID == "" {
			problems = append(problems, "instance with empty id")
			continue
		}
		if _, dup := g.instances[inst.ID]; dup {
			problems = append(problems, fmt.Sprintf("duplicate instance id %s", inst.ID))
			continue
		}
		if _, ok := reg.Get(inst.BlockType); !ok {
			problems = append(problems, fmt.Sprintf("instance %s: unknown schema %q", inst.ID, inst.BlockType))
			continue
		}
		g.instances[inst.ID] = inst.Clone()
	}

	var maxSeq int64
	for _, conn := range doc.Connections {
		if conn.ID == "" {
			problems = append(problems, "connection with empty id")
			continue
		}
		if _, dup := g.connections[conn.ID]; dup {
			problems = append(problems, fmt.Sprintf("duplicate connection id %s", conn.ID))
			continue
		}
		if err := checkRequest(conn.Type, conn.Condition); err != nil {
			problems = append(problems, fmt.Sprintf("connection %s: %v", conn.ID, err))
			continue
		}
		if _, ok := g.instances[conn.SourceBlockID]; !ok {
			problems = append(problems, fmt.Sprintf("connection %s: dangling source %s", conn.ID, conn.SourceBlockID))
			continue
		}
		if _, ok := g.instances[conn.TargetBlockID]; !ok {
			problems = append(problems, fmt.Sprintf("connection %s: dangling target %s", conn.ID, conn.TargetBlockID))
			continue
		}
		g.connections[conn.ID] = conn
		g.outgoing[conn.SourceBlockID] = append(g.outgoing[conn.SourceBlockID], conn.ID)
		g.incoming[conn.TargetBlockID] = append(g.incoming[conn.TargetBlockID], conn.ID)
		if conn.Seq > maxSeq {
			maxSeq = conn.Seq
		}
	}

	if len(problems) > 0 {
		return nil, &LoadError{Problems: problems}
	}

	// Structural invariants must hold on load, not only on edit.
	for _, d := range Errors(g.ValidateAll()) {
		problems = append(problems, fmt.Sprintf("connection %s: %s", d.ConnectionID, d.Message))
	}
	if len(problems) > 0 {
		return nil, &LoadError{Problems: problems}
	}

	g.clock = NewClockAt(maxSeq)
	return g, nil
}

// Document exports the graph's serializable form: instances sorted by
// id, connections (active and inactive) by insertion sequence.
func (g *Graph) Document() ir.GraphDocument {
	return ir.GraphDocument{
		Instances:   g.Instances(),
		Connections: g.Connections(),
	}
}
