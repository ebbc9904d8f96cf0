package graph

import (
	"fmt"

	"github.com/chatforge/blockflow/internal/ir"
)

// DiagnosticKind identifies what a diagnostic is about.
type DiagnosticKind string

const (
	DiagCycleDetected      DiagnosticKind = "CYCLE_DETECTED"
	DiagIncompatibleBlocks DiagnosticKind = "INCOMPATIBLE_BLOCKS"
	DiagUnknownBlock       DiagnosticKind = "UNKNOWN_BLOCK"
	// DiagTerminalReply flags an outgoing SEQUENCE edge from a REPLY
	// block. Replies are terminal by convention; this is a warning, never
	// an error.
	DiagTerminalReply DiagnosticKind = "TERMINAL_REPLY"
)

// Severity separates hard violations from conventions.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one finding from ValidateAll, addressed to the editor UI.
type Diagnostic struct {
	ConnectionID string         `json:"connection_id"`
	Kind         DiagnosticKind `json:"kind"`
	Severity     Severity       `json:"severity"`
	Message      string         `json:"message"`
}

// ValidateAll re-runs the structural checks over the whole active edge
// set and returns every violation found rather than stopping at the
// first, so the editor can surface multiple problems at once. Calling it
// twice without mutation yields identical diagnostics.
func (g *Graph) ValidateAll() []Diagnostic {
	var diags []Diagnostic

	for _, conn := range g.Connections() {
		if !conn.IsActive {
			continue
		}
		diags = append(diags, g.validateConnection(conn)...)
	}

	for _, connID := range g.cycleEdges() {
		conn := g.connections[connID]
		diags = append(diags, Diagnostic{
			ConnectionID: connID,
			Kind:         DiagCycleDetected,
			Severity:     SeverityError,
			Message: fmt.Sprintf("connection %s -> %s closes a directed cycle",
				conn.SourceBlockID, conn.TargetBlockID),
		})
	}

	return diags
}

func (g *Graph) validateConnection(conn ir.Connection) []Diagnostic {
	var diags []Diagnostic

	srcInst, srcOK := g.instances[conn.SourceBlockID]
	if !srcOK {
		diags = append(diags, Diagnostic{
			ConnectionID: conn.ID,
			Kind:         DiagUnknownBlock,
			Severity:     SeverityError,
			Message:      fmt.Sprintf("source block %s does not exist", conn.SourceBlockID),
		})
	}
	dstInst, dstOK := g.instances[conn.TargetBlockID]
	if !dstOK {
		diags = append(diags, Diagnostic{
			ConnectionID: conn.ID,
			Kind:         DiagUnknownBlock,
			Severity:     SeverityError,
			Message:      fmt.Sprintf("target block %s does not exist", conn.TargetBlockID),
		})
	}
	if !srcOK || !dstOK {
		return diags
	}

	srcSchema, ok := g.registry.Get(srcInst.BlockType)
	if !ok {
		diags = append(diags, Diagnostic{
			ConnectionID: conn.ID,
			Kind:         DiagUnknownBlock,
			Severity:     SeverityError,
			Message:      fmt.Sprintf("source block type %q is not registered", srcInst.BlockType),
		})
		return diags
	}
	dstSchema, ok := g.registry.Get(dstInst.BlockType)
	if !ok {
		diags = append(diags, Diagnostic{
			ConnectionID: conn.ID,
			Kind:         DiagUnknownBlock,
			Severity:     SeverityError,
			Message:      fmt.Sprintf("target block type %q is not registered", dstInst.BlockType),
		})
		return diags
	}

	if err := checkCompatibility(srcSchema, dstSchema, conn.Type); err != nil {
		diags = append(diags, Diagnostic{
			ConnectionID: conn.ID,
			Kind:         DiagIncompatibleBlocks,
			Severity:     SeverityError,
			Message:      err.Error(),
		})
	}

	if srcSchema.Category == ir.CategoryReply && conn.Type == ir.ConnectionSequence {
		diags = append(diags, Diagnostic{
			ConnectionID: conn.ID,
			Kind:         DiagTerminalReply,
			Severity:     SeverityWarning,
			Message: fmt.Sprintf("reply block %s has an outgoing SEQUENCE edge; replies are terminal by convention",
				conn.SourceBlockID),
		})
	}

	return diags
}

// Errors filters diagnostics down to error severity.
func Errors(diags []Diagnostic) []Diagnostic {
	var out []Diagnostic
	for _, d := range diags {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}
