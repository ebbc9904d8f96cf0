package ir

// Category classifies a block type by its role in the response program.
type Category string

const (
	CategoryEvent     Category = "EVENT"     // trigger: starts a flow
	CategoryReply     Category = "REPLY"     // terminal effect: sends a response
	CategoryControl   Category = "CONTROL"   // conditional / repeat / wait
	CategorySetting   Category = "SETTING"   // variable operations
	CategoryContainer Category = "CONTAINER" // grouping container
	CategoryContent   Category = "CONTENT"   // media / rich content payload
	CategoryLayout    Category = "LAYOUT"    // visual arrangement
)

// Categories lists all recognized categories in declaration order.
var Categories = []Category{
	CategoryEvent,
	CategoryReply,
	CategoryControl,
	CategorySetting,
	CategoryContainer,
	CategoryContent,
	CategoryLayout,
}

// Valid reports whether c is a recognized category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ConnectionType classifies an edge between two block instances.
type ConnectionType string

const (
	// ConnectionSequence is an unconditional "run next" link.
	ConnectionSequence ConnectionType = "SEQUENCE"
	// ConnectionCondition is traversed only when its predicate matches
	// the runtime context.
	ConnectionCondition ConnectionType = "CONDITION"
	// ConnectionData wires a value from one block to another. Data edges
	// are never control flow: the resolver skips them and the code
	// generator consumes them for value plumbing.
	ConnectionData ConnectionType = "DATA"
)

// Valid reports whether t is a recognized connection type.
func (t ConnectionType) Valid() bool {
	switch t {
	case ConnectionSequence, ConnectionCondition, ConnectionData:
		return true
	}
	return false
}

// PortSet declares which connection ports a block type exposes.
// Previous/Next carry control flow (SEQUENCE and CONDITION edges);
// Output/Input carry value wiring (DATA edges).
type PortSet struct {
	Previous bool `json:"previous"`
	Next     bool `json:"next"`
	Output   bool `json:"output"`
	Input    bool `json:"input"`
}

// BlockSchema is the immutable descriptor a block instance is created
// from. Schemas are registered once at load time and never mutated; the
// registry hands out copies so callers cannot alias internal state.
type BlockSchema struct {
	// BlockType uniquely identifies the schema (e.g. "text-reply").
	BlockType string `json:"block_type"`

	// Category determines compatibility rules and code-emission placement.
	Category Category `json:"category"`

	// CompatibleContexts lists the graph-context tags this block may
	// appear in. Must be non-empty.
	CompatibleContexts []string `json:"compatible_contexts"`

	// DefaultFields seeds a new instance's field values.
	DefaultFields FieldObject `json:"default_fields"`

	// CodeTemplate is the per-block code fragment with {{field}}
	// placeholders, stitched together by the code generator.
	CodeTemplate string `json:"code_template"`

	// Ports declares which connection ports instances of this type expose.
	Ports PortSet `json:"ports"`
}

// Clone returns a deep copy of the schema.
func (s BlockSchema) Clone() BlockSchema {
	out := s
	out.CompatibleContexts = append([]string(nil), s.CompatibleContexts...)
	out.DefaultFields = s.DefaultFields.Clone()
	return out
}

// HasContext reports whether the schema is compatible with the given
// graph-context tag.
func (s BlockSchema) HasContext(ctx string) bool {
	for _, c := range s.CompatibleContexts {
		if c == ctx {
			return true
		}
	}
	return false
}

// Position is the instance's location on the editor canvas. Used only by
// layout heuristics; it never affects validation or code generation.
type Position struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
}

// BlockInstance is a live, user-configured block. The schema reference is
// by BlockType only (resolved through the registry), never an owning
// pointer.
type BlockInstance struct {
	ID        string      `json:"id"`
	BlockType string      `json:"block_type"`
	Fields    FieldObject `json:"fields"`
	Position  Position    `json:"position"`
}

// Clone returns a deep copy of the instance.
func (b BlockInstance) Clone() BlockInstance {
	out := b
	out.Fields = b.Fields.Clone()
	return out
}

// Connection is a typed directed edge between two block instances.
type Connection struct {
	ID            string         `json:"id"`
	SourceBlockID string         `json:"source_block_id"`
	TargetBlockID string         `json:"target_block_id"`
	Type          ConnectionType `json:"connection_type"`

	// Condition is the predicate string for CONDITION edges. Required iff
	// Type == ConnectionCondition.
	Condition string `json:"condition,omitempty"`

	// Order disambiguates multiple outgoing edges from the same source.
	// Lower runs first; ties broken by insertion sequence.
	Order int64 `json:"order"`

	// Seq is the monotonic insertion sequence, the deterministic
	// tiebreaker for equal Order values.
	Seq int64 `json:"seq"`

	// IsActive is the soft-delete flag. Disconnect clears it; nothing is
	// ever deleted outright, preserving undo history.
	IsActive bool `json:"is_active"`
}

// GraphDocument is the serializable form of a graph: flat instance and
// connection lists, nothing else. It is the unit of persistence and the
// wholesale-load input format.
type GraphDocument struct {
	Instances   []BlockInstance `json:"instances"`
	Connections []Connection    `json:"connections"`
}

// RuntimeContext carries one inbound message event into the execution
// resolver. Supplied by the transport layer, one per event.
type RuntimeContext struct {
	IncomingText string            `json:"incoming_text"`
	Variables    map[string]string `json:"variables,omitempty"`
}
