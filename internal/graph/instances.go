package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/chatforge/blockflow/internal/ir"
)

// Create allocates a new instance of the given block type. Overrides are
// merged over the schema's default fields; override wins. Fails with
// UNKNOWN_SCHEMA if the block type is not registered.
func (g *Graph) Create(blockType string, overrides ir.FieldObject) (ir.BlockInstance, error) {
	schema, ok := g.registry.Get(blockType)
	if !ok {
		return ir.BlockInstance{}, &Error{
			Code:    ErrCodeUnknownSchema,
			Message: fmt.Sprintf("block type %q is not registered", blockType),
		}
	}

	inst := ir.BlockInstance{
		ID:        g.ids.Generate(),
		BlockType: blockType,
		Fields:    schema.DefaultFields.Merge(overrides),
	}
	g.instances[inst.ID] = inst
	return inst.Clone(), nil
}

// Instance returns a copy of the instance with the given id.
func (g *Graph) Instance(id string) (ir.BlockInstance, bool) {
	inst, ok := g.instances[id]
	if !ok {
		return ir.BlockInstance{}, false
	}
	return inst.Clone(), true
}

// Instances returns copies of all live instances, sorted by id.
func (g *Graph) Instances() []ir.BlockInstance {
	out := make([]ir.BlockInstance, 0, len(g.instances))
	for _, inst := range g.instances {
		out = append(out, inst.Clone())
	}
	slices.SortFunc(out, func(a, b ir.BlockInstance) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Len returns the number of live instances.
func (g *Graph) Len() int {
	return len(g.instances)
}

// UpdateField sets one field on an instance. Fails with NOT_FOUND if the
// id is absent. The store performs no type coercion beyond the existence
// check; duration clamps and the like are the caller's job, and richer
// validation belongs to ValidateAll and the code generator.
func (g *Graph) UpdateField(id, field string, value ir.FieldValue) error {
	inst, ok := g.instances[id]
	if !ok {
		return notFound(id)
	}
	if value == nil {
		value = ir.FieldNull{}
	}
	if inst.Fields == nil {
		inst.Fields = make(ir.FieldObject)
	}
	inst.Fields[field] = value
	g.instances[id] = inst
	return nil
}

// Move updates the instance's canvas position.
func (g *Graph) Move(id string, pos ir.Position) error {
	inst, ok := g.instances[id]
	if !ok {
		return notFound(id)
	}
	inst.Position = pos
	g.instances[id] = inst
	return nil
}

// Remove deletes the instance and synchronously deactivates every
// connection referencing it. A dangling active edge is a correctness
// bug, never a condition to tolerate at runtime, so the cascade happens
// inside the same call.
func (g *Graph) Remove(id string) error {
	if _, ok := g.instances[id]; !ok {
		return notFound(id)
	}
	delete(g.instances, id)

	for _, connID := range g.outgoing[id] {
		g.deactivate(connID)
	}
	for _, connID := range g.incoming[id] {
		g.deactivate(connID)
	}
	return nil
}

func (g *Graph) deactivate(connID string) {
	conn, ok := g.connections[connID]
	if !ok {
		return
	}
	conn.IsActive = false
	g.connections[connID] = conn
}

func notFound(id string) error {
	return &Error{
		Code:    ErrCodeNotFound,
		Message: "no such block instance",
		BlockID: id,
	}
}
