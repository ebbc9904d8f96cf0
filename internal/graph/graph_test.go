package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatforge/blockflow/internal/ir"
	"github.com/chatforge/blockflow/internal/registry"
	"github.com/chatforge/blockflow/internal/testutil"
)

// newTestGraph builds a graph over the builtin schema table with
// sequential ids ("id-1", "id-2", ...).
func newTestGraph(t *testing.T) *Graph {
	t.Helper()
	return New(registry.MustBuiltin(), WithIDGenerator(testutil.NewSequentialGenerator("id")))
}

func TestCreate_MergesOverridesOverDefaults(t *testing.T) {
	g := newTestGraph(t)

	inst, err := g.Create("text-reply", ir.FieldObject{"text": ir.FieldString("Hello")})
	require.NoError(t, err)

	assert.Equal(t, "id-1", inst.ID)
	assert.Equal(t, "text-reply", inst.BlockType)
	assert.Equal(t, ir.FieldString("Hello"), inst.Fields["text"])
}

func TestCreate_DefaultsWithoutOverrides(t *testing.T) {
	g := newTestGraph(t)

	inst, err := g.Create("repeat", nil)
	require.NoError(t, err)
	assert.Equal(t, ir.FieldInt(1), inst.Fields["count"])
}

func TestCreate_UnknownSchema(t *testing.T) {
	g := newTestGraph(t)

	_, err := g.Create("no-such-type", nil)
	require.Error(t, err)

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, ErrCodeUnknownSchema, gerr.Code)
	assert.Equal(t, 0, g.Len())
}

func TestUpdateField(t *testing.T) {
	g := newTestGraph(t)
	inst, err := g.Create("text-reply", nil)
	require.NoError(t, err)

	require.NoError(t, g.UpdateField(inst.ID, "text", ir.FieldString("updated")))

	got, ok := g.Instance(inst.ID)
	require.True(t, ok)
	assert.Equal(t, ir.FieldString("updated"), got.Fields["text"])
}

func TestUpdateField_NotFound(t *testing.T) {
	g := newTestGraph(t)
	err := g.UpdateField("ghost", "text", ir.FieldString("x"))

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, ErrCodeNotFound, gerr.Code)
	assert.True(t, IsNotFound(err))
}

func TestUpdateField_NoImplicitValidation(t *testing.T) {
	g := newTestGraph(t)
	inst, err := g.Create("wait", nil)
	require.NoError(t, err)

	// The store is a dumb container: it accepts a nonsensical value for a
	// duration field. Coercion is the caller's job.
	require.NoError(t, g.UpdateField(inst.ID, "seconds", ir.FieldString("a lot")))
}

func TestMove(t *testing.T) {
	g := newTestGraph(t)
	inst, err := g.Create("group", nil)
	require.NoError(t, err)

	require.NoError(t, g.Move(inst.ID, ir.Position{X: 100, Y: -40}))
	got, _ := g.Instance(inst.ID)
	assert.Equal(t, ir.Position{X: 100, Y: -40}, got.Position)

	assert.Error(t, g.Move("ghost", ir.Position{}))
}

func TestRemove_CascadesEdgeDeactivation(t *testing.T) {
	g := newTestGraph(t)
	event, err := g.Create("message-received", nil)
	require.NoError(t, err)
	cond, err := g.Create("conditional", nil)
	require.NoError(t, err)
	reply, err := g.Create("text-reply", nil)
	require.NoError(t, err)

	_, err = g.Connect(event.ID, cond.ID, ir.ConnectionSequence, "", 0)
	require.NoError(t, err)
	_, err = g.Connect(cond.ID, reply.ID, ir.ConnectionSequence, "", 0)
	require.NoError(t, err)

	require.NoError(t, g.Remove(cond.ID))

	// Every edge touching the removed block goes inactive immediately.
	assert.Empty(t, g.OutgoingEdges(event.ID))
	assert.Empty(t, g.IncomingEdges(reply.ID))
	assert.Empty(t, g.OutgoingEdges(cond.ID))
	assert.Empty(t, g.IncomingEdges(cond.ID))

	_, ok := g.Instance(cond.ID)
	assert.False(t, ok)
}

func TestRemove_NotFound(t *testing.T) {
	g := newTestGraph(t)
	err := g.Remove("ghost")
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, ErrCodeNotFound, gerr.Code)
}

func TestInstances_SortedByID(t *testing.T) {
	g := New(registry.MustBuiltin(), WithIDGenerator(testutil.NewFixedGenerator("z", "a", "m")))

	for i := 0; i < 3; i++ {
		_, err := g.Create("text-reply", nil)
		require.NoError(t, err)
	}

	got := g.Instances()
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "m", got[1].ID)
	assert.Equal(t, "z", got[2].ID)
}

func TestSnapshot_Independent(t *testing.T) {
	g := newTestGraph(t)
	event, err := g.Create("message-received", nil)
	require.NoError(t, err)
	reply, err := g.Create("text-reply", nil)
	require.NoError(t, err)
	conn, err := g.Connect(event.ID, reply.ID, ir.ConnectionSequence, "", 0)
	require.NoError(t, err)

	snap := g.Snapshot()

	// Mutations after the snapshot do not leak into it.
	require.NoError(t, g.Disconnect(conn.ID))
	require.NoError(t, g.Remove(reply.ID))

	assert.Len(t, snap.OutgoingEdges(event.ID), 1)
	_, ok := snap.Instance(reply.ID)
	assert.True(t, ok)

	// And the snapshot can be mutated without touching the original.
	require.NoError(t, snap.Remove(event.ID))
	_, ok = g.Instance(event.ID)
	assert.True(t, ok)
}

func TestSchema_Lookup(t *testing.T) {
	g := newTestGraph(t)
	inst, err := g.Create("set-variable", nil)
	require.NoError(t, err)

	schema, ok := g.Schema(inst.ID)
	require.True(t, ok)
	assert.Equal(t, ir.CategorySetting, schema.Category)

	_, ok = g.Schema("ghost")
	assert.False(t, ok)
}
