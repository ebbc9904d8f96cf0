package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatforge/blockflow/internal/ir"
)

func validSchema(blockType string) ir.BlockSchema {
	return ir.BlockSchema{
		BlockType:          blockType,
		Category:           ir.CategoryReply,
		CompatibleContexts: []string{"flow"},
		DefaultFields:      ir.FieldObject{"text": ir.FieldString("")},
		CodeTemplate:       "send_text(\"{{text}}\")",
		Ports:              ir.PortSet{Previous: true},
	}
}

func TestRegistry_RegisterThenGet(t *testing.T) {
	r := New()
	want := validSchema("text-reply")
	require.NoError(t, r.Register(want))

	got, ok := r.Get("text-reply")
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestRegistry_Get_Unknown(t *testing.T) {
	r := New()
	_, ok := r.Get("no-such-block")
	assert.False(t, ok)
}

func TestRegistry_Get_ReturnsCopy(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(validSchema("text-reply")))

	got, ok := r.Get("text-reply")
	require.True(t, ok)
	got.DefaultFields["text"] = ir.FieldString("mutated")
	got.CompatibleContexts[0] = "mutated"

	again, ok := r.Get("text-reply")
	require.True(t, ok)
	assert.Equal(t, ir.FieldString(""), again.DefaultFields["text"])
	assert.Equal(t, "flow", again.CompatibleContexts[0])
}

func TestRegistry_LoadBatch_AllOrNothing(t *testing.T) {
	r := New()

	bad := validSchema("bad")
	bad.CompatibleContexts = nil

	err := r.LoadBatch([]ir.BlockSchema{validSchema("good"), bad})
	require.Error(t, err)

	var batchErr *BatchError
	require.ErrorAs(t, err, &batchErr)
	require.Len(t, batchErr.Errors, 1)
	assert.Equal(t, ErrNoContexts, batchErr.Errors[0].Code)

	// The valid schema must not have been committed either.
	_, ok := r.Get("good")
	assert.False(t, ok, "batch rejection must leave registry untouched")
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_Reregister_IdenticalIsNoop(t *testing.T) {
	r := New()
	s := validSchema("text-reply")
	require.NoError(t, r.Register(s))
	require.NoError(t, r.Register(s))
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_Reregister_DivergingIsRejected(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(validSchema("text-reply")))

	changed := validSchema("text-reply")
	changed.CodeTemplate = "send_text({{text}})"
	err := r.Register(changed)
	require.Error(t, err)

	var batchErr *BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, ErrSchemaRedefined, batchErr.Errors[0].Code)

	// Original schema survives.
	got, ok := r.Get("text-reply")
	require.True(t, ok)
	assert.Equal(t, "send_text(\"{{text}}\")", got.CodeTemplate)
}

func TestRegistry_LoadBatch_DuplicateInBatch(t *testing.T) {
	r := New()
	a := validSchema("dup")
	b := validSchema("dup")
	b.CodeTemplate = "other({{text}})"

	err := r.LoadBatch([]ir.BlockSchema{a, b})
	require.Error(t, err)
	var batchErr *BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, ErrDuplicateInBatch, batchErr.Errors[0].Code)
}

func TestRegistry_LoadBatch_IdenticalDuplicateInBatchOK(t *testing.T) {
	r := New()
	s := validSchema("dup")
	require.NoError(t, r.LoadBatch([]ir.BlockSchema{s, s}))
	assert.Equal(t, 1, r.Len())
}

func TestValidateSchema_CollectsAllErrors(t *testing.T) {
	s := ir.BlockSchema{
		BlockType:    "",
		Category:     ir.Category("WIDGET"),
		CodeTemplate: "send({{text)",
	}
	errs := ValidateSchema(s)
	codes := make([]string, len(errs))
	for i, e := range errs {
		codes[i] = e.Code
	}
	assert.Contains(t, codes, ErrBlockTypeEmpty)
	assert.Contains(t, codes, ErrUnknownCategory)
	assert.Contains(t, codes, ErrNoContexts)
	assert.Contains(t, codes, ErrMalformedTemplate)
}

func TestValidateSchema_EmptyContextTag(t *testing.T) {
	s := validSchema("x")
	s.CompatibleContexts = []string{"flow", "  "}
	errs := ValidateSchema(s)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrNoContexts, errs[0].Code)
}

func TestRegistry_ListByCategory(t *testing.T) {
	r := New()
	reply := validSchema("text-reply")
	event := validSchema("message-received")
	event.Category = ir.CategoryEvent
	require.NoError(t, r.LoadBatch([]ir.BlockSchema{reply, event}))

	events := r.ListByCategory(ir.CategoryEvent)
	require.Len(t, events, 1)
	assert.Equal(t, "message-received", events[0].BlockType)

	assert.Empty(t, r.ListByCategory(ir.CategoryLayout))
}

func TestRegistry_ListByContext(t *testing.T) {
	r := New()
	a := validSchema("a-block")
	b := validSchema("b-block")
	b.CompatibleContexts = []string{"group"}
	require.NoError(t, r.LoadBatch([]ir.BlockSchema{a, b}))

	flow := r.ListByContext("flow")
	require.Len(t, flow, 1)
	assert.Equal(t, "a-block", flow[0].BlockType)
}

func TestRegistry_Search_CaseInsensitive(t *testing.T) {
	r := New()
	require.NoError(t, r.LoadBatch([]ir.BlockSchema{
		validSchema("text-reply"),
		validSchema("image-reply"),
		validSchema("wait"),
	}))

	hits := r.Search("REPLY")
	require.Len(t, hits, 2)
	// Sorted by block type.
	assert.Equal(t, "image-reply", hits[0].BlockType)
	assert.Equal(t, "text-reply", hits[1].BlockType)

	assert.Empty(t, r.Search("zzz"))
}

func TestTemplateFields(t *testing.T) {
	fields := TemplateFields("send(\"{{text}}\", {{count}}, \"{{text}}\")")
	assert.Equal(t, []string{"text", "count"}, fields)

	assert.Empty(t, TemplateFields("no tokens here"))
}

func TestCheckTemplate(t *testing.T) {
	assert.NoError(t, checkTemplate("send({{text}})"))
	assert.NoError(t, checkTemplate("plain text"))
	assert.Error(t, checkTemplate("send({{text)"))
	assert.Error(t, checkTemplate("send({{bad name}})"))
	assert.Error(t, checkTemplate("stray close }}"))
}
