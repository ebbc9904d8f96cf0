package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() GraphDocument {
	return GraphDocument{
		Instances: []BlockInstance{
			{ID: "blk-2", BlockType: "text-reply", Fields: FieldObject{"text": FieldString("Hello")}},
			{ID: "blk-1", BlockType: "message-received", Fields: FieldObject{}},
		},
		Connections: []Connection{
			{ID: "conn-1", SourceBlockID: "blk-1", TargetBlockID: "blk-2", Type: ConnectionSequence, IsActive: true},
		},
	}
}

func TestDocumentHash_StableAcrossOrder(t *testing.T) {
	doc := sampleDocument()

	reversed := GraphDocument{
		Instances:   []BlockInstance{doc.Instances[1], doc.Instances[0]},
		Connections: doc.Connections,
	}

	a, err := DocumentHash(doc)
	require.NoError(t, err)
	b, err := DocumentHash(reversed)
	require.NoError(t, err)
	assert.Equal(t, a, b, "hash must not depend on slice order")
}

func TestDocumentHash_SensitiveToContent(t *testing.T) {
	doc := sampleDocument()
	base, err := DocumentHash(doc)
	require.NoError(t, err)

	changed := sampleDocument()
	changed.Instances[0].Fields["text"] = FieldString("Goodbye")
	other, err := DocumentHash(changed)
	require.NoError(t, err)
	assert.NotEqual(t, base, other)

	flipped := sampleDocument()
	flipped.Connections[0].IsActive = false
	other, err = DocumentHash(flipped)
	require.NoError(t, err)
	assert.NotEqual(t, base, other)
}

func TestDocumentHash_EmptyDocument(t *testing.T) {
	h, err := DocumentHash(GraphDocument{})
	require.NoError(t, err)
	assert.Len(t, h, 64)
}

func TestDocumentHash_DomainSeparation(t *testing.T) {
	data := []byte(`{}`)
	assert.NotEqual(t,
		hashWithDomain(DomainDocument, data),
		hashWithDomain(DomainSchema, data))
}
