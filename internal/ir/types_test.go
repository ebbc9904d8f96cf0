package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_Valid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), "category %s should be valid", c)
	}
	assert.False(t, Category("WIDGET").Valid())
	assert.False(t, Category("").Valid())
	assert.False(t, Category("event").Valid(), "categories are case-sensitive")
}

func TestConnectionType_Valid(t *testing.T) {
	assert.True(t, ConnectionSequence.Valid())
	assert.True(t, ConnectionCondition.Valid())
	assert.True(t, ConnectionData.Valid())
	assert.False(t, ConnectionType("FLOW").Valid())
}

func TestBlockSchema_Clone_Independent(t *testing.T) {
	orig := BlockSchema{
		BlockType:          "text-reply",
		Category:           CategoryReply,
		CompatibleContexts: []string{"flow"},
		DefaultFields:      FieldObject{"text": FieldString("")},
		CodeTemplate:       "send({{text}})",
		Ports:              PortSet{Previous: true},
	}
	clone := orig.Clone()
	clone.CompatibleContexts[0] = "mutated"
	clone.DefaultFields["text"] = FieldString("mutated")

	assert.Equal(t, "flow", orig.CompatibleContexts[0])
	assert.Equal(t, FieldString(""), orig.DefaultFields["text"])
}

func TestBlockSchema_HasContext(t *testing.T) {
	s := BlockSchema{CompatibleContexts: []string{"flow", "group"}}
	assert.True(t, s.HasContext("flow"))
	assert.True(t, s.HasContext("group"))
	assert.False(t, s.HasContext("canvas"))
}

func TestGraphDocument_RoundTrip(t *testing.T) {
	doc := GraphDocument{
		Instances: []BlockInstance{
			{
				ID:        "blk-1",
				BlockType: "text-reply",
				Fields:    FieldObject{"text": FieldString("Hello"), "delay": FieldInt(3)},
				Position:  Position{X: 10, Y: 20},
			},
		},
		Connections: []Connection{
			{
				ID:            "conn-1",
				SourceBlockID: "blk-0",
				TargetBlockID: "blk-1",
				Type:          ConnectionCondition,
				Condition:     "contains:hi",
				Order:         2,
				Seq:           5,
				IsActive:      true,
			},
		},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var back GraphDocument
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, doc, back)
}
