package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatforge/blockflow/internal/graph"
	"github.com/chatforge/blockflow/internal/ir"
)

func TestExecutionPath_LinearFlow(t *testing.T) {
	g := newTestGraph(t)
	event := mustCreate(t, g, "message-received")
	wait := mustCreate(t, g, "wait")
	reply := mustCreate(t, g, "text-reply")
	mustConnect(t, g, event.ID, wait.ID, ir.ConnectionSequence, "", 0)
	mustConnect(t, g, wait.ID, reply.ID, ir.ConnectionSequence, "", 0)

	r := NewResolver(g)
	path, err := r.ExecutionPath(event.ID, ir.RuntimeContext{}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{event.ID, wait.ID, reply.ID}, path)
}

func TestExecutionPath_ConditionGating(t *testing.T) {
	g := newTestGraph(t)
	event := mustCreate(t, g, "message-received")
	cond := mustCreate(t, g, "conditional")
	replyA := mustCreate(t, g, "text-reply")
	replyB := mustCreate(t, g, "text-reply")
	mustConnect(t, g, event.ID, cond.ID, ir.ConnectionSequence, "", 0)
	mustConnect(t, g, cond.ID, replyA.ID, ir.ConnectionCondition, "contains:hi", 1)
	mustConnect(t, g, cond.ID, replyB.ID, ir.ConnectionCondition, "contains:bye", 2)

	r := NewResolver(g)
	path, err := r.ExecutionPath(event.ID, ir.RuntimeContext{IncomingText: "hi"}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{event.ID, cond.ID, replyA.ID}, path)
}

func TestExecutionPath_DepthBound(t *testing.T) {
	g := newTestGraph(t)
	event := mustCreate(t, g, "message-received")
	prev := event.ID
	var all []string
	all = append(all, event.ID)
	for i := 0; i < 5; i++ {
		next := mustCreate(t, g, "conditional")
		mustConnect(t, g, prev, next.ID, ir.ConnectionSequence, "", 0)
		all = append(all, next.ID)
		prev = next.ID
	}

	r := NewResolver(g)
	path, err := r.ExecutionPath(event.ID, ir.RuntimeContext{}, 3)
	require.NoError(t, err)
	assert.Equal(t, all[:3], path, "walk stops at the depth bound")

	full, err := r.ExecutionPath(event.ID, ir.RuntimeContext{}, 0)
	require.NoError(t, err)
	assert.Equal(t, all, full, "default bound covers the whole flow")
}

func TestExecutionPath_DiamondVisitsOnce(t *testing.T) {
	g := newTestGraph(t)
	event := mustCreate(t, g, "message-received")
	a := mustCreate(t, g, "conditional")
	b := mustCreate(t, g, "conditional")
	join := mustCreate(t, g, "text-reply")
	mustConnect(t, g, event.ID, a.ID, ir.ConnectionSequence, "", 1)
	mustConnect(t, g, event.ID, b.ID, ir.ConnectionSequence, "", 2)
	mustConnect(t, g, a.ID, join.ID, ir.ConnectionSequence, "", 0)
	mustConnect(t, g, b.ID, join.ID, ir.ConnectionSequence, "", 0)

	r := NewResolver(g)
	path, err := r.ExecutionPath(event.ID, ir.RuntimeContext{}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{event.ID, a.ID, join.ID, b.ID}, path, "join block appears once")
}

func TestExecutionPath_UnknownEntry(t *testing.T) {
	r := NewResolver(newTestGraph(t))
	_, err := r.ExecutionPath("ghost", ir.RuntimeContext{}, 0)
	assert.True(t, graph.IsNotFound(err))
}
