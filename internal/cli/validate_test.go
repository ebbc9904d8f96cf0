package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommandCleanGraph(t *testing.T) {
	path := writeFixture(t, "graph.json", linearGraphJSON)

	out, err := executeCommand(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Graph is valid")
}

func TestValidateCommandTerminalReplyWarning(t *testing.T) {
	path := writeFixture(t, "graph.json", `{
  "instances": [
    {"id": "evt", "block_type": "message-received", "fields": {"keyword": "hi"}},
    {"id": "reply", "block_type": "text-reply", "fields": {"text": "a"}},
    {"id": "wait", "block_type": "wait", "fields": {"seconds": 1}}
  ],
  "connections": [
    {"id": "c1", "source_block_id": "evt", "target_block_id": "reply",
     "connection_type": "SEQUENCE", "order": 0, "seq": 1, "is_active": true},
    {"id": "c2", "source_block_id": "reply", "target_block_id": "wait",
     "connection_type": "SEQUENCE", "order": 0, "seq": 2, "is_active": true}
  ]
}`)

	out, err := executeCommand(t, "validate", path)
	require.NoError(t, err, "warnings do not fail validation")
	assert.Contains(t, out, "warning")
	assert.Contains(t, out, "TERMINAL_REPLY")
}

func TestValidateCommandJSON(t *testing.T) {
	path := writeFixture(t, "graph.json", linearGraphJSON)

	out, err := executeCommand(t, "--format", "json", "validate", path)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestValidateCommandRejectsCycle(t *testing.T) {
	// An active-edge cycle rejects the whole document at load.
	path := writeFixture(t, "graph.json", `{
  "instances": [
    {"id": "a", "block_type": "conditional", "fields": {"label": "a"}},
    {"id": "b", "block_type": "conditional", "fields": {"label": "b"}}
  ],
  "connections": [
    {"id": "c1", "source_block_id": "a", "target_block_id": "b",
     "connection_type": "SEQUENCE", "order": 0, "seq": 1, "is_active": true},
    {"id": "c2", "source_block_id": "b", "target_block_id": "a",
     "connection_type": "SEQUENCE", "order": 0, "seq": 2, "is_active": true}
  ]
}`)

	out, err := executeCommand(t, "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeLoadFailed)
}

func TestValidateCommandDanglingReference(t *testing.T) {
	path := writeFixture(t, "graph.json", `{
  "instances": [
    {"id": "evt", "block_type": "message-received", "fields": {"keyword": "hi"}}
  ],
  "connections": [
    {"id": "c1", "source_block_id": "evt", "target_block_id": "ghost",
     "connection_type": "SEQUENCE", "order": 0, "seq": 1, "is_active": true}
  ]
}`)

	_, err := executeCommand(t, "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestValidateCommandCustomSchemas(t *testing.T) {
	schemas := writeFixture(t, "schemas.cue", `
blocks: {
	"ping": {
		category: "EVENT"
		contexts: ["flow"]
		ports: {next: true}
		fields: {}
		template: "when ping()"
	}
	"pong": {
		category: "REPLY"
		contexts: ["flow"]
		ports: {previous: true, next: true}
		fields: {text: ""}
		template: "send_text(\"{{text}}\")"
	}
}`)
	path := writeFixture(t, "graph.json", `{
  "instances": [
    {"id": "p1", "block_type": "ping", "fields": {}},
    {"id": "p2", "block_type": "pong", "fields": {"text": "pong"}}
  ],
  "connections": [
    {"id": "c1", "source_block_id": "p1", "target_block_id": "p2",
     "connection_type": "SEQUENCE", "order": 0, "seq": 1, "is_active": true}
  ]
}`)

	out, err := executeCommand(t, "validate", "--schemas", schemas, path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Graph is valid")
}
