package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveCommandCreatesRevision(t *testing.T) {
	path := writeFixture(t, "graph.json", linearGraphJSON)
	db := filepath.Join(t.TempDir(), "revisions.db")

	out, err := executeCommand(t, "save", "--db", db, "--name", "welcome", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved welcome revision 1")
}

func TestSaveCommandIdempotent(t *testing.T) {
	path := writeFixture(t, "graph.json", linearGraphJSON)
	db := filepath.Join(t.TempDir(), "revisions.db")

	_, err := executeCommand(t, "save", "--db", db, "--name", "welcome", path)
	require.NoError(t, err)

	out, err := executeCommand(t, "save", "--db", db, "--name", "welcome", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Unchanged")
	assert.Contains(t, out, "revision 1")
}

func TestSaveCommandRejectsInvalidGraph(t *testing.T) {
	path := writeFixture(t, "graph.json", `{
  "instances": [
    {"id": "evt", "block_type": "no-such-type", "fields": {}}
  ],
  "connections": []
}`)
	db := filepath.Join(t.TempDir(), "revisions.db")

	_, err := executeCommand(t, "save", "--db", db, "--name", "bad", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRevisionsCommandListsDocuments(t *testing.T) {
	path := writeFixture(t, "graph.json", linearGraphJSON)
	db := filepath.Join(t.TempDir(), "revisions.db")

	_, err := executeCommand(t, "save", "--db", db, "--name", "welcome", path)
	require.NoError(t, err)
	_, err = executeCommand(t, "save", "--db", db, "--name", "support", path)
	require.NoError(t, err)

	out, err := executeCommand(t, "revisions", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "support")
	assert.Contains(t, out, "welcome")
}

func TestRevisionsCommandListsRevisions(t *testing.T) {
	path := writeFixture(t, "graph.json", linearGraphJSON)
	db := filepath.Join(t.TempDir(), "revisions.db")

	_, err := executeCommand(t, "save", "--db", db, "--name", "welcome", path)
	require.NoError(t, err)

	out, err := executeCommand(t, "revisions", "--db", db, "welcome")
	require.NoError(t, err)
	assert.Contains(t, out, "welcome  seq=1")
}

func TestRevisionsCommandEmptyStore(t *testing.T) {
	db := filepath.Join(t.TempDir(), "revisions.db")

	out, err := executeCommand(t, "revisions", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No documents stored")

	out, err = executeCommand(t, "revisions", "--db", db, "ghost")
	require.NoError(t, err)
	assert.Contains(t, out, "No revisions for ghost")
}
