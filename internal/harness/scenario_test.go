package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenarioFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	// Scenario validation stats the graph file, so give it one.
	graphPath := filepath.Join(dir, "graph.json")
	require.NoError(t, os.WriteFile(graphPath, []byte(`{"instances":[],"connections":[]}`), 0644))
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenarioValid(t *testing.T) {
	path := writeScenarioFile(t, `
name: smoke
description: "smoke test"
graph: graph.json
messages:
  - entry: cond
    text: "hi"
    expect_next: [reply]
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "smoke", scenario.Name)
	require.Len(t, scenario.Messages, 1)
	require.NotNil(t, scenario.Messages[0].ExpectNext)
	assert.Equal(t, []string{"reply"}, *scenario.Messages[0].ExpectNext)
	assert.True(t, filepath.IsAbs(scenario.Graph), "graph path resolves against the scenario dir")
}

func TestLoadScenarioEmptyExpectNext(t *testing.T) {
	path := writeScenarioFile(t, `
name: none_fire
description: "no branch matches"
graph: graph.json
messages:
  - entry: cond
    text: "hi"
    expect_next: []
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	require.NotNil(t, scenario.Messages[0].ExpectNext)
	assert.Empty(t, *scenario.Messages[0].ExpectNext)
}

func TestLoadScenarioRejectsUnknownFields(t *testing.T) {
	path := writeScenarioFile(t, `
name: typo
description: "typo in key"
graph: graph.json
message:
  - entry: cond
    text: "hi"
    expect_next: []
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing scenario YAML")
}

func TestLoadScenarioMissingName(t *testing.T) {
	path := writeScenarioFile(t, `
description: "no name"
graph: graph.json
messages:
  - entry: cond
    text: "hi"
    expect_next: []
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestLoadScenarioMissingGraphFile(t *testing.T) {
	path := writeScenarioFile(t, `
name: no_graph
description: "graph file absent"
graph: missing.json
messages:
  - entry: cond
    text: "hi"
    expect_next: []
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "graph file not found")
}

func TestLoadScenarioRequiresStepsOrCompile(t *testing.T) {
	path := writeScenarioFile(t, `
name: empty
description: "nothing to do"
graph: graph.json
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "messages, a compile section, or both")
}

func TestLoadScenarioExpectClausesMutuallyExclusive(t *testing.T) {
	path := writeScenarioFile(t, `
name: both
description: "both expects on one step"
graph: graph.json
messages:
  - entry: cond
    text: "hi"
    expect_next: [a]
    expect_path: [a, b]
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestLoadScenarioStepNeedsExpectation(t *testing.T) {
	path := writeScenarioFile(t, `
name: no_expect
description: "step with no expectation"
graph: graph.json
messages:
  - entry: cond
    text: "hi"
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expect_next or expect_path is required")
}
