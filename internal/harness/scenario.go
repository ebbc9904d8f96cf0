package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario for one graph document.
type Scenario struct {
	// Name uniquely identifies this scenario; the golden file shares it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Graph is the path to the graph document (JSON or YAML), relative
	// to the scenario file.
	Graph string `yaml:"graph"`

	// Schemas optionally points at a CUE schema table. Empty means the
	// builtin block table.
	Schemas string `yaml:"schemas,omitempty"`

	// Messages is the scripted message sequence.
	Messages []MessageStep `yaml:"messages,omitempty"`

	// Compile optionally compiles the graph and checks the output.
	Compile *CompileSpec `yaml:"compile,omitempty"`
}

// MessageStep resolves one incoming message from an entry block.
type MessageStep struct {
	// Entry is the block id resolution starts from.
	Entry string `yaml:"entry"`

	// Text is the incoming message text.
	Text string `yaml:"text"`

	// Vars are conversation variables available to ${name} predicates.
	Vars map[string]string `yaml:"vars,omitempty"`

	// Path switches the step from one-step resolution to a full
	// execution-path walk.
	Path bool `yaml:"path,omitempty"`

	// ExpectNext is the exact expected next-block list, in edge order.
	// nil skips the check; an empty list asserts no block fires.
	ExpectNext *[]string `yaml:"expect_next,omitempty"`

	// ExpectPath is the exact expected execution path. Implies Path.
	ExpectPath *[]string `yaml:"expect_path,omitempty"`
}

// CompileSpec checks code generation output.
type CompileSpec struct {
	// Entries are explicit entry block ids. Empty means every EVENT
	// block in the graph.
	Entries []string `yaml:"entries,omitempty"`

	// ExpectUnreachable is the exact expected dead-block list, sorted.
	ExpectUnreachable []string `yaml:"expect_unreachable,omitempty"`

	// ExpectContains lists substrings the generated code must include.
	ExpectContains []string `yaml:"expect_contains,omitempty"`

	// ExpectExcludes lists substrings the generated code must not
	// include.
	ExpectExcludes []string `yaml:"expect_excludes,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. File paths inside
// the scenario resolve relative to the scenario file's directory.
// Unknown YAML fields are rejected, catching typos like "message:" for
// "messages:".
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}

	base := filepath.Dir(path)
	if scenario.Graph != "" && !filepath.IsAbs(scenario.Graph) {
		scenario.Graph = filepath.Join(base, scenario.Graph)
	}
	if scenario.Schemas != "" && !filepath.IsAbs(scenario.Schemas) {
		scenario.Schemas = filepath.Join(base, scenario.Schemas)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Graph == "" {
		return fmt.Errorf("graph is required")
	}
	if _, err := os.Stat(s.Graph); os.IsNotExist(err) {
		return fmt.Errorf("graph file not found: %s", s.Graph)
	}
	if len(s.Messages) == 0 && s.Compile == nil {
		return fmt.Errorf("scenario needs messages, a compile section, or both")
	}

	for i, step := range s.Messages {
		if step.Entry == "" {
			return fmt.Errorf("messages[%d]: entry is required", i)
		}
		if step.ExpectNext == nil && step.ExpectPath == nil {
			return fmt.Errorf("messages[%d]: expect_next or expect_path is required", i)
		}
		if step.ExpectNext != nil && step.ExpectPath != nil {
			return fmt.Errorf("messages[%d]: expect_next and expect_path are mutually exclusive", i)
		}
	}
	return nil
}
