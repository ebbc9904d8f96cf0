package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/chatforge/blockflow/internal/cli"
	"github.com/chatforge/blockflow/internal/codegen"
	"github.com/chatforge/blockflow/internal/engine"
	"github.com/chatforge/blockflow/internal/graph"
	"github.com/chatforge/blockflow/internal/ir"
)

// Harness executes scenarios against a loaded graph.
type Harness struct {
	graph    *graph.Graph
	resolver *engine.Resolver
	logger   *slog.Logger
}

// Run executes a scenario and returns the result.
//
// The graph loads fresh for every run, so scenarios are isolated from
// each other. An unloadable graph or an unresolvable step is an
// execution error; expectation mismatches are recorded on the Result
// instead.
func Run(scenario *Scenario) (*Result, error) {
	loaded, err := cli.LoadGraph(scenario.Graph, scenario.Schemas)
	if err != nil {
		return nil, fmt.Errorf("loading graph: %w", err)
	}

	h := &Harness{
		graph:    loaded.Graph,
		resolver: engine.NewResolver(loaded.Graph),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	result := NewResult()
	if err := h.executeMessages(scenario.Messages, result); err != nil {
		return nil, err
	}
	if scenario.Compile != nil {
		if err := h.executeCompile(scenario.Compile, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (h *Harness) executeMessages(messages []MessageStep, result *Result) error {
	for i, step := range messages {
		ctx := ir.RuntimeContext{
			IncomingText: step.Text,
			Variables:    step.Vars,
		}

		event := TraceEvent{
			Step:  i,
			Entry: step.Entry,
			Text:  step.Text,
			Vars:  step.Vars,
		}

		next, err := h.resolver.NextBlocks(step.Entry, ctx)
		if err != nil {
			return fmt.Errorf("messages[%d]: %w", i, err)
		}
		event.Next = emptyNotNil(next)

		if step.ExpectPath != nil || step.Path {
			path, err := h.resolver.ExecutionPath(step.Entry, ctx, 0)
			if err != nil {
				return fmt.Errorf("messages[%d]: %w", i, err)
			}
			event.Path = path
		}

		checkMessageStep(i, step, event, result)
		result.Trace = append(result.Trace, event)

		h.logger.Info("message step resolved",
			"step", i,
			"entry", step.Entry,
			"next", event.Next,
		)
	}
	return nil
}

func (h *Harness) executeCompile(spec *CompileSpec, result *Result) error {
	entries := spec.Entries
	if len(entries) == 0 {
		for _, inst := range h.graph.Instances() {
			if schema, ok := h.graph.Schema(inst.ID); ok && schema.Category == ir.CategoryEvent {
				entries = append(entries, inst.ID)
			}
		}
	}

	compiled, err := codegen.Compile(h.graph, entries)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}
	result.Code = compiled.Code
	result.Unreachable = compiled.UnreachableBlockIDs

	checkCompile(spec, compiled, result)
	return nil
}

// emptyNotNil keeps trace JSON stable: no block firing serializes as []
// rather than null.
func emptyNotNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
