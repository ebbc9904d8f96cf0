package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/chatforge/blockflow/internal/codegen"
)

// checkMessageStep validates one resolved message against its expect
// clause. Expected lists compare exactly, order included: resolution
// order is part of the contract.
func checkMessageStep(index int, step MessageStep, event TraceEvent, result *Result) {
	if step.ExpectNext != nil {
		want := *step.ExpectNext
		if !slices.Equal(want, event.Next) {
			result.AddError(fmt.Sprintf(
				"messages[%d]: expected next blocks %v, got %v", index, want, event.Next))
		}
	}
	if step.ExpectPath != nil {
		want := *step.ExpectPath
		if !slices.Equal(want, event.Path) {
			result.AddError(fmt.Sprintf(
				"messages[%d]: expected path %v, got %v", index, want, event.Path))
		}
	}
}

// checkCompile validates generated code against the compile section.
func checkCompile(spec *CompileSpec, compiled *codegen.Result, result *Result) {
	if spec.ExpectUnreachable != nil {
		want := spec.ExpectUnreachable
		got := compiled.UnreachableBlockIDs
		if !slices.Equal(want, got) {
			result.AddError(fmt.Sprintf(
				"compile: expected unreachable blocks %v, got %v", want, got))
		}
	}
	for _, substr := range spec.ExpectContains {
		if !strings.Contains(compiled.Code, substr) {
			result.AddError(fmt.Sprintf("compile: code does not contain %q", substr))
		}
	}
	for _, substr := range spec.ExpectExcludes {
		if strings.Contains(compiled.Code, substr) {
			result.AddError(fmt.Sprintf("compile: code must not contain %q", substr))
		}
	}
}
