package registry

import (
	_ "embed"
	"fmt"
)

// builtinCUE is the declarative table of standard block kinds. It is
// compiled once per Builtin() call; the table is static, so failure to
// compile it is a programming error, not a runtime condition.
//
//go:embed builtin.cue
var builtinCUE string

// Builtin returns a registry pre-loaded with the standard block kinds:
// message triggers, replies, control blocks (conditional, repeat, wait),
// variable operations, and container/content/layout blocks.
func Builtin() (*Registry, error) {
	schemas, err := CompileSchemaSource(builtinCUE, "builtin.cue")
	if err != nil {
		return nil, fmt.Errorf("compile builtin schema table: %w", err)
	}
	r := New()
	if err := r.LoadBatch(schemas); err != nil {
		return nil, fmt.Errorf("load builtin schema table: %w", err)
	}
	return r, nil
}

// MustBuiltin is like Builtin but panics on error. The builtin table is
// covered by tests, so a panic here means a broken build, not bad input.
func MustBuiltin() *Registry {
	r, err := Builtin()
	if err != nil {
		panic(err)
	}
	return r
}
