// Package codegen turns a validated block graph into a single generated
// response program.
//
// Compilation is a deterministic traversal: each entry block is walked
// depth-first over active SEQUENCE and CONDITION edges in Order/Seq
// order, with a static context: conditions that cannot be resolved at
// build time count as reachable, since real evaluation happens at
// message time. Visited blocks render their schema's code template with
// {{field}} substitution and are concatenated in traversal order, EVENT
// blocks as entry points and everything else as body statements.
//
// Missing fields render as the empty string and surface as warnings, not
// errors: a malformed template is schema-authoring debt for ValidateAll
// to catch, never a compile fault. Blocks unreachable from any entry are
// reported as dead code, also a warning.
package codegen
