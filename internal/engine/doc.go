// Package engine implements the runtime execution resolver.
//
// The resolver is deliberately stateless: each resolution is a pure
// function of (graph snapshot, current block, runtime context). Edge
// inclusion follows the connection type: SEQUENCE always runs, DATA never
// runs (it is value wiring, consumed by the code generator), CONDITION
// runs when its predicate matches the incoming message.
//
// Predicates fail closed. A malformed or unrecognized predicate evaluates
// to false and never raises an error, because one bad predicate gates a
// single branch and must not halt message processing.
//
// Branching is non-exclusive: NextBlocks returns every block whose edge
// qualifies, not just the first match. Multiple matching CONDITION
// branches all execute. This mirrors the editor's observed behavior and
// departs from if/else semantics on purpose.
package engine
