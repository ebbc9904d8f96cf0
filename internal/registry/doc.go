// Package registry implements the block-type schema registry.
//
// Schemas are loaded in batches with all-or-nothing semantics: if any
// schema in a batch fails validation, the whole batch is rejected and the
// registry keeps its previous state. Once registered, a schema is
// immutable. Re-registering an identical schema is a no-op; re-registering
// a diverging schema under the same block type is rejected (append-only).
//
// Declarative schema tables are authored in CUE and compiled to
// ir.BlockSchema values with the cuelang.org/go SDK. The built-in table
// covering the standard block kinds is embedded in this package.
package registry
