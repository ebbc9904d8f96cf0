// Package ir defines the core data model for blockflow: block-type
// schemas, live block instances, typed connections, and the serializable
// graph document that ties them together.
//
// The model follows an arena+index layout: instances and connections are
// flat records keyed by generated id, never nested object graphs. An
// instance references its schema by blockType (a weak reference resolved
// through the registry), so schemas can be reloaded without invalidating
// instances.
//
// Field values use a sealed union (FieldValue) restricted to null, string,
// int64, and bool. Floats are forbidden: generated code and document
// hashes must be byte-stable across platforms, and float formatting is not.
//
// The package also provides canonical JSON serialization (RFC 8785 key
// ordering, NFC-normalized strings) and content-addressed document hashing
// used by the revision store.
package ir
