// Package store provides SQLite-backed revision history for graph
// documents.
//
// Each save appends one revision row: the document body as JSON plus its
// content-addressed hash (RFC 8785 canonical JSON, SHA-256 with domain
// separation, computed in internal/ir). Saving a document whose hash
// equals the latest stored revision is a no-op, so repeated saves of an
// unchanged graph never grow the log.
//
// Ordering uses a per-document seq INTEGER, never timestamps; queries
// order by seq so listings are identical across machines and restarts.
//
// Database configuration:
//   - WAL mode for concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
package store
