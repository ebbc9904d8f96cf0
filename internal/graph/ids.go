package graph

import "github.com/google/uuid"

// IDGenerator produces ids for new instances and connections.
// Production code uses UUIDv7; tests substitute a fixed generator for
// deterministic ids.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 ids. The embedded
// timestamp makes ids sort by creation time, which keeps debug output and
// document diffs readable.
//
// Stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7 string.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
