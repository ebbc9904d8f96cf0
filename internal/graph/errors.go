package graph

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes graph mutation errors.
type ErrorCode string

const (
	// ErrCodeUnknownSchema means Create referenced an unregistered block type.
	ErrCodeUnknownSchema ErrorCode = "UNKNOWN_SCHEMA"

	// ErrCodeNotFound means an instance or connection id does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeUnknownBlock means a connection endpoint references a
	// non-existent instance.
	ErrCodeUnknownBlock ErrorCode = "UNKNOWN_BLOCK"

	// ErrCodeCycleDetected means the edit would create a directed cycle
	// in the active-edge subgraph.
	ErrCodeCycleDetected ErrorCode = "CYCLE_DETECTED"

	// ErrCodeIncompatibleBlocks means the category pair or port
	// capabilities forbid the connection.
	ErrCodeIncompatibleBlocks ErrorCode = "INCOMPATIBLE_BLOCKS"

	// ErrCodeInvalidConnection means the connection request itself is
	// malformed (bad type, condition missing or misplaced).
	ErrCodeInvalidConnection ErrorCode = "INVALID_CONNECTION"
)

// Error is a structured graph mutation error. All rejections leave the
// graph in its prior valid state.
type Error struct {
	Code         ErrorCode
	Message      string
	BlockID      string
	ConnectionID string
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.BlockID != "":
		return fmt.Sprintf("%s: %s (block=%s)", e.Code, e.Message, e.BlockID)
	case e.ConnectionID != "":
		return fmt.Sprintf("%s: %s (connection=%s)", e.Code, e.Message, e.ConnectionID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsCycleError reports whether err is a cycle rejection.
// Uses errors.As to handle wrapped errors.
func IsCycleError(err error) bool {
	return hasCode(err, ErrCodeCycleDetected)
}

// IsNotFound reports whether err is a missing-entity error of any kind.
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound) ||
		hasCode(err, ErrCodeUnknownBlock) ||
		hasCode(err, ErrCodeUnknownSchema)
}

// IsIncompatibleError reports whether err is a compatibility rejection.
func IsIncompatibleError(err error) bool {
	return hasCode(err, ErrCodeIncompatibleBlocks)
}

func hasCode(err error, code ErrorCode) bool {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Code == code
	}
	return false
}
