package registry

import "fmt"

// Schema validation error codes (E100-E199).
const (
	ErrBlockTypeEmpty    = "E101" // block type is required
	ErrUnknownCategory   = "E102" // category is not a recognized variant
	ErrNoContexts        = "E103" // compatible contexts must be non-empty
	ErrBadDefaultField   = "E104" // malformed default field value
	ErrDuplicateInBatch  = "E105" // same block type twice in one batch
	ErrMalformedTemplate = "E106" // unbalanced or malformed template tokens
	ErrSchemaRedefined   = "E107" // block type already registered with different contents
)

// SchemaError describes why a schema failed registration.
type SchemaError struct {
	BlockType string `json:"block_type"`
	Field     string `json:"field"`
	Message   string `json:"message"`
	Code      string `json:"code"`
}

// Error implements the error interface.
func (e SchemaError) Error() string {
	if e.BlockType != "" {
		return fmt.Sprintf("[%s] schema %q: %s: %s", e.Code, e.BlockType, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// BatchError aggregates the validation errors that rejected a batch load.
type BatchError struct {
	Errors []SchemaError
}

// Error implements the error interface.
func (e *BatchError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%s (and %d more)", e.Errors[0].Error(), len(e.Errors)-1)
}
