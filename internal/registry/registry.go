package registry

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/chatforge/blockflow/internal/ir"
)

// templateToken matches {{fieldName}} placeholders in code templates.
var templateToken = regexp.MustCompile(`\{\{([A-Za-z_][A-Za-z0-9_]*)\}\}`)

// Registry holds the registered block-type schemas for one editing
// session. Construct one per document (or per test); there is no global
// singleton.
type Registry struct {
	schemas      map[string]ir.BlockSchema
	fingerprints map[string]string // block type -> content hash
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		schemas:      make(map[string]ir.BlockSchema),
		fingerprints: make(map[string]string),
	}
}

// LoadBatch validates and registers a batch of schemas atomically.
// If any schema is invalid the whole batch is rejected with a *BatchError
// and the registry is left untouched. Re-registering a schema identical
// to an existing one is a no-op; diverging redefinitions are rejected.
func (r *Registry) LoadBatch(schemas []ir.BlockSchema) error {
	var errs []SchemaError
	staged := make(map[string]ir.BlockSchema, len(schemas))
	stagedPrints := make(map[string]string, len(schemas))

	for _, s := range schemas {
		errs = append(errs, ValidateSchema(s)...)

		print, err := schemaFingerprint(s)
		if err != nil {
			errs = append(errs, SchemaError{
				BlockType: s.BlockType,
				Field:     "default_fields",
				Message:   err.Error(),
				Code:      ErrBadDefaultField,
			})
			continue
		}

		if prev, ok := stagedPrints[s.BlockType]; ok {
			if prev != print {
				errs = append(errs, SchemaError{
					BlockType: s.BlockType,
					Field:     "block_type",
					Message:   "duplicate block type in batch with different contents",
					Code:      ErrDuplicateInBatch,
				})
			}
			continue
		}
		if prev, ok := r.fingerprints[s.BlockType]; ok && prev != print {
			errs = append(errs, SchemaError{
				BlockType: s.BlockType,
				Field:     "block_type",
				Message:   "block type already registered with different contents",
				Code:      ErrSchemaRedefined,
			})
			continue
		}

		staged[s.BlockType] = s.Clone()
		stagedPrints[s.BlockType] = print
	}

	if len(errs) > 0 {
		return &BatchError{Errors: errs}
	}

	// All valid: commit
	for bt, s := range staged {
		r.schemas[bt] = s
		r.fingerprints[bt] = stagedPrints[bt]
	}
	return nil
}

// Register registers a single schema. Same semantics as a one-element
// batch.
func (r *Registry) Register(s ir.BlockSchema) error {
	return r.LoadBatch([]ir.BlockSchema{s})
}

// Get returns a copy of the schema for the given block type.
// The second return is false if the block type is unknown; callers must
// not assume existence.
func (r *Registry) Get(blockType string) (ir.BlockSchema, bool) {
	s, ok := r.schemas[blockType]
	if !ok {
		return ir.BlockSchema{}, false
	}
	return s.Clone(), true
}

// Len returns the number of registered schemas.
func (r *Registry) Len() int {
	return len(r.schemas)
}

// ListByCategory returns all schemas of the given category, sorted by
// block type. Pure query, never mutates state.
func (r *Registry) ListByCategory(c ir.Category) []ir.BlockSchema {
	return r.list(func(s ir.BlockSchema) bool { return s.Category == c })
}

// ListByContext returns all schemas compatible with the given
// graph-context tag, sorted by block type.
func (r *Registry) ListByContext(ctx string) []ir.BlockSchema {
	return r.list(func(s ir.BlockSchema) bool { return s.HasContext(ctx) })
}

// Search returns all schemas whose block type contains the given
// substring (case-insensitive), sorted by block type.
func (r *Registry) Search(substring string) []ir.BlockSchema {
	needle := strings.ToLower(substring)
	return r.list(func(s ir.BlockSchema) bool {
		return strings.Contains(strings.ToLower(s.BlockType), needle)
	})
}

// All returns every registered schema, sorted by block type.
func (r *Registry) All() []ir.BlockSchema {
	return r.list(func(ir.BlockSchema) bool { return true })
}

func (r *Registry) list(keep func(ir.BlockSchema) bool) []ir.BlockSchema {
	var out []ir.BlockSchema
	for _, s := range r.schemas {
		if keep(s) {
			out = append(out, s.Clone())
		}
	}
	slices.SortFunc(out, func(a, b ir.BlockSchema) int {
		return strings.Compare(a.BlockType, b.BlockType)
	})
	return out
}

// ValidateSchema checks a single schema against the registration rules.
// Returns all violations found, not just the first.
func ValidateSchema(s ir.BlockSchema) []SchemaError {
	var errs []SchemaError

	if strings.TrimSpace(s.BlockType) == "" {
		errs = append(errs, SchemaError{
			BlockType: s.BlockType,
			Field:     "block_type",
			Message:   "block type is required and must be non-empty",
			Code:      ErrBlockTypeEmpty,
		})
	}

	if !s.Category.Valid() {
		errs = append(errs, SchemaError{
			BlockType: s.BlockType,
			Field:     "category",
			Message:   fmt.Sprintf("unrecognized category %q", s.Category),
			Code:      ErrUnknownCategory,
		})
	}

	if len(s.CompatibleContexts) == 0 {
		errs = append(errs, SchemaError{
			BlockType: s.BlockType,
			Field:     "compatible_contexts",
			Message:   "at least one compatible context is required",
			Code:      ErrNoContexts,
		})
	}
	for i, ctx := range s.CompatibleContexts {
		if strings.TrimSpace(ctx) == "" {
			errs = append(errs, SchemaError{
				BlockType: s.BlockType,
				Field:     fmt.Sprintf("compatible_contexts[%d]", i),
				Message:   "context tag must be non-empty",
				Code:      ErrNoContexts,
			})
		}
	}

	for name, v := range s.DefaultFields {
		if v == nil {
			errs = append(errs, SchemaError{
				BlockType: s.BlockType,
				Field:     fmt.Sprintf("default_fields[%s]", name),
				Message:   "default field value must not be nil",
				Code:      ErrBadDefaultField,
			})
		}
	}

	if err := checkTemplate(s.CodeTemplate); err != nil {
		errs = append(errs, SchemaError{
			BlockType: s.BlockType,
			Field:     "code_template",
			Message:   err.Error(),
			Code:      ErrMalformedTemplate,
		})
	}

	return errs
}

// checkTemplate rejects templates with unbalanced {{ }} delimiters or
// tokens that are not valid field names.
func checkTemplate(tmpl string) error {
	stripped := templateToken.ReplaceAllString(tmpl, "")
	if i := strings.Index(stripped, "{{"); i >= 0 {
		rest := stripped[i:]
		if j := strings.Index(rest, "}}"); j >= 0 {
			return fmt.Errorf("malformed template token %q", rest[:j+2])
		}
		return fmt.Errorf("unbalanced template delimiter at offset %d", i)
	}
	if strings.Contains(stripped, "}}") {
		return fmt.Errorf("unbalanced template delimiter: stray }}")
	}
	return nil
}

// TemplateFields returns the field names referenced by a code template,
// in order of first appearance.
func TemplateFields(tmpl string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range templateToken.FindAllStringSubmatch(tmpl, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}

// schemaFingerprint computes a content hash of the schema, used to detect
// diverging redefinitions.
func schemaFingerprint(s ir.BlockSchema) (string, error) {
	contexts := make([]any, len(s.CompatibleContexts))
	for i, c := range s.CompatibleContexts {
		contexts[i] = c
	}
	return ir.SchemaHash(map[string]any{
		"block_type": s.BlockType,
		"category":   string(s.Category),
		"contexts":   contexts,
		"fields":     s.DefaultFields,
		"template":   s.CodeTemplate,
		"ports": map[string]any{
			"previous": s.Ports.Previous,
			"next":     s.Ports.Next,
			"output":   s.Ports.Output,
			"input":    s.Ports.Input,
		},
	})
}
