package registry

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/chatforge/blockflow/internal/ir"
)

// CompileError reports a failure to compile a CUE schema table.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Field, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// CompileSchemaSource compiles CUE source text into block schemas.
// The source must define a top-level "blocks" struct, one entry per
// block type. filename is used in error positions only.
func CompileSchemaSource(src, filename string) ([]ir.BlockSchema, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return CompileSchemas(v)
}

// CompileSchemas extracts block schemas from a compiled CUE value.
// The expected shape is:
//
//	blocks: {
//		"text-reply": {
//			category: "REPLY"
//			contexts: ["flow"]
//			ports: {previous: true}
//			fields: {text: ""}
//			template: "send({{text}})"
//		}
//	}
func CompileSchemas(v cue.Value) ([]ir.BlockSchema, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	blocksVal := v.LookupPath(cue.ParsePath("blocks"))
	if !blocksVal.Exists() {
		return nil, &CompileError{
			Field:   "blocks",
			Message: "schema table must define a top-level blocks struct",
			Pos:     v.Pos(),
		}
	}

	iter, err := blocksVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var schemas []ir.BlockSchema
	for iter.Next() {
		schema, err := compileSchema(selectorName(iter.Selector()), iter.Value())
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, schema)
	}
	return schemas, nil
}

func compileSchema(blockType string, v cue.Value) (ir.BlockSchema, error) {
	schema := ir.BlockSchema{BlockType: blockType}

	catVal := v.LookupPath(cue.ParsePath("category"))
	if !catVal.Exists() {
		return schema, &CompileError{
			Field:   blockType + ".category",
			Message: "category is required",
			Pos:     v.Pos(),
		}
	}
	cat, err := catVal.String()
	if err != nil {
		return schema, formatCUEError(err)
	}
	schema.Category = ir.Category(cat)

	ctxVal := v.LookupPath(cue.ParsePath("contexts"))
	if ctxVal.Exists() {
		ctxIter, err := ctxVal.List()
		if err != nil {
			return schema, formatCUEError(err)
		}
		for ctxIter.Next() {
			tag, err := ctxIter.Value().String()
			if err != nil {
				return schema, formatCUEError(err)
			}
			schema.CompatibleContexts = append(schema.CompatibleContexts, tag)
		}
	}

	schema.Ports = compilePorts(v.LookupPath(cue.ParsePath("ports")))

	schema.DefaultFields, err = compileFields(blockType, v.LookupPath(cue.ParsePath("fields")))
	if err != nil {
		return schema, err
	}

	tmplVal := v.LookupPath(cue.ParsePath("template"))
	if tmplVal.Exists() {
		schema.CodeTemplate, err = tmplVal.String()
		if err != nil {
			return schema, formatCUEError(err)
		}
	}

	return schema, nil
}

func compilePorts(v cue.Value) ir.PortSet {
	var ports ir.PortSet
	if !v.Exists() {
		return ports
	}
	ports.Previous = lookupBool(v, "previous")
	ports.Next = lookupBool(v, "next")
	ports.Output = lookupBool(v, "output")
	ports.Input = lookupBool(v, "input")
	return ports
}

func lookupBool(v cue.Value, name string) bool {
	b, err := v.LookupPath(cue.ParsePath(name)).Bool()
	return err == nil && b
}

func compileFields(blockType string, v cue.Value) (ir.FieldObject, error) {
	fields := make(ir.FieldObject)
	if !v.Exists() {
		return fields, nil
	}

	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		name := selectorName(iter.Selector())
		val := iter.Value()
		switch val.IncompleteKind() {
		case cue.StringKind:
			s, err := val.String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			fields[name] = ir.FieldString(s)
		case cue.IntKind:
			n, err := val.Int64()
			if err != nil {
				return nil, formatCUEError(err)
			}
			fields[name] = ir.FieldInt(n)
		case cue.BoolKind:
			b, err := val.Bool()
			if err != nil {
				return nil, formatCUEError(err)
			}
			fields[name] = ir.FieldBool(b)
		case cue.NullKind:
			fields[name] = ir.FieldNull{}
		default:
			return nil, &CompileError{
				Field:   fmt.Sprintf("%s.fields.%s", blockType, name),
				Message: fmt.Sprintf("unsupported default field kind %v (string, int, bool, null allowed)", val.IncompleteKind()),
				Pos:     val.Pos(),
			}
		}
	}
	return fields, nil
}

// selectorName returns the unquoted label for a struct field selector.
func selectorName(sel cue.Selector) string {
	if sel.LabelType() == cue.StringLabel {
		return sel.Unquoted()
	}
	return sel.String()
}

// formatCUEError converts a CUE SDK error into a CompileError with
// position information when available.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := cueerrors.Errors(err)
	if len(errs) > 0 {
		return &CompileError{
			Message: errs[0].Error(),
			Pos:     errs[0].Position(),
		}
	}
	return &CompileError{Message: err.Error()}
}
