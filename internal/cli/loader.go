package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/chatforge/blockflow/internal/graph"
	"github.com/chatforge/blockflow/internal/ir"
	"github.com/chatforge/blockflow/internal/registry"
)

// Error code constants, unified across all CLI commands.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeNotFound     = "E002" // Path not found
	ErrCodeParseFailed  = "E003" // Document parse failed
	ErrCodeSchemaFailed = "E004" // Schema compilation failed
	ErrCodeLoadFailed   = "E005" // Graph load rejected the document
	ErrCodeStoreFailed  = "E006" // Revision store error
	ErrCodeWriteFailed  = "E007" // File write error
)

// LoadedGraph is the result of loading a graph document from disk.
type LoadedGraph struct {
	Registry *registry.Registry
	Graph    *graph.Graph
	Doc      ir.GraphDocument
	Path     string
}

// LoadError reports why a document could not be loaded from disk.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadGraph reads a graph document from a JSON or YAML file and rebuilds
// the in-memory graph against the given schema registry. When schemasPath
// is empty the builtin registry is used; otherwise the CUE file at that
// path is compiled into a fresh registry.
func LoadGraph(path, schemasPath string) (*LoadedGraph, error) {
	reg, err := loadRegistry(schemasPath)
	if err != nil {
		return nil, err
	}

	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}

	g, err := graph.LoadDocument(reg, doc)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: err.Error()}
	}

	return &LoadedGraph{Registry: reg, Graph: g, Doc: doc, Path: path}, nil
}

// ReadDocument parses a graph document file. The extension selects the
// decoder: .yaml/.yml go through YAML, everything else is JSON.
func ReadDocument(path string) (ir.GraphDocument, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ir.GraphDocument{}, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("document not found: %s", path)}
	}
	if err != nil {
		return ir.GraphDocument{}, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading %s: %v", path, err)}
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		// YAML decodes into generic values, then round-trips through
		// JSON so the field-value union decoder applies.
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return ir.GraphDocument{}, &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("parsing %s: %v", path, err)}
		}
		data, err = json.Marshal(raw)
		if err != nil {
			return ir.GraphDocument{}, &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("converting %s: %v", path, err)}
		}
	}

	var doc ir.GraphDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return ir.GraphDocument{}, &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("parsing %s: %v", path, err)}
	}
	return doc, nil
}

func loadRegistry(schemasPath string) (*registry.Registry, error) {
	if schemasPath == "" {
		reg, err := registry.Builtin()
		if err != nil {
			return nil, &LoadError{Code: ErrCodeSchemaFailed, Message: fmt.Sprintf("builtin schemas: %v", err)}
		}
		return reg, nil
	}

	src, err := os.ReadFile(schemasPath)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("schemas file not found: %s", schemasPath)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading %s: %v", schemasPath, err)}
	}

	schemas, err := registry.CompileSchemaSource(string(src), schemasPath)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeSchemaFailed, Message: fmt.Sprintf("compiling %s: %v", schemasPath, err)}
	}

	reg := registry.New()
	if err := reg.LoadBatch(schemas); err != nil {
		return nil, &LoadError{Code: ErrCodeSchemaFailed, Message: fmt.Sprintf("registering %s: %v", schemasPath, err)}
	}
	return reg, nil
}
