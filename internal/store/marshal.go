package store

import (
	"encoding/json"
	"fmt"

	"github.com/chatforge/blockflow/internal/ir"
)

// marshalBody serializes a document for storage. Identity never depends
// on these bytes: the hash column is computed over canonical JSON by
// ir.DocumentHash, while the body is plain encoding/json in the same
// shape LoadDocument accepts.
func marshalBody(doc ir.GraphDocument) (string, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	return string(b), nil
}

func unmarshalBody(body string) (ir.GraphDocument, error) {
	var doc ir.GraphDocument
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return ir.GraphDocument{}, fmt.Errorf("unmarshal document: %w", err)
	}
	return doc, nil
}
