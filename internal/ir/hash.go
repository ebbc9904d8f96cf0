package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
)

// Domain prefixes for content-addressed identity. The version suffix
// leaves room for algorithm migration without ambiguity.
const (
	DomainDocument = "blockflow/document/v1"
	DomainSchema   = "blockflow/schema/v1"
)

// hashWithDomain computes SHA-256 over domain + 0x00 + data. The null
// separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DocumentHash computes the content-addressed id of a graph document.
// The hash is stable across field-map iteration order and process
// restarts: it covers instances sorted by id, connections sorted by id,
// and every record serialized canonically.
func DocumentHash(doc GraphDocument) (string, error) {
	instances := make([]any, len(doc.Instances))
	for i, inst := range sortedInstances(doc.Instances) {
		instances[i] = map[string]any{
			"id":         inst.ID,
			"block_type": inst.BlockType,
			"fields":     inst.Fields,
			"x":          inst.Position.X,
			"y":          inst.Position.Y,
		}
	}

	connections := make([]any, len(doc.Connections))
	for i, conn := range sortedConnections(doc.Connections) {
		connections[i] = map[string]any{
			"id":        conn.ID,
			"source":    conn.SourceBlockID,
			"target":    conn.TargetBlockID,
			"type":      string(conn.Type),
			"condition": conn.Condition,
			"order":     conn.Order,
			"seq":       conn.Seq,
			"active":    conn.IsActive,
		}
	}

	canonical, err := MarshalCanonical(map[string]any{
		"instances":   instances,
		"connections": connections,
	})
	if err != nil {
		return "", fmt.Errorf("DocumentHash: %w", err)
	}
	return hashWithDomain(DomainDocument, canonical), nil
}

// SchemaHash computes a content fingerprint for a schema description.
// The registry uses it to detect diverging redefinitions of a block type.
func SchemaHash(desc map[string]any) (string, error) {
	canonical, err := MarshalCanonical(desc)
	if err != nil {
		return "", fmt.Errorf("SchemaHash: %w", err)
	}
	return hashWithDomain(DomainSchema, canonical), nil
}

// MustDocumentHash is like DocumentHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustDocumentHash(doc GraphDocument) string {
	h, err := DocumentHash(doc)
	if err != nil {
		panic(err)
	}
	return h
}

func sortedInstances(in []BlockInstance) []BlockInstance {
	out := append([]BlockInstance(nil), in...)
	slices.SortFunc(out, func(a, b BlockInstance) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

func sortedConnections(in []Connection) []Connection {
	out := append([]Connection(nil), in...)
	slices.SortFunc(out, func(a, b Connection) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}
