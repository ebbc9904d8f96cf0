package store

import (
	"context"
	"fmt"

	"github.com/chatforge/blockflow/internal/ir"
)

// SaveRevision appends a new revision of the named document and returns
// it. Idempotent on content: if any stored revision of the document has
// the same hash, no row is written and the existing revision is returned
// with inserted=false.
//
// The insert-or-fetch runs in one transaction so concurrent saves of the
// same content cannot allocate two seq values.
func (s *Store) SaveRevision(ctx context.Context, docName string, doc ir.GraphDocument) (rev Revision, inserted bool, err error) {
	hash, err := ir.DocumentHash(doc)
	if err != nil {
		return Revision{}, false, fmt.Errorf("save revision: %w", err)
	}
	body, err := marshalBody(doc)
	if err != nil {
		return Revision{}, false, fmt.Errorf("save revision: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Revision{}, false, fmt.Errorf("save revision: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO revisions (doc_name, seq, hash, body)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM revisions WHERE doc_name = ?), ?, ?)
		ON CONFLICT(doc_name, hash) DO NOTHING
	`, docName, docName, hash, body)
	if err != nil {
		return Revision{}, false, fmt.Errorf("save revision: insert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return Revision{}, false, fmt.Errorf("save revision: rows affected: %w", err)
	}

	row := tx.QueryRowContext(ctx, `
		SELECT id, doc_name, seq, hash, body
		FROM revisions
		WHERE doc_name = ? AND hash = ?
	`, docName, hash)
	rev, err = scanRevisionRow(row)
	if err != nil {
		return Revision{}, false, fmt.Errorf("save revision: fetch: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Revision{}, false, fmt.Errorf("save revision: commit: %w", err)
	}
	return rev, rowsAffected > 0, nil
}
