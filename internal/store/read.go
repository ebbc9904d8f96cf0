package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chatforge/blockflow/internal/ir"
)

// Revision is one stored snapshot of a graph document.
type Revision struct {
	ID      int64  `json:"id"`
	DocName string `json:"doc_name"`
	Seq     int64  `json:"seq"`
	Hash    string `json:"hash"`
	Body    string `json:"-"`
}

// Document decodes the stored body back into a graph document.
func (r Revision) Document() (ir.GraphDocument, error) {
	return unmarshalBody(r.Body)
}

// LatestRevision returns the highest-seq revision of the named document.
// Returns sql.ErrNoRows if the document has never been saved.
func (s *Store) LatestRevision(ctx context.Context, docName string) (Revision, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, doc_name, seq, hash, body
		FROM revisions
		WHERE doc_name = ?
		ORDER BY seq DESC
		LIMIT 1
	`, docName)
	return scanRevisionRow(row)
}

// GetRevision returns one revision of the named document by seq.
// Returns sql.ErrNoRows if absent.
func (s *Store) GetRevision(ctx context.Context, docName string, seq int64) (Revision, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, doc_name, seq, hash, body
		FROM revisions
		WHERE doc_name = ? AND seq = ?
	`, docName, seq)
	return scanRevisionRow(row)
}

// ListRevisions returns every revision of the named document, seq
// ascending. Empty slice, not nil, when the document is unknown.
func (s *Store) ListRevisions(ctx context.Context, docName string) ([]Revision, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, doc_name, seq, hash, body
		FROM revisions
		WHERE doc_name = ?
		ORDER BY seq ASC
	`, docName)
	if err != nil {
		return nil, fmt.Errorf("query revisions: %w", err)
	}
	defer rows.Close()

	revs := []Revision{}
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, err
		}
		revs = append(revs, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revisions: %w", err)
	}
	return revs, nil
}

// ListDocuments returns the distinct document names in the store,
// ordered by name.
func (s *Store) ListDocuments(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT doc_name
		FROM revisions
		ORDER BY doc_name COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan document name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return names, nil
}

func scanRevision(rows *sql.Rows) (Revision, error) {
	var rev Revision
	if err := rows.Scan(&rev.ID, &rev.DocName, &rev.Seq, &rev.Hash, &rev.Body); err != nil {
		return Revision{}, fmt.Errorf("scan revision: %w", err)
	}
	return rev, nil
}

func scanRevisionRow(row *sql.Row) (Revision, error) {
	var rev Revision
	if err := row.Scan(&rev.ID, &rev.DocName, &rev.Seq, &rev.Hash, &rev.Body); err != nil {
		if err == sql.ErrNoRows {
			return Revision{}, err
		}
		return Revision{}, fmt.Errorf("scan revision: %w", err)
	}
	return rev, nil
}
