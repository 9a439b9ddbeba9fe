package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/officedesk/officedesk/directory"
)

// DocumentRepository persists directory.Document records. The clerk
// assignment is nullable in the schema; an empty ClerkID maps to NULL.
type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

const documentColumns = `id, title, kind, office_id, clerk_id, created_at, updated_at`

func (r *DocumentRepository) Create(ctx context.Context, doc directory.Document) error {
	const query = `INSERT INTO documents (` + documentColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Title, doc.Kind, doc.OfficeID, nullableID(doc.ClerkID),
		doc.CreatedAt, doc.UpdatedAt)
	return translateError(err)
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (directory.Document, error) {
	const query = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return scanDocument(r.db.QueryRowContext(ctx, query, id))
}

func (r *DocumentRepository) List(ctx context.Context) ([]directory.Document, error) {
	const query = `SELECT ` + documentColumns + ` FROM documents ORDER BY created_at`
	return r.queryDocuments(ctx, query)
}

func (r *DocumentRepository) ListByOffice(ctx context.Context, officeID string) ([]directory.Document, error) {
	const query = `SELECT ` + documentColumns + ` FROM documents WHERE office_id = $1 ORDER BY created_at`
	return r.queryDocuments(ctx, query, officeID)
}

func (r *DocumentRepository) Update(ctx context.Context, doc directory.Document) error {
	const query = `UPDATE documents SET title = $2, kind = $3, clerk_id = $4, updated_at = $5 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Title, doc.Kind, nullableID(doc.ClerkID), doc.UpdatedAt)
	if err != nil {
		return translateError(err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return directory.ErrNotFound
	}
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return directory.ErrNotFound
	}
	return nil
}

func (r *DocumentRepository) queryDocuments(ctx context.Context, query string, args ...any) ([]directory.Document, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var docs []directory.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func scanDocument(row rowScanner) (directory.Document, error) {
	var (
		doc     directory.Document
		clerkID sql.NullString
	)
	err := row.Scan(
		&doc.ID, &doc.Title, &doc.Kind, &doc.OfficeID, &clerkID,
		&doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return directory.Document{}, directory.ErrNotFound
		}
		return directory.Document{}, translateError(err)
	}
	doc.ClerkID = clerkID.String
	return doc, nil
}

func nullableID(id string) sql.NullString {
	return sql.NullString{String: id, Valid: id != ""}
}
