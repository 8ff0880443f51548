package postgres

import (
	"context"
	"database/sql"

	"reportdesk/internal/model"
	"reportdesk/internal/repository"
)

const documentColumns = `id, report_id, filename, file_hash, storage_path, parsed_content, notes, created_at, updated_at, deleted_at`

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

func scanDocument(row rowScanner) (*model.Document, error) {
	var d model.Document
	var parsed sql.NullString
	var deletedAt sql.NullTime
	if err := row.Scan(
		&d.ID,
		&d.ReportID,
		&d.Filename,
		&d.FileHash,
		&d.StoragePath,
		&parsed,
		&d.Notes,
		&d.CreatedAt,
		&d.UpdatedAt,
		&deletedAt,
	); err != nil {
		return nil, err
	}
	d.ParsedContent = nullableString(parsed)
	d.DeletedAt = nullableTime(deletedAt)
	return &d, nil
}

// FindByID fetches a single document by its ID, soft-deleted or not.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id = $1
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// FindByReportID returns the report's documents, newest-created-first.
func (r *DocumentPostgres) FindByReportID(ctx context.Context, reportID string, includeDeleted bool) ([]model.Document, error) {
	q := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE report_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC, id DESC
	`
	if includeDeleted {
		q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE report_id = $1
		ORDER BY created_at DESC, id DESC
	`
	}

	rows, err := r.db.QueryContext(ctx, q, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDocuments(rows)
}

// FindByHash is the deduplication lookup: the active document with the given
// content hash inside the report. Soft-deleted rows never match.
func (r *DocumentPostgres) FindByHash(ctx context.Context, reportID, fileHash string) (*model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE report_id = $1 AND file_hash = $2 AND deleted_at IS NULL
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, reportID, fileHash))
}

// Save upserts a document by ID. Identity fields (id, report_id, file_hash,
// storage_path, parsed_content, created_at) are write-once: the conflict
// branch only overwrites the mutable columns. The partial unique index on
// (report_id, file_hash) surfaces as repository.ErrDuplicate.
func (r *DocumentPostgres) Save(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, report_id, filename, file_hash, storage_path, parsed_content, notes, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			filename   = EXCLUDED.filename,
			notes      = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at,
			deleted_at = EXCLUDED.deleted_at
		RETURNING ` + documentColumns + `
	`
	out, err := scanDocument(r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.ReportID,
		doc.Filename,
		doc.FileHash,
		doc.StoragePath,
		doc.ParsedContent,
		doc.Notes,
		doc.CreatedAt,
		doc.UpdatedAt,
		doc.DeletedAt,
	))
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// Delete soft-deletes a document by ID. It does not return an error if the
// row does not exist or is already deleted.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `
		UPDATE documents
		SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	// Ignore rows affected: deleting an absent row is an idempotent no-op.
	_, _ = res.RowsAffected()
	return nil
}

// Search matches the query against filename, notes or parsed content,
// case-insensitively, scoped to the report and excluding soft-deleted rows.
func (r *DocumentPostgres) Search(ctx context.Context, reportID, query string) ([]model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE report_id = $1
		  AND deleted_at IS NULL
		  AND (filename ILIKE '%' || $2 || '%'
		    OR notes ILIKE '%' || $2 || '%'
		    OR parsed_content ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, reportID, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDocuments(rows)
}

func collectDocuments(rows *sql.Rows) ([]model.Document, error) {
	items := make([]model.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
