package repository

import (
	"context"

	"reportdesk/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// The same shape as ReportRepository, scoped by report instead of user, plus
// the content-hash deduplication lookup.
type DocumentRepository interface {
	// FindByID returns a document by its ID regardless of soft-delete state.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// FindByReportID returns the report's documents ordered
	// newest-created-first. Soft-deleted documents are excluded unless
	// includeDeleted is set.
	FindByReportID(ctx context.Context, reportID string, includeDeleted bool) ([]model.Document, error)

	// FindByHash returns the active document with the given content hash
	// inside the report. Soft-deleted documents never match, so a previously
	// deleted document does not block re-upload of the same bytes.
	FindByHash(ctx context.Context, reportID, fileHash string) (*model.Document, error)

	// Save upserts a document by ID. On conflict only the mutable fields
	// (filename, notes, updated_at, deleted_at) are overwritten. Returns
	// ErrDuplicate when the (report_id, file_hash) uniqueness constraint on
	// active rows is violated.
	Save(ctx context.Context, doc *model.Document) (*model.Document, error)

	// Delete soft-deletes a document by setting deleted_at and updated_at.
	// It returns nil if the row was updated or did not exist.
	Delete(ctx context.Context, id string) error

	// Search returns the report's active documents whose filename, notes or
	// parsed content contains the query, case-insensitively.
	Search(ctx context.Context, reportID, query string) ([]model.Document, error)
}
