package repository

import (
	"context"

	"reportdesk/internal/model"
)

// ReportRepository defines data access for reports using SQL queries only.
// No business logic here — strictly persistence operations.
type ReportRepository interface {
	// FindByID returns a report by its ID regardless of soft-delete state.
	FindByID(ctx context.Context, id string) (*model.Report, error)

	// FindByUserID returns the user's reports ordered newest-created-first.
	// Soft-deleted reports are excluded unless includeDeleted is set.
	FindByUserID(ctx context.Context, userID string, includeDeleted bool) ([]model.Report, error)

	// Save upserts a report by ID. On conflict only the mutable fields
	// (name, content, updated_at, deleted_at) are overwritten; id, user_id
	// and created_at are write-once. Returns the stored row.
	Save(ctx context.Context, rep *model.Report) (*model.Report, error)

	// Delete soft-deletes a report by setting deleted_at and updated_at.
	// It returns nil if the row was updated or did not exist.
	Delete(ctx context.Context, id string) error

	// Search returns the user's active reports whose name or content contains
	// the query, case-insensitively, newest-created-first.
	Search(ctx context.Context, userID, query string) ([]model.Report, error)
}
