package postgres

import (
	"context"
	"database/sql"

	"reportdesk/internal/model"
	"reportdesk/internal/repository"
)

const reportColumns = `id, user_id, name, content, created_at, updated_at, deleted_at`

// ReportPostgres is a PostgreSQL implementation of repository.ReportRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ReportPostgres struct {
	db *sql.DB
}

// NewReportPostgres creates a new ReportPostgres repository.
func NewReportPostgres(db *sql.DB) *ReportPostgres {
	return &ReportPostgres{db: db}
}

var _ repository.ReportRepository = (*ReportPostgres)(nil)

func scanReport(row rowScanner) (*model.Report, error) {
	var r model.Report
	var deletedAt sql.NullTime
	if err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.Name,
		&r.Content,
		&r.CreatedAt,
		&r.UpdatedAt,
		&deletedAt,
	); err != nil {
		return nil, err
	}
	r.DeletedAt = nullableTime(deletedAt)
	return &r, nil
}

// FindByID fetches a single report by its ID, soft-deleted or not.
func (r *ReportPostgres) FindByID(ctx context.Context, id string) (*model.Report, error) {
	const q = `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE id = $1
	`
	return scanReport(r.db.QueryRowContext(ctx, q, id))
}

// FindByUserID returns the user's reports, newest-created-first.
func (r *ReportPostgres) FindByUserID(ctx context.Context, userID string, includeDeleted bool) ([]model.Report, error) {
	q := `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC, id DESC
	`
	if includeDeleted {
		q = `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	}

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectReports(rows)
}

// Save upserts a report by ID. Identity fields (id, user_id, created_at) are
// write-once: the conflict branch only overwrites the mutable columns.
func (r *ReportPostgres) Save(ctx context.Context, rep *model.Report) (*model.Report, error) {
	const q = `
		INSERT INTO reports (id, user_id, name, content, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name       = EXCLUDED.name,
			content    = EXCLUDED.content,
			updated_at = EXCLUDED.updated_at,
			deleted_at = EXCLUDED.deleted_at
		RETURNING ` + reportColumns + `
	`
	out, err := scanReport(r.db.QueryRowContext(ctx, q,
		rep.ID,
		rep.UserID,
		rep.Name,
		rep.Content,
		rep.CreatedAt,
		rep.UpdatedAt,
		rep.DeletedAt,
	))
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// Delete soft-deletes a report by ID. It does not return an error if the row
// does not exist or is already deleted.
func (r *ReportPostgres) Delete(ctx context.Context, id string) error {
	const q = `
		UPDATE reports
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

// Search matches the query against name or content, case-insensitively,
// scoped to the user and excluding soft-deleted rows.
func (r *ReportPostgres) Search(ctx context.Context, userID, query string) ([]model.Report, error) {
	const q = `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE user_id = $1
		  AND deleted_at IS NULL
		  AND (name ILIKE '%' || $2 || '%' OR content ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, userID, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectReports(rows)
}

func collectReports(rows *sql.Rows) ([]model.Report, error) {
	items := make([]model.Report, 0)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rep)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
