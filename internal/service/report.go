package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"reportdesk/internal/model"
	"reportdesk/internal/repository"
)

// maxReportNameLength is measured after trimming surrounding whitespace.
const maxReportNameLength = 200

// UpdateReportInput carries a partial report update. Nil fields are left
// untouched; a provided name is re-validated with the creation rules.
type UpdateReportInput struct {
	Name    *string
	Content *string
}

// ReportService defines the use cases for the report aggregate. Every
// operation requires the authenticated caller's user id and enforces
// ownership before touching state.
type ReportService interface {
	// Create validates and persists a new empty report for the user.
	Create(ctx context.Context, userID, name string) (*model.Report, error)

	// Get returns the report after an existence-then-ownership check.
	// Soft-deleted reports remain retrievable by their owner.
	Get(ctx context.Context, id, userID string) (*model.Report, error)

	// List returns the user's active reports, newest first.
	List(ctx context.Context, userID string) ([]model.Report, error)

	// Update applies a partial update after the same checks as Get.
	Update(ctx context.Context, id, userID string, in UpdateReportInput) (*model.Report, error)

	// Delete soft-deletes the report after the same checks as Get.
	Delete(ctx context.Context, id, userID string) error

	// Restore clears a soft-deleted report's deletion mark.
	Restore(ctx context.Context, id, userID string) (*model.Report, error)

	// Search returns the user's active reports matching the query.
	Search(ctx context.Context, userID, query string) ([]model.Report, error)
}

type reportService struct {
	repo repository.ReportRepository
}

// NewReportService constructs a new ReportService.
func NewReportService(repo repository.ReportRepository) ReportService {
	return &reportService{repo: repo}
}

// validateName trims the name and checks the creation rules. Returns the
// trimmed name; length is checked after trimming.
func validateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrNameRequired
	}
	if utf8.RuneCountInString(trimmed) > maxReportNameLength {
		return "", ErrNameTooLong
	}
	return trimmed, nil
}

func (s *reportService) Create(ctx context.Context, userID, name string) (*model.Report, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	trimmed, err := validateName(name)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rep := &model.Report{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      trimmed,
		Content:   "",
		CreatedAt: now,
		UpdatedAt: now,
	}

	stored, err := s.repo.Save(ctx, rep)
	if err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	return stored, nil
}

func (s *reportService) Get(ctx context.Context, id, userID string) (*model.Report, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	rep, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	// Ownership is checked after existence so absent and foreign reports
	// surface as distinct failures.
	if rep.UserID != userID {
		return nil, ErrUnauthorized
	}
	return rep, nil
}

func (s *reportService) List(ctx context.Context, userID string) ([]model.Report, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	return s.repo.FindByUserID(ctx, userID, false)
}

func (s *reportService) Update(ctx context.Context, id, userID string, in UpdateReportInput) (*model.Report, error) {
	rep, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if in.Name == nil && in.Content == nil {
		return nil, ErrNoFields
	}

	if in.Name != nil {
		trimmed, err := validateName(*in.Name)
		if err != nil {
			return nil, err
		}
		rep.Name = trimmed
	}
	if in.Content != nil {
		rep.Content = *in.Content
	}
	rep.UpdatedAt = time.Now().UTC()

	stored, err := s.repo.Save(ctx, rep)
	if err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	return stored, nil
}

func (s *reportService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.Get(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *reportService) Restore(ctx context.Context, id, userID string) (*model.Report, error) {
	rep, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if rep.DeletedAt == nil {
		return rep, nil
	}

	rep.DeletedAt = nil
	rep.UpdatedAt = time.Now().UTC()

	stored, err := s.repo.Save(ctx, rep)
	if err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	return stored, nil
}

func (s *reportService) Search(ctx context.Context, userID, query string) ([]model.Report, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	return s.repo.Search(ctx, userID, query)
}
