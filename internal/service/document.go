package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"reportdesk/internal/extract"
	"reportdesk/internal/model"
	"reportdesk/internal/repository"
	"reportdesk/internal/storage"
)

// downloadURLExpiry bounds how long a presigned document download link stays valid.
const downloadURLExpiry = 15 * time.Minute

// UpdateDocumentInput carries a partial document update. Nil fields are left
// untouched.
type UpdateDocumentInput struct {
	Filename *string
	Notes    *string
}

// DocumentService defines the use cases for the document aggregate: the
// upload/deduplication pipeline plus lifecycle operations.
type DocumentService interface {
	// Upload runs the pipeline: hash the bytes, check for an active
	// duplicate in the report, persist the bytes to object storage, attempt
	// best-effort text extraction, then persist the record. The duplicate
	// check happens before any side effect; extraction failures never abort
	// the upload.
	Upload(ctx context.Context, reportID string, data []byte, filename string) (*model.Document, error)

	// Get returns a single document by its ID, soft-deleted or not.
	Get(ctx context.Context, id string) (*model.Document, error)

	// List returns the report's active documents, newest first.
	List(ctx context.Context, reportID string) ([]model.Document, error)

	// Update applies a partial filename/notes update.
	Update(ctx context.Context, id string, in UpdateDocumentInput) (*model.Document, error)

	// Delete removes the stored bytes, then soft-deletes the record.
	Delete(ctx context.Context, id string) error

	// Restore clears a soft-deleted document's deletion mark. Restoring
	// fails with ErrDuplicateDocument if the report has since gained an
	// active document with the same content hash.
	Restore(ctx context.Context, id string) (*model.Document, error)

	// Search returns the report's active documents matching the query.
	Search(ctx context.Context, reportID, query string) ([]model.Document, error)

	// DownloadURL returns a time-limited URL for the document's bytes.
	DownloadURL(ctx context.Context, id string) (string, error)
}

type documentService struct {
	store  storage.Storage
	parser extract.Parser
	repo   repository.DocumentRepository
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, parser extract.Parser, repo repository.DocumentRepository) DocumentService {
	return &documentService{store: store, parser: parser, repo: repo}
}

func (s *documentService) Upload(ctx context.Context, reportID string, data []byte, filename string) (*model.Document, error) {
	if reportID == "" {
		return nil, ErrReportIDRequired
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	// Content-addressed hash: identical bytes always dedupe, whatever the
	// filename says.
	sum := sha256.Sum256(data)
	fileHash := hex.EncodeToString(sum[:])

	// Advisory duplicate check before any side effect. The partial unique
	// index on (report_id, file_hash) is the authoritative guard; this just
	// keeps the common case cheap and the error message precise.
	if _, err := s.repo.FindByHash(ctx, reportID, fileHash); err == nil {
		return nil, ErrDuplicateDocument
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("duplicate lookup: %w", err)
	}

	key := storage.ObjectKey(reportID, fileHash, filename)
	_, err := s.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: contentTypeFor(filename),
		Metadata: map[string]string{
			"original-filename": filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	// Extraction is enrichment, not correctness: any failure or empty
	// result leaves ParsedContent nil and the upload proceeds.
	var parsed *string
	if text, perr := s.parser.Parse(ctx, data, filename); perr == nil && text != "" {
		parsed = &text
	}

	now := time.Now().UTC()
	doc := &model.Document{
		ID:            uuid.New().String(),
		ReportID:      reportID,
		Filename:      filename,
		FileHash:      fileHash,
		StoragePath:   key,
		ParsedContent: parsed,
		Notes:         "",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	stored, err := s.repo.Save(ctx, doc)
	if err != nil {
		// Rollback: delete the object so a losing concurrent upload or a
		// failed insert leaves no orphaned bytes behind.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateDocument
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) List(ctx context.Context, reportID string) ([]model.Document, error) {
	if reportID == "" {
		return nil, ErrReportIDRequired
	}
	return s.repo.FindByReportID(ctx, reportID, false)
}

func (s *documentService) Update(ctx context.Context, id string, in UpdateDocumentInput) (*model.Document, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Filename == nil && in.Notes == nil {
		return nil, ErrNoFields
	}

	if in.Filename != nil {
		doc.Filename = *in.Filename
	}
	if in.Notes != nil {
		doc.Notes = *in.Notes
	}
	doc.UpdatedAt = time.Now().UTC()

	stored, err := s.repo.Save(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	return stored, nil
}

// Delete removes the stored bytes first, then soft-deletes the record. The
// storage gateway treats an absent object as already deleted, so a retry
// after a partial failure converges.
func (s *documentService) Delete(ctx context.Context, id string) error {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

func (s *documentService) Restore(ctx context.Context, id string) (*model.Document, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.DeletedAt == nil {
		return doc, nil
	}

	doc.DeletedAt = nil
	doc.UpdatedAt = time.Now().UTC()

	stored, err := s.repo.Save(ctx, doc)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateDocument
		}
		return nil, fmt.Errorf("save document: %w", err)
	}
	return stored, nil
}

func (s *documentService) Search(ctx context.Context, reportID, query string) ([]model.Document, error) {
	if reportID == "" {
		return nil, ErrReportIDRequired
	}
	return s.repo.Search(ctx, reportID, query)
}

func (s *documentService) DownloadURL(ctx context.Context, id string) (string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	url, err := s.store.PresignGet(ctx, doc.StoragePath, downloadURLExpiry)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return url, nil
}

func contentTypeFor(filename string) string {
	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
