package model

import "time"

// Document is a file attached to exactly one report, deduplicated by content
// hash within that report. FileHash and StoragePath are write-once: they are
// assigned during upload and never change afterwards. ParsedContent is nil
// when text extraction was skipped, failed, or produced nothing.
type Document struct {
	ID            string     `json:"id"`
	ReportID      string     `json:"report_id"`
	Filename      string     `json:"filename"`
	FileHash      string     `json:"file_hash"`
	StoragePath   string     `json:"storage_path"`
	ParsedContent *string    `json:"parsed_content"`
	Notes         string     `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at"`
}

// Deleted reports whether the document has been soft-deleted.
func (d *Document) Deleted() bool {
	return d.DeletedAt != nil
}
