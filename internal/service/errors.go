package service

import "errors"

// Service-level failure taxonomy. Transport maps these to HTTP status codes:
// validation errors to 400, ErrUnauthorized to 403, not-found errors to 404,
// ErrDuplicateDocument to 409. Anything else is unexpected and surfaces as 500.
var (
	ErrIDRequired       = errors.New("id is required")
	ErrUserIDRequired   = errors.New("user id is required")
	ErrReportIDRequired = errors.New("report id is required")

	ErrNameRequired = errors.New("report name cannot be empty")
	ErrNameTooLong  = errors.New("report name too long (max 200 characters)")
	ErrNoFields     = errors.New("at least one field is required")
	ErrEmptyFile    = errors.New("file is empty")

	ErrReportNotFound   = errors.New("report not found")
	ErrDocumentNotFound = errors.New("document not found")

	ErrUnauthorized = errors.New("unauthorized")

	ErrDuplicateDocument = errors.New("document already exists in this report")
)

// IsValidation reports whether err belongs to the validation class of the
// taxonomy (surfaced as 400 at the transport boundary).
func IsValidation(err error) bool {
	return errors.Is(err, ErrIDRequired) ||
		errors.Is(err, ErrUserIDRequired) ||
		errors.Is(err, ErrReportIDRequired) ||
		errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrNameTooLong) ||
		errors.Is(err, ErrNoFields) ||
		errors.Is(err, ErrEmptyFile)
}
