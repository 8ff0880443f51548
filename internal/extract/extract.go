package extract

import "context"

// Package extract contains the best-effort text extraction gateway used to
// enrich uploaded documents with searchable text. Extraction is a
// nice-to-have: callers must treat any error or empty result as "no text"
// and never let it abort an upload.

// ImagePlaceholder is returned for recognized image extensions without
// inspecting the bytes at all.
const ImagePlaceholder = "[image content]"

// Parser extracts plain text from raw file bytes. Implementations degrade to
// an empty string rather than failing on unsupported or malformed input; a
// non-nil error is reserved for callers that want to log it, and must be
// treated the same as an empty result.
type Parser interface {
	Parse(ctx context.Context, data []byte, filename string) (string, error)
}
