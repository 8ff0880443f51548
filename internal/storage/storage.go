package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"
)

// Package storage contains the content-addressable object storage gateway for
// uploaded document bytes. Implementations must avoid local disk and rely on
// streaming I/O only.

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1
// and the implementation will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is an S3-compatible object storage client interface.
// Methods use context and streaming readers; no local disk is used.
// Delete must not fail when the target key is already absent.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// ObjectKey builds the content-addressed key for a document's bytes. The key
// embeds the owning report and the content hash and preserves the original
// file extension, so identical bytes land on the same key per report.
func ObjectKey(reportID, fileHash, filename string) string {
	ext := filepath.Ext(filename)
	return filepath.ToSlash(filepath.Join("reports", reportID, fmt.Sprintf("%s%s", fileHash, ext)))
}
