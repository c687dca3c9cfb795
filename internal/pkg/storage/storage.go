package storage

import (
	"context"
	"io"
)

// Storage defines the minimal interface for media storage backends.
// Intentionally simple: put a file, delete a file, get its URL.
type Storage interface {
	// Put stores a file under the given key.
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete removes a file by key. Returns nil if the file doesn't exist.
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL for a stored key.
	GetURL(key string) string
}

// Config holds S3-compatible storage settings
type Config struct {
	Endpoint  string // custom endpoint for MinIO/R2, empty for AWS
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}
