// Package storage holds the blob backends used for audit evidence and generated
// reports, plus the HMAC signer that protects download links.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrInvalidKey is returned when an object key is empty or escapes the storage root.
var ErrInvalidKey = errors.New("invalid object key")

// ErrObjectNotFound is returned when the requested object does not exist.
var ErrObjectNotFound = errors.New("object not found")

// Backend is implemented by every evidence store.
type Backend interface {
	// Upload stores the content under key and reports its size and SHA-256 checksum.
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (*UploadResult, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// Presigner is implemented by backends able to hand out direct download URLs.
type Presigner interface {
	PresignURL(ctx context.Context, key string) (string, error)
}

// UploadResult describes a stored object.
type UploadResult struct {
	Key      string
	Size     int64
	Checksum string
}
