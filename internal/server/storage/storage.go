// Package storage abstracts the S3-compatible object store that holds
// uploaded clips and lets the video service be tested without a bucket.
package storage

import (
	"context"
	"io"
)

// ObjectStorage is the narrow contract the video service needs: upload a
// clip, delete one object, and delete everything under a user prefix.
type ObjectStorage interface {
	// Upload stores body under key and returns the hosted URL of the object.
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)

	// Delete removes the object at key.
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes every object whose key starts with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}
