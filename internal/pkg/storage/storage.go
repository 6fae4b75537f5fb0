// Package storage stores binary objects (uploaded photos, generated images)
// in S3, Google Cloud Storage or MinIO behind one interface.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrObjectNotFound is returned when the bucket has no object under key.
	ErrObjectNotFound = errors.New("storage: object not found")

	// ErrMissingSigner indicates signed URL support is not configured.
	ErrMissingSigner = errors.New("storage: signed url signer not configured")
)

// Storage defines object storage operations.
type Storage interface {
	io.Closer

	// EnsureBucket creates bucket when the backend allows it and it is missing.
	EnsureBucket(ctx context.Context, bucket string) error
	// PutObject stores the content of r under key.
	PutObject(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error)
	// GetObject opens the object for reading. Callers must close the reader.
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, ObjectInfo, error)
	// DeleteObject removes the object. Deleting a missing object is not an error.
	DeleteObject(ctx context.Context, bucket, key string) error
	// PresignGet returns a time limited download URL.
	PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}

// PutOptions configures an upload.
type PutOptions struct {
	// Size is the content length, or -1 when unknown.
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Bucket      string
	Key         string
	Size        int64
	ETag        string
	ContentType string
	Metadata    map[string]string
	UpdatedAt   time.Time
}
