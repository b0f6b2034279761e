package export

import (
	"context"
	"time"
)

// Provider is the object store dashboard snapshots are written to.
type Provider interface {
	// CheckBucket ensures the bucket exists, creating it when missing.
	CheckBucket(ctx context.Context) error

	// Put stores data under objectKey.
	Put(ctx context.Context, objectKey string, data []byte, contentType string) error

	// GeneratePresignedURL returns a temporary download link for objectKey.
	GeneratePresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error)
}
