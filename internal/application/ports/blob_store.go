package ports

import (
	"context"
	"io"
)

type BlobStore interface {
	PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	RemoveObject(ctx context.Context, key string) error
	PresignedURL(ctx context.Context, key, fileName string) (string, error)
	GetBucket() string
}
