package model

import (
	"context"
	"io"
)

// BlobStore keeps uploaded binary content under opaque keys.
type BlobStore interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
