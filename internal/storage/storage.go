// Package storage provides object storage for uploaded media (videos,
// thumbnails, avatars, cover images).
package storage

import (
	"context"
	"io"
)

// UploadResult describes a stored object.
type UploadResult struct {
	// URL is the publicly reachable location of the object.
	URL string
	// Key is the object name inside the bucket, used for later deletion.
	Key string
}

// ObjectStorage abstracts the media store so services and tests do not depend
// on a running MinIO instance.
type ObjectStorage interface {
	Upload(ctx context.Context, r io.Reader, size int64, contentType, prefix string) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
}
