// Package blobstore abstracts the remote object store processed output is
// pushed to.
package blobstore

import (
	"context"
	"time"
)

type UploadResult struct {
	URL    string `json:"url"`
	Key    string `json:"key"`
	ETag   string `json:"etag"`
	Bucket string `json:"bucket"`
}

type BlobStore interface {
	Upload(ctx context.Context, data []byte, key, contentType string) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	SignedURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)
}
