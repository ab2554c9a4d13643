package blobstore

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

const localBucketName = "mock-media-bucket"

// localStore imitates a remote object store on the local filesystem. Keys
// are flattened to their basename under dir and URLs are fabricated from
// the configured base URL, which is enough for development and tests.
type localStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) BlobStore {
	return &localStore{
		dir:     dir,
		baseURL: baseURL,
	}
}

func (l *localStore) Upload(ctx context.Context, data []byte, key, contentType string) (*UploadResult, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "localStore.Upload.MkdirAll")
	}
	name := filepath.Base(key)
	if err := os.WriteFile(filepath.Join(l.dir, name), data, 0o644); err != nil {
		return nil, errors.Wrap(err, "localStore.Upload.WriteFile")
	}

	etag := base64.StdEncoding.EncodeToString([]byte(key))
	if len(etag) > 32 {
		etag = etag[:32]
	}
	return &UploadResult{
		URL:    fmt.Sprintf("%s/uploads/processed/%s", l.baseURL, name),
		Key:    key,
		ETag:   etag,
		Bucket: localBucketName,
	}, nil
}

func (l *localStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(l.dir, filepath.Base(key)))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "localStore.Delete.Remove")
	}
	return nil
}

func (l *localStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(filepath.Join(l.dir, filepath.Base(key)))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrap(err, "localStore.Exists.Stat")
	}
	return true, nil
}

func (l *localStore) SignedURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	name := filepath.Base(key)
	expires := time.Now().Add(expiresIn).UnixMilli()
	return fmt.Sprintf("%s/uploads/processed/%s?expires=%d", l.baseURL, name, expires), nil
}
