package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
)

type s3Store struct {
	client        *s3.Client
	preSignClient *s3.PresignClient
	bucket        string
}

func NewS3Store(client *s3.Client, preSignClient *s3.PresignClient, bucket string) BlobStore {
	return &s3Store{
		client:        client,
		preSignClient: preSignClient,
		bucket:        bucket,
	}
}

func (s *s3Store) Upload(ctx context.Context, data []byte, key, contentType string) (*UploadResult, error) {
	size := int64(len(data))
	res, err := s.client.PutObject(
		ctx,
		&s3.PutObjectInput{
			Bucket:        &s.bucket,
			Key:           &key,
			ContentType:   &contentType,
			ContentLength: &size,
			Body:          bytes.NewReader(data),
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "s3Store.Upload.PutObject")
	}

	etag := ""
	if res.ETag != nil {
		etag = strings.Trim(*res.ETag, `"`)
	}
	return &UploadResult{
		URL:    fmt.Sprintf("s3://%s/%s", s.bucket, key),
		Key:    key,
		ETag:   etag,
		Bucket: s.bucket,
	}, nil
}

func (s *s3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		return errors.Wrap(err, "s3Store.Delete.DeleteObject")
	}
	return nil
}

func (s *s3Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, errors.Wrap(err, "s3Store.Exists.HeadObject")
	}
	return true, nil
}

func (s *s3Store) SignedURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	req, err := s.preSignClient.PresignGetObject(
		ctx,
		&s3.GetObjectInput{
			Bucket: &s.bucket,
			Key:    &key,
		},
		s3.WithPresignExpires(expiresIn),
	)
	if err != nil {
		return "", errors.Wrap(err, "s3Store.SignedURL.PresignGetObject")
	}
	return req.URL, nil
}
