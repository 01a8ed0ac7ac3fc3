// Package storage writes user avatars to a gocloud.dev blob bucket.
package storage

import (
	"context"
	"log/slog"
	"strings"

	"funntour/config"
	"funntour/internal/domain/service"
	"funntour/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Bucket drivers selectable through storage.bucketUrl.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

// Params defines the required parameters
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// BucketStorage implements service.AvatarStorage on any blob driver.
type BucketStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// NewAvatarStorage opens the configured bucket. It returns nil when storage is not configured.
func NewAvatarStorage(params Params) (service.AvatarStorage, error) {
	cfg := params.Config.Storage
	if cfg == nil || cfg.BucketURL == "" {
		params.Logger.Info("Avatar storage not configured, uploads disabled")

		return nil, nil
	}

	storage, err := Open(params.Ctx, cfg.BucketURL, cfg.PublicBaseURL)
	if err != nil {
		return nil, err
	}

	params.Logger.Info("Avatar storage opened", slog.String("bucket", cfg.BucketURL))
	params.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return storage.Close()
		},
	})

	return storage, nil
}

// Open opens bucketURL directly; used by NewAvatarStorage and tests.
func Open(ctx context.Context, bucketURL, publicBaseURL string) (*BucketStorage, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", bucketURL)
	}

	return &BucketStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// Save writes data under key and returns the public URL.
func (s *BucketStorage) Save(ctx context.Context, key, contentType string, data []byte) (string, error) {
	err := s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=86400",
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to write object %s", key)
	}

	return s.publicBaseURL + "/" + key, nil
}

// Delete removes key. A missing object is not an error.
func (s *BucketStorage) Delete(ctx context.Context, key string) error {
	err := s.bucket.Delete(ctx, key)
	if err != nil && !isNotFound(err) {
		return errors.Wrapf(err, "failed to delete object %s", key)
	}

	return nil
}

// Close releases the bucket.
func (s *BucketStorage) Close() error {
	return s.bucket.Close()
}
