package storage

import (
	"context"
	"datauri/internal/config"
	"errors"
	"fmt"
	"io"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type gcsStorage struct {
	client *gcs.Client
	bucket string
	prefix string
}

// NewGCSStorage 创建 Google Cloud Storage 存储。未配置凭证文件时使用默认凭证链。
func NewGCSStorage(ctx context.Context, cfg config.Config) (Storage, error) {
	bucket := strings.TrimSpace(cfg.StorageGCSBucket)
	if bucket == "" {
		return nil, errors.New("storage: missing GCS bucket")
	}

	var opts []option.ClientOption
	if file := strings.TrimSpace(cfg.StorageGCSCredentialsFile); file != "" {
		opts = append(opts, option.WithCredentialsFile(file))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: create GCS client: %w", err)
	}

	return &gcsStorage{
		client: client,
		bucket: bucket,
		prefix: trimPrefix(cfg.StorageGCSPrefix),
	}, nil
}

func (s *gcsStorage) Save(ctx context.Context, r io.Reader, size int64, opts SaveOptions) (string, error) {
	if err := checkSave(ctx, r, size); err != nil {
		return "", err
	}

	key := objectKey(s.prefix, opts)
	writer := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	writer.ContentType = contentTypeFor(opts)

	if _, err := io.Copy(writer, r); err != nil {
		writer.Close()
		return "", fmt.Errorf("write object: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close object writer: %w", err)
	}

	return key, nil
}

func (s *gcsStorage) Delete(ctx context.Context, key string) error {
	cleaned, err := cleanKey(key)
	if err != nil {
		return err
	}
	err = s.client.Bucket(s.bucket).Object(cleaned).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

var _ Storage = (*gcsStorage)(nil)
