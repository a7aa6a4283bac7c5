package storage

import (
	"context"
	"datauri/internal/config"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// TypeLocal 表示本地文件系统存储。
	TypeLocal = "local"
	// TypeS3 表示 Amazon S3 或兼容的存储后端。
	TypeS3 = "s3"
	// TypeOSS 表示阿里云 OSS 存储。
	TypeOSS = "oss"
	// TypeCOS 表示腾讯云 COS 存储。
	TypeCOS = "cos"
	// TypeR2 表示 Cloudflare R2 存储。
	TypeR2 = "r2"
	// TypeMinIO 表示自建 MinIO 存储。
	TypeMinIO = "minio"
	// TypeGCS 表示 Google Cloud Storage。
	TypeGCS = "gcs"
)

// ErrEmptyPayload 表示待保存的内容为空。
var ErrEmptyPayload = errors.New("empty payload")

// SaveOptions 控制存储后端如何持久化文件。
//
// Category 用于组织对象路径，Extension 为不含前导点的扩展名，
// BaseName 为空时使用时间戳。ContentType 为空时根据扩展名推断。
type SaveOptions struct {
	Category    string
	Extension   string
	BaseName    string
	ContentType string
}

// Storage 持久化上传文件并返回存储特定的键（例如本地存储的相对路径）。
type Storage interface {
	Save(ctx context.Context, r io.Reader, size int64, opts SaveOptions) (string, error)
	Delete(ctx context.Context, key string) error
}

// LocalBaseDirProvider 由暴露可通过 HTTP 直接提供服务的本地目录的存储驱动实现。
type LocalBaseDirProvider interface {
	LocalBaseDir() string
}

// NewStorage 根据配置实例化存储后端。
func NewStorage(ctx context.Context, cfg config.Config) (Storage, error) {
	switch NormalizeType(cfg.StorageType) {
	case TypeLocal:
		return NewLocalStorage(cfg.StorageLocalDir)
	case TypeS3:
		return NewS3Storage(cfg)
	case TypeOSS:
		return NewOSSStorage(cfg)
	case TypeCOS:
		return NewCOSStorage(cfg)
	case TypeR2:
		return NewR2Storage(cfg)
	case TypeMinIO:
		return NewMinIOStorage(cfg)
	case TypeGCS:
		return NewGCSStorage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}

// NormalizeType 返回规范化的存储类型名称，空值视为本地存储。
func NormalizeType(typeName string) string {
	typeName = strings.ToLower(strings.TrimSpace(typeName))
	if typeName == "" {
		return TypeLocal
	}
	return typeName
}

func checkSave(ctx context.Context, r io.Reader, size int64) error {
	if r == nil || size == 0 {
		return ErrEmptyPayload
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	return nil
}
