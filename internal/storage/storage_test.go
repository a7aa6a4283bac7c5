package storage

import (
	"bytes"
	"context"
	"datauri/internal/config"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStorageSaveAndDelete(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	key, err := store.Save(context.Background(), strings.NewReader("Hello"), 5, SaveOptions{
		Category:  "uploads",
		Extension: "txt",
		BaseName:  "Greeting File",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(key, "uploads/") || !strings.HasSuffix(key, "/greeting-file.txt") {
		t.Fatalf("unexpected key %q", key)
	}

	absPath := filepath.Join(store.LocalBaseDir(), filepath.FromSlash(key))
	content, err := os.ReadFile(absPath)
	if err != nil || string(content) != "Hello" {
		t.Fatalf("expected Hello on disk, got %q (%v)", content, err)
	}

	if err := store.Delete(context.Background(), key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(absPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected file removed, got %v", err)
	}
	if err := store.Delete(context.Background(), key); err != nil {
		t.Fatalf("second delete should be a no-op, got %v", err)
	}
}

func TestLocalStorageRejectsEmptyPayload(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Save(context.Background(), bytes.NewReader(nil), 0, SaveOptions{}); !errors.Is(err, ErrEmptyPayload) {
		t.Fatalf("expected ErrEmptyPayload, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Save(ctx, strings.NewReader("x"), 1, SaveOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLocalStorageDeleteRejectsTraversal(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, key := range []string{"", "   ", "../outside.txt", "a/../../outside.txt"} {
		if err := store.Delete(context.Background(), key); err == nil {
			t.Errorf("expected error for key %q", key)
		}
	}
}

func TestBuildObjectPath(t *testing.T) {
	tests := []struct {
		name     string
		category string
		baseName string
		ext      string
		prefix   string
		suffix   string
	}{
		{name: "defaults", category: "", baseName: "abc", ext: "", prefix: "misc/", suffix: "/abc.bin"},
		{name: "sanitized", category: "Up Loads", baseName: "My File", ext: ".PNG", prefix: "uploads/", suffix: "/my-file.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildObjectPath(tt.category, tt.baseName, tt.ext)
			if !strings.HasPrefix(got, tt.prefix) || !strings.HasSuffix(got, tt.suffix) {
				t.Errorf("unexpected path %q", got)
			}
		})
	}
}

func TestObjectKeyPrefix(t *testing.T) {
	key := objectKey("tenant/", SaveOptions{Category: "uploads", BaseName: "id", Extension: "png"})
	if !strings.HasPrefix(key, "tenant/uploads/") {
		t.Fatalf("unexpected key %q", key)
	}
}

func TestContentTypeFor(t *testing.T) {
	if ct := contentTypeFor(SaveOptions{ContentType: "image/png", Extension: "bin"}); ct != "image/png" {
		t.Errorf("expected explicit content type, got %q", ct)
	}
	if ct := contentTypeFor(SaveOptions{Extension: "unknownext"}); ct != "application/octet-stream" {
		t.Errorf("expected octet-stream fallback, got %q", ct)
	}
}

func TestNewStorage(t *testing.T) {
	ctx := context.Background()

	store, err := NewStorage(ctx, config.Config{StorageType: "", StorageLocalDir: t.TempDir()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.(LocalBaseDirProvider); !ok {
		t.Fatal("expected local storage by default")
	}

	if _, err := NewStorage(ctx, config.Config{StorageType: "ftp"}); err == nil {
		t.Fatal("expected error for unsupported storage")
	}

	missing := []string{TypeS3, TypeOSS, TypeCOS, TypeR2, TypeMinIO, TypeGCS}
	for _, typeName := range missing {
		if _, err := NewStorage(ctx, config.Config{StorageType: typeName}); err == nil {
			t.Errorf("expected configuration error for %s", typeName)
		}
	}

	s3Store, err := NewStorage(ctx, config.Config{
		StorageType:              " S3 ",
		StorageS3Region:          "us-east-1",
		StorageS3Bucket:          "bucket",
		StorageS3AccessKeyID:     "id",
		StorageS3SecretAccessKey: "secret",
		StorageS3Endpoint:        "localhost:9000",
	})
	if err != nil || s3Store == nil {
		t.Fatalf("expected s3 storage, got %v", err)
	}

	minioStore, err := NewStorage(ctx, config.Config{
		StorageType:           TypeMinIO,
		StorageMinIOEndpoint:  "http://localhost:9000",
		StorageMinIOBucket:    "uploads",
		StorageMinIOAccessKey: "minio",
		StorageMinIOSecretKey: "minio123",
	})
	if err != nil || minioStore == nil {
		t.Fatalf("expected minio storage, got %v", err)
	}
}
