package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TempPrefix != "file_" {
		t.Errorf("expected default prefix file_, got %q", cfg.TempPrefix)
	}
	if cfg.StorageType != "local" {
		t.Errorf("expected local storage, got %q", cfg.StorageType)
	}
	if cfg.UploadMaxBytes != 10485760 {
		t.Errorf("expected 10MiB limit, got %d", cfg.UploadMaxBytes)
	}
}

func TestParseConfigFromEnvAndFile(t *testing.T) {
	t.Setenv("DATAURI_STRICT_BASE64", "true")

	envFile := filepath.Join(t.TempDir(), "test.env")
	content := "DATAURI_TEMP_PREFIX=upload_\nDATAURI_STRICT_BASE64=false\n"
	if err := os.WriteFile(envFile, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("DATAURI_TEMP_PREFIX") })

	cfg, err := ParseConfig(envFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TempPrefix != "upload_" {
		t.Errorf("expected prefix from env file, got %q", cfg.TempPrefix)
	}
	if !cfg.StrictBase64 {
		t.Error("expected environment to win over env file")
	}
}
