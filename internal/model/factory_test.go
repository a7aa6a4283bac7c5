package model

import (
	"datauri/internal/config"
	"testing"
)

func TestInitRepositoryDisabled(t *testing.T) {
	for _, dbType := range []string{"", "none", " NONE "} {
		repo, err := InitRepository(&config.Config{DBType: dbType})
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", dbType, err)
		}
		if repo != nil {
			t.Fatalf("expected nil repository for %q", dbType)
		}
	}
}

func TestCreateRepositoryUnsupported(t *testing.T) {
	if _, err := NewRepositoryFactory().CreateRepository(&config.Config{DBType: "oracle"}); err == nil {
		t.Fatal("expected error for unsupported database type")
	}
}
