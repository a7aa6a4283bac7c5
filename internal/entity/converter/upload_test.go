package converter

import (
	"datauri/internal/entity/db"
	"testing"
)

func TestUploadToDTO(t *testing.T) {
	upload := &db.Upload{
		PublicID:    "abc",
		Field:       "avatar",
		MediaType:   "image/png",
		Size:        8,
		StorageType: "local",
		StorageKey:  "uploads/2026/01/01/abc.png",
		Owner:       "user-1",
	}

	item := UploadToDTO(upload, func(key string) string { return "/files/" + key })
	if item.ID != "abc" || item.MediaType != "image/png" || item.Size != 8 {
		t.Fatalf("unexpected dto %+v", item)
	}
	if item.URL != "/files/uploads/2026/01/01/abc.png" {
		t.Fatalf("unexpected url %q", item.URL)
	}

	if empty := UploadToDTO(nil, nil); empty.ID != "" {
		t.Fatalf("expected zero dto, got %+v", empty)
	}

	items := UploadsToDTOs([]db.Upload{*upload, {PublicID: "def"}}, nil)
	if len(items) != 2 || items[1].ID != "def" || items[0].URL != "" {
		t.Fatalf("unexpected dtos %+v", items)
	}
}
