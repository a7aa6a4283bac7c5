package utils

import "testing"

func TestExtensionFromMime(t *testing.T) {
	tests := []struct {
		mimeType string
		expected string
	}{
		{mimeType: "image/png", expected: "png"},
		{mimeType: "IMAGE/JPEG", expected: "jpg"},
		{mimeType: "text/plain; charset=utf-8", expected: "txt"},
		{mimeType: "application/pdf", expected: "pdf"},
		{mimeType: "", expected: ""},
		{mimeType: "application/x-not-registered", expected: ""},
	}

	for _, tt := range tests {
		if got := ExtensionFromMime(tt.mimeType); got != tt.expected {
			t.Errorf("ExtensionFromMime(%q) = %q, want %q", tt.mimeType, got, tt.expected)
		}
	}
}
