package inputfilter

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"datauri/internal/datauri"
	"datauri/internal/upload"
)

type recordingStreamFactory struct {
	paths []string
	err   error
}

func (f *recordingStreamFactory) CreateStreamFromFile(path string) (upload.Stream, error) {
	f.paths = append(f.paths, path)
	if f.err != nil {
		return nil, f.err
	}
	return upload.FileStreamFactory{}.CreateStreamFromFile(path)
}

type recordingFileFactory struct {
	size      *int64
	code      upload.ErrorCode
	filename  string
	mediaType string
}

func (f *recordingFileFactory) CreateUploadedFile(stream upload.Stream, size *int64, code upload.ErrorCode, clientFilename, clientMediaType string) upload.UploadedFile {
	f.size = size
	f.code = code
	f.filename = clientFilename
	f.mediaType = clientMediaType
	return upload.NewFile(stream, size, code, clientFilename, clientMediaType)
}

func newTestInput(t *testing.T, opts ...Option) *Base64FileInput {
	t.Helper()
	decoder := datauri.NewDecoder(datauri.WithTempDir(t.TempDir()))
	input := NewBase64FileInput(nil, nil, "avatar", append([]Option{WithDecoder(decoder)}, opts...)...)
	t.Cleanup(func() {
		_ = upload.Discard(input.Value())
	})
	return input
}

func TestBase64FileInputSetValue(t *testing.T) {
	streams := &recordingStreamFactory{}
	files := &recordingFileFactory{}
	decoder := datauri.NewDecoder(datauri.WithTempDir(t.TempDir()))
	input := NewBase64FileInput(streams, files, "avatar", WithDecoder(decoder))

	if err := input.SetValue("data:text/plain;base64,SGVsbG8="); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer upload.Discard(input.Value())

	if len(streams.paths) != 1 {
		t.Fatalf("expected one stream, got %d", len(streams.paths))
	}
	if files.size != nil {
		t.Errorf("expected nil size, got %d", *files.size)
	}
	if files.code != upload.UploadErrOK {
		t.Errorf("expected ok status, got %s", files.code)
	}
	if files.filename != streams.paths[0] {
		t.Errorf("expected client filename %s, got %s", streams.paths[0], files.filename)
	}
	if files.mediaType != "text/plain" {
		t.Errorf("expected text/plain, got %s", files.mediaType)
	}

	value := input.Value()
	if value == nil {
		t.Fatal("expected value to be set")
	}
	stream, err := value.Stream()
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	content, err := io.ReadAll(stream)
	if err != nil || string(content) != "Hello" {
		t.Fatalf("expected Hello, got %q (%v)", content, err)
	}
	if !input.IsValid() {
		t.Fatalf("expected valid input, messages: %v", input.Messages())
	}
}

func TestBase64FileInputReplaceClosesPreviousStream(t *testing.T) {
	input := newTestInput(t)

	if err := input.SetValue("data:text/plain;base64,Zmlyc3Q="); err != nil {
		t.Fatalf("first set: %v", err)
	}
	first, err := input.Value().Stream()
	if err != nil {
		t.Fatalf("first stream: %v", err)
	}
	firstPath := first.Path()

	if err := input.SetValue("data:text/plain;base64,c2Vjb25k"); err != nil {
		t.Fatalf("second set: %v", err)
	}

	if _, err := first.Read(make([]byte, 1)); !errors.Is(err, os.ErrClosed) {
		t.Fatalf("expected previous stream to be closed, got %v", err)
	}
	content, err := os.ReadFile(firstPath)
	if err != nil || string(content) != "first" {
		t.Fatalf("expected previous file kept on disk, got %q (%v)", content, err)
	}

	current, err := input.Value().Stream()
	if err != nil {
		t.Fatalf("current stream: %v", err)
	}
	if current.Path() == firstPath {
		t.Fatal("expected a new file for the second value")
	}
}

func TestBase64FileInputRejectsInvalidValue(t *testing.T) {
	input := newTestInput(t)
	if err := input.SetValue("data:text/plain;base64,SGVsbG8="); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	previous := input.Value()

	for _, value := range []any{"", "not a data uri", "data:image/svg+xml;base64,PHN2Zz4=", 12, nil} {
		if err := input.SetValue(value); !errors.Is(err, datauri.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument for %v, got %v", value, err)
		}
		if input.Value() != previous {
			t.Fatalf("expected value untouched after %v", value)
		}
	}
}

func TestBase64FileInputStreamFailureRemovesFile(t *testing.T) {
	dir := t.TempDir()
	streams := &recordingStreamFactory{err: errors.New("boom")}
	decoder := datauri.NewDecoder(datauri.WithTempDir(dir))
	input := NewBase64FileInput(streams, nil, "avatar", WithDecoder(decoder))

	err := input.SetValue("data:text/plain;base64,SGVsbG8=")
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected stream error, got %v", err)
	}
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("read dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("expected temp file removed, found %d entries", len(entries))
	}
	if input.Value() != nil {
		t.Fatal("expected no value")
	}
}

func TestBase64FileInputValidators(t *testing.T) {
	tests := []struct {
		name       string
		validators []Validator
		value      string
		wantValid  bool
		wantKey    string
	}{
		{
			name:       "within size",
			validators: []Validator{MaxSizeValidator{Limit: 5}},
			value:      "data:text/plain;base64,SGVsbG8=",
			wantValid:  true,
		},
		{
			name:       "too big",
			validators: []Validator{MaxSizeValidator{Limit: 3}},
			value:      "data:text/plain;base64,SGVsbG8=",
			wantKey:    MessageFileSizeTooBig,
		},
		{
			name:       "allowed media type",
			validators: []Validator{NewMediaTypeValidator("image/png, text/plain")},
			value:      "data:text/plain;base64,SGVsbG8=",
			wantValid:  true,
		},
		{
			name:       "wildcard media type",
			validators: []Validator{NewMediaTypeValidator("image/*")},
			value:      "data:image/png;base64,iVBORw0KGgo=",
			wantValid:  true,
		},
		{
			name:       "rejected media type",
			validators: []Validator{NewMediaTypeValidator("image/png")},
			value:      "data:text/plain;base64,SGVsbG8=",
			wantKey:    MessageMediaTypeInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := newTestInput(t)
			for _, v := range tt.validators {
				input.AddValidator(v)
			}
			if err := input.SetValue(tt.value); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := input.IsValid(); got != tt.wantValid {
				t.Fatalf("expected valid=%v, got %v (%v)", tt.wantValid, got, input.Messages())
			}
			if tt.wantKey != "" {
				if _, ok := input.Messages()[tt.wantKey]; !ok {
					t.Fatalf("expected message %s, got %v", tt.wantKey, input.Messages())
				}
				var validationErr *ValidationError
				if err := input.Validate(); !errors.As(err, &validationErr) || validationErr.Field != "avatar" {
					t.Fatalf("expected validation error for avatar, got %v", err)
				}
			}
		})
	}
}

func TestFileInputRequired(t *testing.T) {
	input := NewFileInput("document")
	if input.IsValid() {
		t.Fatal("expected required empty input to be invalid")
	}
	if _, ok := input.Messages()[MessageIsEmpty]; !ok {
		t.Fatalf("expected isEmpty message, got %v", input.Messages())
	}

	input.SetRequired(false)
	if !input.IsValid() {
		t.Fatal("expected optional empty input to be valid")
	}
	if err := input.Validate(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestFileInputUploadStatus(t *testing.T) {
	input := NewFileInput("document")
	input.SetValue(upload.NewFile(nil, nil, upload.UploadErrPartial, "", ""))
	if input.IsValid() {
		t.Fatal("expected failed upload to be invalid")
	}
	if _, ok := input.Messages()[MessageUploadFailed]; !ok {
		t.Fatalf("expected upload message, got %v", input.Messages())
	}
}
