package upload

import (
	"errors"
	"io"
)

// ErrorCode is the status of an uploaded file, numbered like the
// conventional UPLOAD_ERR_* values.
type ErrorCode int

const (
	UploadErrOK        ErrorCode = 0
	UploadErrIniSize   ErrorCode = 1
	UploadErrFormSize  ErrorCode = 2
	UploadErrPartial   ErrorCode = 3
	UploadErrNoFile    ErrorCode = 4
	UploadErrNoTmpDir  ErrorCode = 6
	UploadErrCantWrite ErrorCode = 7
	UploadErrExtension ErrorCode = 8
)

var errorCodeNames = map[ErrorCode]string{
	UploadErrOK:        "ok",
	UploadErrIniSize:   "ini_size",
	UploadErrFormSize:  "form_size",
	UploadErrPartial:   "partial",
	UploadErrNoFile:    "no_file",
	UploadErrNoTmpDir:  "no_tmp_dir",
	UploadErrCantWrite: "cant_write",
	UploadErrExtension: "extension",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "unknown"
}

var (
	// ErrMoved is returned when a file is used after MoveTo succeeded.
	ErrMoved = errors.New("uploaded file has already been moved")
	// ErrUploadFailed is returned when the stream of a failed upload is requested.
	ErrUploadFailed = errors.New("uploaded file has an error status")
)

// Stream is a readable, seekable byte stream. Path is the backing file, or
// empty for streams that are not file based.
type Stream interface {
	io.ReadSeekCloser
	Size() (int64, error)
	Path() string
}

// UploadedFile is a file submitted through a form, whatever its transport.
type UploadedFile interface {
	Stream() (Stream, error)
	// Size returns the declared size, falling back to the stream size.
	Size() (int64, bool)
	ErrorCode() ErrorCode
	ClientFilename() string
	ClientMediaType() string
	MoveTo(target string) error
}

// StreamFactory wraps a file on disk as a Stream.
type StreamFactory interface {
	CreateStreamFromFile(path string) (Stream, error)
}

// UploadedFileFactory builds UploadedFile values. A nil size means unknown.
type UploadedFileFactory interface {
	CreateUploadedFile(stream Stream, size *int64, code ErrorCode, clientFilename, clientMediaType string) UploadedFile
}
