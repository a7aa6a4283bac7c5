package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// FileStreamFactory opens files read-only.
type FileStreamFactory struct{}

// CreateStreamFromFile opens path and returns it as a Stream.
func (FileStreamFactory) CreateStreamFromFile(path string) (Stream, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}
	return &fileStream{File: file}, nil
}

type fileStream struct {
	*os.File
}

func (s *fileStream) Size() (int64, error) {
	info, err := s.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (s *fileStream) Path() string {
	return s.Name()
}

// FileFactory creates *File values.
type FileFactory struct{}

// CreateUploadedFile wraps stream and its metadata.
func (FileFactory) CreateUploadedFile(stream Stream, size *int64, code ErrorCode, clientFilename, clientMediaType string) UploadedFile {
	return NewFile(stream, size, code, clientFilename, clientMediaType)
}

// File is the default UploadedFile.
type File struct {
	stream          Stream
	size            *int64
	code            ErrorCode
	clientFilename  string
	clientMediaType string
	moved           bool
}

// NewFile creates a File.
func NewFile(stream Stream, size *int64, code ErrorCode, clientFilename, clientMediaType string) *File {
	return &File{
		stream:          stream,
		size:            size,
		code:            code,
		clientFilename:  clientFilename,
		clientMediaType: clientMediaType,
	}
}

// Stream returns the underlying stream.
func (f *File) Stream() (Stream, error) {
	if f.code != UploadErrOK {
		return nil, ErrUploadFailed
	}
	if f.moved {
		return nil, ErrMoved
	}
	if f.stream == nil {
		return nil, errors.New("uploaded file has no stream")
	}
	return f.stream, nil
}

func (f *File) Size() (int64, bool) {
	if f.size != nil {
		return *f.size, true
	}
	if f.stream == nil || f.moved {
		return 0, false
	}
	size, err := f.stream.Size()
	if err != nil {
		return 0, false
	}
	return size, true
}

func (f *File) ErrorCode() ErrorCode {
	return f.code
}

func (f *File) ClientFilename() string {
	return f.clientFilename
}

func (f *File) ClientMediaType() string {
	return f.clientMediaType
}

// MoveTo relocates the file to target. Renames are tried first; when they
// fail (for instance across devices) the content is copied instead.
func (f *File) MoveTo(target string) error {
	stream, err := f.Stream()
	if err != nil {
		return err
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return errors.New("move target must not be empty")
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create target dir: %w", err)
	}

	source := stream.Path()
	if source != "" {
		if err := stream.Close(); err != nil {
			logrus.WithError(err).WithField("path", source).Debug("close stream before move")
		}
		if err := os.Rename(source, target); err == nil {
			f.moved = true
			return nil
		}
		if err := copyFile(source, target); err != nil {
			return err
		}
		if err := os.Remove(source); err != nil {
			return fmt.Errorf("remove source: %w", err)
		}
		f.moved = true
		return nil
	}

	if _, err := stream.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind stream: %w", err)
	}
	if err := writeFrom(stream, target); err != nil {
		return err
	}
	if err := stream.Close(); err != nil {
		logrus.WithError(err).Debug("close stream after move")
	}
	f.moved = true
	return nil
}

func copyFile(source, target string) error {
	in, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()
	return writeFrom(in, target)
}

func writeFrom(r io.Reader, target string) error {
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create target: %w", err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("copy to target: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close target: %w", err)
	}
	return nil
}

// Discard closes the stream of file and deletes its backing file unless it
// has been moved. It is safe to call on nil.
func Discard(file UploadedFile) error {
	if file == nil {
		return nil
	}
	stream, err := file.Stream()
	if err != nil {
		if errors.Is(err, ErrMoved) || errors.Is(err, ErrUploadFailed) {
			return nil
		}
		return err
	}
	path := stream.Path()
	if err := stream.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		logrus.WithError(err).WithField("path", path).Debug("close stream on discard")
	}
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove uploaded file: %w", err)
	}
	return nil
}

var _ StreamFactory = FileStreamFactory{}
var _ UploadedFileFactory = FileFactory{}
var _ UploadedFile = (*File)(nil)
