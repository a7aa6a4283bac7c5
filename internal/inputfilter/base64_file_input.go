package inputfilter

import (
	"errors"
	"fmt"
	"os"

	"datauri/internal/datauri"
	"datauri/internal/upload"

	"github.com/sirupsen/logrus"
)

// Base64FileInput is a FileInput fed with base64 data URIs. The URI is
// decoded to a temp file which is then exposed as a regular uploaded file.
type Base64FileInput struct {
	*FileInput

	streamFactory       upload.StreamFactory
	uploadedFileFactory upload.UploadedFileFactory
	decoder             *datauri.Decoder
}

// Option configures a Base64FileInput.
type Option func(*Base64FileInput)

// WithDecoder replaces the default decoder.
func WithDecoder(decoder *datauri.Decoder) Option {
	return func(i *Base64FileInput) {
		if decoder != nil {
			i.decoder = decoder
		}
	}
}

// NewBase64FileInput creates an input using the given factories. Nil
// factories fall back to the file based defaults.
func NewBase64FileInput(streamFactory upload.StreamFactory, uploadedFileFactory upload.UploadedFileFactory, name string, opts ...Option) *Base64FileInput {
	if streamFactory == nil {
		streamFactory = upload.FileStreamFactory{}
	}
	if uploadedFileFactory == nil {
		uploadedFileFactory = upload.FileFactory{}
	}
	input := &Base64FileInput{
		FileInput:           NewFileInput(name),
		streamFactory:       streamFactory,
		uploadedFileFactory: uploadedFileFactory,
		decoder:             datauri.NewDecoder(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(input)
		}
	}
	return input
}

// SetValue decodes value and stores the resulting uploaded file. Values
// that are not data URIs fail with datauri.ErrInvalidArgument and leave the
// current value untouched. A replaced value has its stream closed; its
// file stays on disk for the caller.
func (i *Base64FileInput) SetValue(value any) error {
	file, err := i.decodeValue(value)
	if err != nil {
		return err
	}
	closeStream(i.FileInput.Value())
	i.FileInput.SetValue(file)
	return nil
}

func closeStream(file upload.UploadedFile) {
	if file == nil {
		return
	}
	stream, err := file.Stream()
	if err != nil {
		return
	}
	if err := stream.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		logrus.WithError(err).WithField("path", stream.Path()).Debug("close replaced stream")
	}
}

func (i *Base64FileInput) decodeValue(value any) (upload.UploadedFile, error) {
	decoded, err := i.decoder.Decode(value)
	if err != nil {
		return nil, err
	}

	stream, err := i.streamFactory.CreateStreamFromFile(decoded.Path)
	if err != nil {
		if removeErr := os.Remove(decoded.Path); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			logrus.WithError(removeErr).WithField("path", decoded.Path).Warn("failed to remove decoded file")
		}
		return nil, fmt.Errorf("create stream for %s: %w", i.Name(), err)
	}

	return i.uploadedFileFactory.CreateUploadedFile(stream, nil, upload.UploadErrOK, decoded.Path, decoded.MediaType), nil
}
