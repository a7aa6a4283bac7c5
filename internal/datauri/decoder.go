package datauri

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultTempPrefix is prepended to every temp file the decoder creates.
const DefaultTempPrefix = "file_"

// ErrInvalidArgument is returned when a value is not a base64 data URI.
var ErrInvalidArgument = errors.New("value is not base64 encoded")

// The pattern may occur anywhere in the value; the payload still starts
// after the first comma. \w is ASCII only, so image/svg+xml never matches.
var mediaTypePattern = regexp.MustCompile(`data:(\w+/\w+);base64,`)

// DecodedFile describes a payload written to disk. The file belongs to the
// caller once Decode returns.
type DecodedFile struct {
	Path      string
	MediaType string
	Size      int64
}

// Decoder turns data URIs into temp files.
type Decoder struct {
	tempDir string
	prefix  string
	strict  bool
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithTempDir sets the directory temp files are created in. An empty
// directory means os.TempDir.
func WithTempDir(dir string) Option {
	return func(d *Decoder) {
		d.tempDir = strings.TrimSpace(dir)
	}
}

// WithTempPrefix overrides DefaultTempPrefix.
func WithTempPrefix(prefix string) Option {
	return func(d *Decoder) {
		if trimmed := strings.TrimSpace(prefix); trimmed != "" {
			d.prefix = trimmed
		}
	}
}

// WithStrictBase64 rejects payloads that are not canonical standard base64
// instead of skipping characters outside the alphabet.
func WithStrictBase64(strict bool) Option {
	return func(d *Decoder) {
		d.strict = strict
	}
}

// NewDecoder creates a Decoder. Without options it writes to os.TempDir and
// decodes permissively.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{prefix: DefaultTempPrefix}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Strict reports whether malformed base64 is rejected.
func (d *Decoder) Strict() bool {
	return d.strict
}

// Decode validates value, decodes its payload and writes it to a new temp
// file. Values that are not strings or do not contain
// data:<type>/<subtype>;base64, fail with ErrInvalidArgument and leave no
// file behind.
func (d *Decoder) Decode(value any) (*DecodedFile, error) {
	raw, ok := value.(string)
	if !ok {
		return nil, ErrInvalidArgument
	}
	mediaType, ok := MatchMediaType(raw)
	if !ok {
		return nil, ErrInvalidArgument
	}

	_, payload, _ := strings.Cut(raw, ",")
	data, err := decodePayload(payload, d.strict)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	path, err := d.writeTemp(data)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"path":       path,
		"media_type": mediaType,
		"size":       len(data),
	}).Debug("data uri decoded")

	return &DecodedFile{
		Path:      path,
		MediaType: mediaType,
		Size:      int64(len(data)),
	}, nil
}

func (d *Decoder) writeTemp(data []byte) (string, error) {
	file, err := os.CreateTemp(d.tempDir, d.prefix+"*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	name := file.Name()

	_, writeErr := file.Write(data)
	closeErr := file.Close()
	if writeErr == nil && closeErr != nil {
		writeErr = fmt.Errorf("close temp file: %w", closeErr)
	} else if writeErr != nil {
		writeErr = fmt.Errorf("write temp file: %w", writeErr)
	}
	if writeErr != nil {
		if removeErr := os.Remove(name); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			logrus.WithError(removeErr).WithField("path", name).Warn("failed to remove partial temp file")
		}
		return "", writeErr
	}
	return name, nil
}

// MatchMediaType returns the media type of a base64 data URI.
func MatchMediaType(value string) (string, bool) {
	matches := mediaTypePattern.FindStringSubmatch(value)
	if len(matches) < 2 {
		return "", false
	}
	return matches[1], true
}
