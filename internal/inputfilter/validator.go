package inputfilter

import (
	"fmt"
	"strings"

	"datauri/internal/upload"
)

// Message keys reported by the built-in validators.
const (
	MessageIsEmpty          = "isEmpty"
	MessageUploadFailed     = "fileUploadError"
	MessageFileSizeTooBig   = "fileSizeTooBig"
	MessageFileSizeUnknown  = "fileSizeNotDetected"
	MessageMediaTypeInvalid = "fileMediaTypeFalse"
)

// Validator checks an uploaded file. It returns the message key and text
// of the first problem found, or ok.
type Validator interface {
	Validate(file upload.UploadedFile) (key string, message string, ok bool)
}

// UploadValidator rejects files whose upload status is not OK.
type UploadValidator struct{}

func (UploadValidator) Validate(file upload.UploadedFile) (string, string, bool) {
	if code := file.ErrorCode(); code != upload.UploadErrOK {
		return MessageUploadFailed, fmt.Sprintf("file upload failed: %s", code), false
	}
	return "", "", true
}

// MaxSizeValidator rejects files larger than Limit bytes. A zero limit
// disables the check.
type MaxSizeValidator struct {
	Limit int64
}

func (v MaxSizeValidator) Validate(file upload.UploadedFile) (string, string, bool) {
	if v.Limit <= 0 {
		return "", "", true
	}
	size, ok := file.Size()
	if !ok {
		return MessageFileSizeUnknown, "file size could not be detected", false
	}
	if size > v.Limit {
		return MessageFileSizeTooBig, fmt.Sprintf("maximum allowed size is %d bytes, got %d", v.Limit, size), false
	}
	return "", "", true
}

// MediaTypeValidator accepts only the listed media types. An empty list
// accepts everything.
type MediaTypeValidator struct {
	Allowed []string
}

// NewMediaTypeValidator builds a validator from a comma separated list.
func NewMediaTypeValidator(list string) MediaTypeValidator {
	var allowed []string
	for _, item := range strings.Split(list, ",") {
		if trimmed := strings.ToLower(strings.TrimSpace(item)); trimmed != "" {
			allowed = append(allowed, trimmed)
		}
	}
	return MediaTypeValidator{Allowed: allowed}
}

func (v MediaTypeValidator) Validate(file upload.UploadedFile) (string, string, bool) {
	if len(v.Allowed) == 0 {
		return "", "", true
	}
	mediaType := strings.ToLower(file.ClientMediaType())
	for _, allowed := range v.Allowed {
		if strings.EqualFold(allowed, mediaType) {
			return "", "", true
		}
		if prefix, ok := strings.CutSuffix(allowed, "/*"); ok && strings.HasPrefix(mediaType, prefix+"/") {
			return "", "", true
		}
	}
	return MessageMediaTypeInvalid, fmt.Sprintf("media type %q is not allowed", file.ClientMediaType()), false
}

var _ Validator = UploadValidator{}
var _ Validator = MaxSizeValidator{}
var _ Validator = MediaTypeValidator{}
