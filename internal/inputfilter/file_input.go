package inputfilter

import (
	"fmt"
	"sort"
	"strings"

	"datauri/internal/upload"
)

// ValidationError lists the messages of a file input that failed validation.
type ValidationError struct {
	Field    string
	Messages map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Messages))
	for key := range e.Messages {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, e.Messages[key])
	}
	return fmt.Sprintf("input %q is invalid: %s", e.Field, strings.Join(parts, "; "))
}

// FileInput holds an uploaded file value and the validators it must pass.
// An upload status check always runs before the configured validators.
type FileInput struct {
	name       string
	required   bool
	validators []Validator
	value      upload.UploadedFile
	messages   map[string]string
}

// NewFileInput creates a required input.
func NewFileInput(name string) *FileInput {
	return &FileInput{
		name:     name,
		required: true,
	}
}

func (i *FileInput) Name() string {
	return i.name
}

func (i *FileInput) SetRequired(required bool) *FileInput {
	i.required = required
	return i
}

func (i *FileInput) Required() bool {
	return i.required
}

// AddValidator appends v to the validator chain.
func (i *FileInput) AddValidator(v Validator) *FileInput {
	if v != nil {
		i.validators = append(i.validators, v)
	}
	return i
}

// SetValue replaces the current file and clears previous messages.
func (i *FileInput) SetValue(file upload.UploadedFile) {
	i.value = file
	i.messages = nil
}

func (i *FileInput) Value() upload.UploadedFile {
	return i.value
}

// IsValid runs the validator chain and records failure messages. The
// chain stops at the first failing validator.
func (i *FileInput) IsValid() bool {
	i.messages = nil
	if i.value == nil {
		if i.required {
			i.messages = map[string]string{MessageIsEmpty: "value is required and can't be empty"}
			return false
		}
		return true
	}

	chain := append([]Validator{UploadValidator{}}, i.validators...)
	for _, v := range chain {
		if key, message, ok := v.Validate(i.value); !ok {
			i.messages = map[string]string{key: message}
			return false
		}
	}
	return true
}

// Messages returns the messages of the last IsValid call.
func (i *FileInput) Messages() map[string]string {
	out := make(map[string]string, len(i.messages))
	for key, message := range i.messages {
		out[key] = message
	}
	return out
}

// Validate is IsValid returning a *ValidationError.
func (i *FileInput) Validate() error {
	if i.IsValid() {
		return nil
	}
	return &ValidationError{Field: i.name, Messages: i.Messages()}
}
