package api

import (
	"datauri/internal/datauri"
	"datauri/internal/inputfilter"
	"datauri/internal/service"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func TestRespondUploadError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "invalid data uri",
			err:            datauri.ErrInvalidArgument,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrCodeInvalidDataURI,
		},
		{
			name:           "wrapped strict decode failure",
			err:            fmt.Errorf("%w: illegal base64 data at input byte 4", datauri.ErrInvalidArgument),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrCodeInvalidDataURI,
		},
		{
			name:           "record not found",
			err:            gorm.ErrRecordNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   ErrCodeUploadNotFound,
		},
		{
			name:           "storage unavailable",
			err:            service.ErrStorageUnavailable,
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   ErrCodeServiceUnavailable,
		},
		{
			name:           "repository unavailable",
			err:            service.ErrRepositoryUnavailable,
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   ErrCodeServiceUnavailable,
		},
		{
			name:           "unexpected failure",
			err:            fmt.Errorf("save upload: %w", errors.New("disk full")),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   ErrCodeInternalError,
		},
	}

	h := &HTTPHandler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/api/uploads", nil)

			h.respondUploadError(c, tt.err)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			var response APIError
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("failed to parse response: %v", err)
			}
			if response.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, response.Code)
			}
		})
	}
}

func TestRespondUploadErrorValidationDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/uploads", nil)

	err := fmt.Errorf("accept: %w", &inputfilter.ValidationError{
		Field:    "avatar",
		Messages: map[string]string{inputfilter.MessageFileSizeTooBig: "maximum allowed size is 10 bytes, got 20"},
	})
	(&HTTPHandler{}).respondUploadError(c, err)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, w.Code)
	}

	var response struct {
		Code    string `json:"code"`
		Details struct {
			Field    string            `json:"field"`
			Messages map[string]string `json:"messages"`
		} `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if response.Code != ErrCodeValidationFailed {
		t.Errorf("expected code %s, got %s", ErrCodeValidationFailed, response.Code)
	}
	if response.Details.Field != "avatar" {
		t.Errorf("expected field avatar, got %q", response.Details.Field)
	}
	if _, ok := response.Details.Messages[inputfilter.MessageFileSizeTooBig]; !ok {
		t.Errorf("expected %s message, got %v", inputfilter.MessageFileSizeTooBig, response.Details.Messages)
	}
}

func TestPayloadTooLargeReportsLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	PayloadTooLarge(c, 1024)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status %d, got %d", http.StatusRequestEntityTooLarge, w.Code)
	}
	var response struct {
		Code    string `json:"code"`
		Details struct {
			Limit int64 `json:"limit"`
		} `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if response.Code != ErrCodePayloadTooLarge || response.Details.Limit != 1024 {
		t.Errorf("unexpected response %+v", response)
	}
}
