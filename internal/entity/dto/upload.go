package dto

import (
	"datauri/internal/entity/common"
	"time"
)

// CreateUploadRequest is the payload of POST /api/uploads. Both JSON and
// urlencoded forms bind to it.
type CreateUploadRequest struct {
	Field string `json:"field" form:"field"`
	Data  string `json:"data" form:"data"`
}

// UploadQuery supports listing uploads.
type UploadQuery struct {
	common.BaseParams
	MediaType string `json:"media_type" form:"media_type" query:"media_type"`
	Field     string `json:"field" form:"field" query:"field"`
	Owner     string `json:"-" form:"-" query:"-"`
}

// Upload is the DTO representation of a stored upload.
type Upload struct {
	ID          string    `json:"id"`
	Field       string    `json:"field"`
	MediaType   string    `json:"media_type"`
	Size        int64     `json:"size"`
	StorageType string    `json:"storage_type"`
	URL         string    `json:"url,omitempty"`
	Owner       string    `json:"owner,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// UploadListResponse is the response for listing uploads.
type UploadListResponse struct {
	Uploads []Upload     `json:"uploads"`
	Meta    *common.Meta `json:"meta"`
}

// UploadDetailResponse is the response for a single upload.
type UploadDetailResponse struct {
	Upload Upload `json:"upload"`
}
