package api

import (
	"context"
	"datauri/internal/datauri"
	"datauri/internal/entity/converter"
	"datauri/internal/entity/db"
	"datauri/internal/entity/dto"
	"datauri/internal/inputfilter"
	"datauri/internal/service"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateUpload 接收 data URI（JSON 或表单），解码校验后保存
func (h *HTTPHandler) CreateUpload(c *gin.Context) {
	var req dto.CreateUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			PayloadTooLarge(c, maxErr.Limit)
			return
		}
		InvalidPayload(c)
		return
	}
	if strings.TrimSpace(req.Data) == "" {
		MissingField(c, "data")
		return
	}

	record, err := h.uploads.Accept(c.Request.Context(), service.AcceptRequest{
		Field: req.Field,
		Value: req.Data,
		Owner: CurrentSubject(c),
	})
	if err != nil {
		h.respondUploadError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.UploadDetailResponse{Upload: converter.UploadToDTO(record, h.publicURL)})
}

// ListUploads 分页查询上传记录。启用认证时只返回当前主体的记录。
func (h *HTTPHandler) ListUploads(c *gin.Context) {
	var query dto.UploadQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = 20
	}
	if query.PageSize > 100 {
		query.PageSize = 100
	}
	query.Owner = CurrentSubject(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	uploads, meta, err := h.uploads.List(ctx, &query)
	if err != nil {
		h.respondUploadError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UploadListResponse{
		Uploads: converter.UploadsToDTOs(uploads, h.publicURL),
		Meta:    meta,
	})
}

// GetUpload 查询单条上传记录
func (h *HTTPHandler) GetUpload(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	record, ok := h.loadOwnedUpload(ctx, c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.UploadDetailResponse{Upload: converter.UploadToDTO(record, h.publicURL)})
}

// DeleteUpload 删除上传记录及存储对象
func (h *HTTPHandler) DeleteUpload(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	record, ok := h.loadOwnedUpload(ctx, c)
	if !ok {
		return
	}

	if err := h.uploads.Delete(ctx, record.PublicID); err != nil {
		h.respondUploadError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// loadOwnedUpload 读取路径参数对应的记录，并校验归属
func (h *HTTPHandler) loadOwnedUpload(ctx context.Context, c *gin.Context) (*db.Upload, bool) {
	publicID := strings.TrimSpace(c.Param("id"))
	if publicID == "" {
		BadRequest(c, ErrCodeInvalidRequest, "invalid upload id")
		return nil, false
	}

	record, err := h.uploads.Get(ctx, publicID)
	if err != nil {
		h.respondUploadError(c, err)
		return nil, false
	}

	if subject := CurrentSubject(c); subject != "" && record.Owner != subject {
		Forbidden(c, "upload belongs to another subject")
		return nil, false
	}
	return record, true
}

// respondUploadError 将服务层错误映射为 HTTP 响应
func (h *HTTPHandler) respondUploadError(c *gin.Context, err error) {
	var validationErr *inputfilter.ValidationError
	switch {
	case errors.Is(err, datauri.ErrInvalidArgument):
		BadRequest(c, ErrCodeInvalidDataURI, err.Error())
	case errors.As(err, &validationErr):
		ErrorResponseWithDetails(c, http.StatusUnprocessableEntity, ErrCodeValidationFailed, "upload validation failed", gin.H{
			"field":    validationErr.Field,
			"messages": validationErr.Messages,
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(c, ErrCodeUploadNotFound, "upload not found")
	case errors.Is(err, service.ErrStorageUnavailable), errors.Is(err, service.ErrRepositoryUnavailable):
		ServiceUnavailable(c, err.Error())
	default:
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("upload request failed")
		InternalError(c, "failed to process upload")
	}
}
