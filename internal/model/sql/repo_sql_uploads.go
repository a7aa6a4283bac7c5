package sql

import (
	"context"
	"datauri/internal/entity/common"
	"datauri/internal/entity/db"
	"datauri/internal/entity/dto"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const maxPageSize = 100

var uploadSortColumns = map[string]string{
	"created_at": "created_at",
	"size":       "size",
	"media_type": "media_type",
	"field":      "field",
}

// CreateUpload inserts a new upload row.
func (r *GormRepository) CreateUpload(ctx context.Context, upload *db.Upload) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if upload == nil {
		return fmt.Errorf("upload is nil")
	}
	return r.db.WithContext(ctx).Create(upload).Error
}

// GetUpload loads an upload by its public id.
func (r *GormRepository) GetUpload(ctx context.Context, publicID string) (*db.Upload, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	publicID = strings.TrimSpace(publicID)
	if publicID == "" {
		return nil, fmt.Errorf("invalid upload id")
	}

	var upload db.Upload
	if err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&upload).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load upload: %w", err)
	}
	return &upload, nil
}

// ListUploads retrieves paginated uploads.
func (r *GormRepository) ListUploads(ctx context.Context, params *dto.UploadQuery) ([]db.Upload, *common.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&db.Upload{})
	order := "created_at DESC, id DESC"
	page := 1
	pageSize := 20

	if params != nil {
		if trimmed := strings.TrimSpace(params.MediaType); trimmed != "" {
			query = query.Where("media_type = ?", trimmed)
		}
		if trimmed := strings.TrimSpace(params.Field); trimmed != "" {
			query = query.Where("field = ?", trimmed)
		}
		if trimmed := strings.TrimSpace(params.Owner); trimmed != "" {
			query = query.Where("owner = ?", trimmed)
		}
		if column, ok := uploadSortColumns[strings.ToLower(strings.TrimSpace(params.SortBy))]; ok {
			direction := "ASC"
			if params.SortDesc {
				direction = "DESC"
			}
			order = fmt.Sprintf("%s %s, id %s", column, direction, direction)
		}
		if params.Page > 0 {
			page = int(params.Page)
		}
		if params.PageSize > 0 {
			pageSize = int(params.PageSize)
		}
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, nil, err
	}

	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}

	var uploads []db.Upload
	if err := query.Order(order).Offset(offset).Limit(pageSize).Find(&uploads).Error; err != nil {
		return nil, nil, err
	}

	return uploads, r.calculatePagination(totalCount, page, pageSize), nil
}

// DeleteUpload removes an upload row by public id.
func (r *GormRepository) DeleteUpload(ctx context.Context, publicID string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	publicID = strings.TrimSpace(publicID)
	if publicID == "" {
		return fmt.Errorf("invalid upload id")
	}

	result := r.db.WithContext(ctx).Where("public_id = ?", publicID).Delete(&db.Upload{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
