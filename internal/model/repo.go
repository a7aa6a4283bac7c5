package model

import (
	"context"
	"datauri/internal/entity/common"
	"datauri/internal/entity/db"
	"datauri/internal/entity/dto"
)

// Repository 定义数据库操作接口
type Repository interface {
	// 上传记录
	CreateUpload(ctx context.Context, upload *db.Upload) error
	GetUpload(ctx context.Context, publicID string) (*db.Upload, error)
	ListUploads(ctx context.Context, params *dto.UploadQuery) ([]db.Upload, *common.Meta, error)
	DeleteUpload(ctx context.Context, publicID string) error
}
