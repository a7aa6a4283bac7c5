package service

import (
	"context"
	"datauri/internal/datauri"
	"datauri/internal/entity/common"
	"datauri/internal/entity/db"
	"datauri/internal/entity/dto"
	"datauri/internal/inputfilter"
	"datauri/internal/model"
	"datauri/internal/storage"
	"datauri/internal/upload"
	"datauri/internal/utils"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultField 请求未指定字段名时使用
	DefaultField = "file"
	// uploadCategory 上传文件在存储中的目录
	uploadCategory = "uploads"
)

var (
	ErrStorageUnavailable    = errors.New("upload storage not available")
	ErrRepositoryUnavailable = errors.New("upload repository not available")
)

// UploadOptions 上传服务的可选配置
type UploadOptions struct {
	StorageType       string
	Decoder           *datauri.Decoder
	StreamFactory     upload.StreamFactory
	FileFactory       upload.UploadedFileFactory
	MaxBytes          int64
	AllowedMediaTypes string
}

// UploadService 接收数据 URI，校验后写入存储并记录元数据
type UploadService struct {
	repo        model.Repository
	storage     storage.Storage
	storageType string

	decoder       *datauri.Decoder
	streamFactory upload.StreamFactory
	fileFactory   upload.UploadedFileFactory
	maxSize       inputfilter.MaxSizeValidator
	mediaTypes    inputfilter.MediaTypeValidator
}

// NewUploadService 创建上传服务实例。repo 可以为 nil，此时只写入存储。
func NewUploadService(repo model.Repository, store storage.Storage, opts UploadOptions) *UploadService {
	decoder := opts.Decoder
	if decoder == nil {
		decoder = datauri.NewDecoder()
	}
	streamFactory := opts.StreamFactory
	if streamFactory == nil {
		streamFactory = upload.FileStreamFactory{}
	}
	fileFactory := opts.FileFactory
	if fileFactory == nil {
		fileFactory = upload.FileFactory{}
	}
	return &UploadService{
		repo:          repo,
		storage:       store,
		storageType:   storage.NormalizeType(opts.StorageType),
		decoder:       decoder,
		streamFactory: streamFactory,
		fileFactory:   fileFactory,
		maxSize:       inputfilter.MaxSizeValidator{Limit: opts.MaxBytes},
		mediaTypes:    inputfilter.NewMediaTypeValidator(opts.AllowedMediaTypes),
	}
}

// AcceptRequest 上传请求参数
type AcceptRequest struct {
	Field string
	Value any
	Owner string
}

// NewInput 构建带有配置校验器的 Base64 文件输入
func (s *UploadService) NewInput(field string) *inputfilter.Base64FileInput {
	input := inputfilter.NewBase64FileInput(s.streamFactory, s.fileFactory, field, inputfilter.WithDecoder(s.decoder))
	input.AddValidator(s.maxSize).AddValidator(s.mediaTypes)
	return input
}

// Accept 解码并校验数据 URI，写入存储后记录上传。临时文件在返回前删除。
func (s *UploadService) Accept(ctx context.Context, req AcceptRequest) (*db.Upload, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}

	field := strings.TrimSpace(req.Field)
	if field == "" {
		field = DefaultField
	}

	input := s.NewInput(field)
	if err := input.SetValue(req.Value); err != nil {
		if raw, ok := req.Value.(string); ok && errors.Is(err, datauri.ErrInvalidArgument) {
			logrus.WithFields(logrus.Fields{
				"field": field,
				"value": datauri.Snippet(raw),
			}).Debug("rejected data uri")
		}
		return nil, err
	}
	file := input.Value()
	defer func() {
		if err := upload.Discard(file); err != nil {
			logrus.WithError(err).WithField("field", field).Warn("failed to discard decoded file")
		}
	}()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	size, _ := file.Size()
	if size == 0 {
		return nil, &inputfilter.ValidationError{
			Field:    field,
			Messages: map[string]string{inputfilter.MessageIsEmpty: "decoded file is empty"},
		}
	}

	stream, err := file.Stream()
	if err != nil {
		return nil, fmt.Errorf("open decoded file: %w", err)
	}

	mediaType := file.ClientMediaType()
	ext := utils.ExtensionFromMime(mediaType)
	if ext == "" {
		ext = "bin"
	}
	publicID := uuid.NewString()

	saveCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	key, err := s.storage.Save(saveCtx, stream, size, storage.SaveOptions{
		Category:    uploadCategory,
		BaseName:    publicID,
		Extension:   ext,
		ContentType: mediaType,
	})
	if err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	record := &db.Upload{
		PublicID:    publicID,
		Field:       field,
		MediaType:   mediaType,
		Size:        size,
		StorageType: s.storageType,
		StorageKey:  key,
		Owner:       strings.TrimSpace(req.Owner),
		CreatedAt:   time.Now().UTC(),
	}

	if s.repo != nil {
		if err := s.repo.CreateUpload(ctx, record); err != nil {
			s.removeStored(key)
			return nil, fmt.Errorf("record upload: %w", err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"upload_id":  publicID,
		"field":      field,
		"media_type": mediaType,
		"size":       size,
		"storage":    s.storageType,
		"key":        key,
	}).Info("upload stored")

	return record, nil
}

// Get 按公开 ID 查询上传记录
func (s *UploadService) Get(ctx context.Context, publicID string) (*db.Upload, error) {
	if s.repo == nil {
		return nil, ErrRepositoryUnavailable
	}
	return s.repo.GetUpload(ctx, publicID)
}

// List 分页查询上传记录
func (s *UploadService) List(ctx context.Context, query *dto.UploadQuery) ([]db.Upload, *common.Meta, error) {
	if s.repo == nil {
		return nil, nil, ErrRepositoryUnavailable
	}
	return s.repo.ListUploads(ctx, query)
}

// Delete 删除存储对象及其记录
func (s *UploadService) Delete(ctx context.Context, publicID string) error {
	if s.repo == nil {
		return ErrRepositoryUnavailable
	}
	record, err := s.repo.GetUpload(ctx, publicID)
	if err != nil {
		return err
	}
	if s.storage != nil {
		if err := s.storage.Delete(ctx, record.StorageKey); err != nil {
			return fmt.Errorf("delete stored file: %w", err)
		}
	}
	return s.repo.DeleteUpload(ctx, record.PublicID)
}

// removeStored 回滚已写入存储的对象
func (s *UploadService) removeStored(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.storage.Delete(ctx, key); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("failed to roll back stored upload")
	}
}
