package api

import (
	"datauri/internal/auth"
	"datauri/internal/config"
	"datauri/internal/service"
	"datauri/internal/storage"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// bodyOverhead 为 JSON/表单封装与 data URI 头部预留的字节数
const bodyOverhead = 64 << 10

// HTTPHandler HTTP 请求处理器
type HTTPHandler struct {
	cfg               config.Config
	storage           storage.Storage
	storagePublicBase string
	authManager       *auth.Manager

	// 服务层
	uploads *service.UploadService
}

// NewHTTPHandler 创建 HTTP 处理器实例。JWT_SECRET 为空时不启用认证。
func NewHTTPHandler(cfg config.Config, uploads *service.UploadService, store storage.Storage) (*HTTPHandler, error) {
	var authManager *auth.Manager
	if strings.TrimSpace(cfg.JWTSecret) != "" {
		expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
		manager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
		if err != nil {
			return nil, err
		}
		authManager = manager
	}

	return &HTTPHandler{
		cfg:               cfg,
		storage:           store,
		storagePublicBase: normalisePublicBase(cfg.StoragePublicBaseURL),
		authManager:       authManager,
		uploads:           uploads,
	}, nil
}

// AuthEnabled 是否要求 Bearer Token
func (h *HTTPHandler) AuthEnabled() bool {
	return h.authManager != nil
}

// RegisterRoutes 注册健康检查、上传接口以及本地存储的静态文件路由
func (h *HTTPHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	apiGroup := r.Group("/api")
	if h.AuthEnabled() {
		apiGroup.Use(h.AuthMiddleware())
	}

	uploads := apiGroup.Group("/uploads")
	uploads.POST("", UploadBodyMiddleware(h.cfg.UploadMaxBytes), h.CreateUpload)
	uploads.GET("", h.ListUploads)
	uploads.GET("/:id", h.GetUpload)
	uploads.DELETE("/:id", h.DeleteUpload)

	if localProvider, ok := h.storage.(storage.LocalBaseDirProvider); ok {
		if strings.HasPrefix(h.storagePublicBase, "/") {
			r.Static(h.storagePublicBase, localProvider.LocalBaseDir())
		}
	}

	r.NoRoute(func(c *gin.Context) { NotFound(c, ErrCodeNotFound, "route not found") })
}

// requestBodyLimit 根据解码后的上限推算请求体上限。base64 膨胀约 4/3，
// urlencoded 表单还会把 + / = 转义成 3 个字节，按最坏情况计算。
func requestBodyLimit(maxBytes int64, contentType string) int64 {
	if maxBytes <= 0 {
		return 0
	}
	encoded := (maxBytes + 2) / 3 * 4
	if contentType == binding.MIMEPOSTForm {
		encoded *= 3
	}
	return encoded + bodyOverhead
}

// normalisePublicBase 规范化公共 URL 基础路径
func normalisePublicBase(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = "/files"
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return strings.TrimRight(trimmed, "/")
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}
