package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodyMiddleware 限制请求体大小。声明的长度超限时直接拒绝，
// 否则包装 Body，读取超限时绑定会返回 *http.MaxBytesError。limit 为 0 时不限制。
func MaxBodyMiddleware(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > limit {
			c.Abort()
			PayloadTooLarge(c, limit)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

// UploadBodyMiddleware 按请求的 Content-Type 推算上传请求体上限
func UploadBodyMiddleware(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		MaxBodyMiddleware(requestBodyLimit(maxBytes, c.ContentType()))(c)
	}
}
