package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// GzipMiddleware 压缩 JSON 响应，文件内容下载按原样返回.
func GzipMiddleware() gin.HandlerFunc {
	return gzip.Gzip(gzip.DefaultCompression,
		gzip.WithExcludedPathsRegexs([]string{`^/files/[^/]+/data$`, `^/metrics`, `^/debug/pprof`}))
}
