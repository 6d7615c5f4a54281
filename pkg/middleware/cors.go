package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yeisme/filevault/pkg/configs"
)

// CORSMiddleware CORS中间件，放行会话令牌与请求 ID 头.
func CORSMiddleware(server configs.ServerConfig, auth configs.AuthConfig) gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AddAllowHeaders(auth.TokenHeader, RequestIDHeader, "Authorization")
	config.AddExposeHeaders(RequestIDHeader, "X-Cache")

	if server.Debug {
		config.AllowFiles = true
	}

	return cors.New(config)
}
