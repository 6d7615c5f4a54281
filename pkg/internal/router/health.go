package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/filevault/pkg/internal/handle"
)

// RegisterHealthCheckRoute 注册健康检查路由: /health/{db,kv,content,mq}.
func RegisterHealthCheckRoute(g *gin.RouterGroup, h *handle.Handler) {
	g.GET("/health/:component", h.GetHealth)
}
