package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/filevault/pkg/internal/handle"
)

// RegisterStatsRoutes 注册状态与统计路由.
func RegisterStatsRoutes(g *gin.RouterGroup, h *handle.Handler, cache gin.HandlerFunc) {
	g.GET("/status", h.GetStatus)

	if cache != nil {
		g.GET("/stats", cache, h.GetStats)
		return
	}

	g.GET("/stats", h.GetStats)
}
