package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/filevault/pkg/internal/handle"
)

// RegisterFilesRoutes 注册文件记录路由，g 需已挂载会话中间件.
func RegisterFilesRoutes(g *gin.RouterGroup, h *handle.Handler) {
	g.POST("", h.PostUpload)
	g.GET("", h.GetIndex)
	g.GET("/:id", h.GetShow)
	g.PUT("/:id/publish", h.PutPublish)
	g.PUT("/:id/unpublish", h.PutUnpublish)
	g.GET("/:id/data", h.GetFile)
}
