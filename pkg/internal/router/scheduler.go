package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/filevault/pkg/internal/handle"
)

// RegisterSchedulerRoutes 注册调度器相关路由.
func RegisterSchedulerRoutes(g *gin.RouterGroup, h *handle.Handler) {
	g.GET("/scheduler/jobs", h.SchedulerJobs)
	g.POST("/scheduler/jobs/:name/run", h.SchedulerRunJob)
}
