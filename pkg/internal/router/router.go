// Package router 管理路由配置，把 handle 中的处理器绑定到 gin 引擎.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/filevault/pkg/internal/handle"
)

// Options 路由装配参数.
type Options struct {
	// Session 会话校验中间件，所有需要 X-Token 的路由都挂在它后面
	Session gin.HandlerFunc
	// StatsCache /stats 的响应缓存，可为 nil
	StatsCache gin.HandlerFunc
}

// Register 绑定全部业务路由:
//
//	GET  /status, /stats
//	POST /users           GET /users/me
//	GET  /connect, /disconnect
//	POST /files           GET /files, /files/:id, /files/:id/data
//	PUT  /files/:id/publish, /files/:id/unpublish
//	GET  /api/v1/health/:component
//	GET  /api/v1/scheduler/jobs  POST /api/v1/scheduler/jobs/:name/run
func Register(e *gin.Engine, h *handle.Handler, opts Options) {
	RegisterStatsRoutes(&e.RouterGroup, h, opts.StatsCache)
	RegisterUserRoutes(&e.RouterGroup, h, opts.Session)
	RegisterFilesRoutes(e.Group("/files", opts.Session), h)

	v1 := e.Group("/api/v1")
	RegisterHealthCheckRoute(v1, h)
	RegisterSchedulerRoutes(v1.Group("", opts.Session), h)
}
