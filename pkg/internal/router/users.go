package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/filevault/pkg/internal/handle"
)

// RegisterUserRoutes 注册用户与会话路由.
func RegisterUserRoutes(g *gin.RouterGroup, h *handle.Handler, session gin.HandlerFunc) {
	g.POST("/users", h.PostNew)
	g.GET("/users/me", session, h.GetMe)
	g.GET("/connect", h.GetConnect)
	g.GET("/disconnect", h.GetDisconnect)
}
