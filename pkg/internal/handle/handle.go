// Package handle 提供 HTTP 请求处理器. 业务服务通过 Deps 显式注入.
package handle

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	ctxPkg "github.com/yeisme/filevault/pkg/context"
	"github.com/yeisme/filevault/pkg/internal/model"
	"github.com/yeisme/filevault/pkg/internal/service"
	"github.com/yeisme/filevault/pkg/log"
	"github.com/yeisme/filevault/pkg/middleware"
	"github.com/yeisme/filevault/pkg/scheduler"
)

// HealthChecker 返回各依赖的可用性.
type HealthChecker interface {
	Health(ctx context.Context) map[string]error
}

// Deps 处理器依赖.
type Deps struct {
	Registry    *service.FileRegistry
	Content     *service.ContentAccessor
	Users       *service.UserService
	Auth        *service.AuthService
	Stats       *service.StatsService
	Health      HealthChecker
	Scheduler   *scheduler.Scheduler // 可为 nil
	TokenHeader string
}

// Handler 聚合所有处理器.
type Handler struct {
	Deps
}

// New 创建处理器.
func New(deps Deps) *Handler {
	return &Handler{Deps: deps}
}

// writeError 把业务错误映射为状态码与 {"error": msg}.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrNotAFile):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrMissingName), errors.Is(err, model.ErrMissingType),
		errors.Is(err, model.ErrMissingData), errors.Is(err, service.ErrInvalidData),
		errors.Is(err, service.ErrParentNotFound), errors.Is(err, service.ErrParentNotAFolder),
		errors.Is(err, service.ErrMissingEmail), errors.Is(err, service.ErrMissingPassword),
		errors.Is(err, service.ErrAlreadyExist):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		l := ctxPkg.WithTraceContext(c.Request.Context(), *log.Logger())
		l.Error().Err(err).Str("route", c.FullPath()).Msg("request failed")
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "Internal server error"})

		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

func userID(c *gin.Context) string {
	return middleware.UserID(c)
}
