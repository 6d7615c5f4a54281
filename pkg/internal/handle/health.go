package handle

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const timeout = 2 * time.Second

// GetHealth 单个依赖的健康检查，组件未启用时返回 503.
//
//	@Summary	依赖健康检查
//	@Tags		健康检查
//	@Produce	json
//	@Param		component	path		string	true	"db | kv | content | mq"
//	@Success	200			{object}	map[string]string
//	@Failure	503			{object}	map[string]string
//	@Router		/api/v1/health/{component} [get]
func (h *Handler) GetHealth(c *gin.Context) {
	component := c.Param("component")

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	err, ok := h.Deps.Health.Health(ctx)[component]
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": component, "status": "unhealthy", "error": component + " not initialized"})
		return
	}

	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": component, "status": "unhealthy", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"component": component, "status": "ok"})
}
