package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStatus 会话存储与文档存储是否可用.
//
//	@Summary	服务状态
//	@Tags		统计
//	@Produce	json
//	@Success	200	{object}	types.AppStatus
//	@Router		/status [get]
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.Stats.Status(c.Request.Context()))
}

// GetStats 用户与文件记录数量.
//
//	@Summary	记录数量
//	@Tags		统计
//	@Produce	json
//	@Success	200	{object}	types.AppStats
//	@Failure	500	{object}	types.ErrorResponse
//	@Router		/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.Stats.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
