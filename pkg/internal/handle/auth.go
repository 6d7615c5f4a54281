package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/filevault/pkg/internal/service"
	"github.com/yeisme/filevault/pkg/internal/types"
)

// GetConnect 使用 Basic 认证登录并签发令牌.
//
//	@Summary	登录
//	@Tags		认证
//	@Produce	json
//	@Param		Authorization	header		string	true	"Basic base64(email:password)"
//	@Success	200				{object}	types.TokenResponse
//	@Failure	401				{object}	types.ErrorResponse
//	@Router		/connect [get]
func (h *Handler) GetConnect(c *gin.Context) {
	email, password, ok := c.Request.BasicAuth()
	if !ok {
		writeError(c, service.ErrUnauthorized)
		return
	}

	token, err := h.Auth.Connect(c.Request.Context(), email, password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.TokenResponse{Token: token})
}

// GetDisconnect 注销令牌.
//
//	@Summary	登出
//	@Tags		认证
//	@Param		X-Token	header	string	true	"会话令牌"
//	@Success	204
//	@Failure	401	{object}	types.ErrorResponse
//	@Router		/disconnect [get]
func (h *Handler) GetDisconnect(c *gin.Context) {
	if err := h.Auth.Disconnect(c.Request.Context(), c.GetHeader(h.TokenHeader)); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
