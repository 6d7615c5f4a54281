package handle

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/filevault/pkg/internal/types"
)

// PostNew 注册用户.
//
//	@Summary	注册用户
//	@Tags		用户
//	@Accept		json
//	@Produce	json
//	@Param		body	body		types.CreateUserRequest	true	"邮箱与密码"
//	@Success	201		{object}	types.UserResponse
//	@Failure	400		{object}	types.ErrorResponse
//	@Router		/users [post]
func (h *Handler) PostNew(c *gin.Context) {
	var req types.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	u, err := h.Users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.UserResponse{ID: u.ID.String(), Email: u.Email})
}

// GetMe 返回当前用户.
//
//	@Summary	当前用户
//	@Tags		用户
//	@Produce	json
//	@Param		X-Token	header		string	true	"会话令牌"
//	@Success	200		{object}	types.UserResponse
//	@Failure	401		{object}	types.ErrorResponse
//	@Router		/users/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	u, err := h.Auth.Me(c.Request.Context(), userID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.UserResponse{ID: u.ID.String(), Email: u.Email})
}
