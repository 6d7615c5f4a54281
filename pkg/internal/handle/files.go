package handle

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/filevault/pkg/internal/model"
	"github.com/yeisme/filevault/pkg/internal/service"
	"github.com/yeisme/filevault/pkg/internal/types"
)

// PostUpload 创建文件记录.
//
//	@Summary		创建文件记录
//	@Description	创建目录或文件，非目录需提供 base64 编码的 data
//	@Tags			文件
//	@Accept			json
//	@Produce		json
//	@Param			X-Token	header		string					true	"会话令牌"
//	@Param			body	body		types.CreateFileRequest	true	"文件记录"
//	@Success		201		{object}	types.FileResponse
//	@Failure		400		{object}	types.ErrorResponse
//	@Failure		401		{object}	types.ErrorResponse
//	@Router			/files [post]
func (h *Handler) PostUpload(c *gin.Context) {
	var req types.CreateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	f, err := h.Registry.Create(c.Request.Context(), userID(c), req.Input())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.NewFileResponse(f))
}

// GetShow 查询单条记录.
//
//	@Summary	查询文件记录
//	@Tags		文件
//	@Produce	json
//	@Param		X-Token	header		string	true	"会话令牌"
//	@Param		id		path		string	true	"记录 ID"
//	@Success	200		{object}	types.FileResponse
//	@Failure	401		{object}	types.ErrorResponse
//	@Failure	404		{object}	types.ErrorResponse
//	@Router		/files/{id} [get]
func (h *Handler) GetShow(c *gin.Context) {
	f, err := h.Registry.GetByID(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewFileResponse(f))
}

// GetIndex 分页列出当前用户的记录.
//
//	@Summary	列出文件记录
//	@Tags		文件
//	@Produce	json
//	@Param		X-Token		header		string	true	"会话令牌"
//	@Param		parentId	query		string	false	"父目录 ID，缺省或 0 为根目录"
//	@Param		page		query		int		false	"页码，从 0 开始，每页 20 条"
//	@Success	200			{array}		types.FileResponse
//	@Failure	401			{object}	types.ErrorResponse
//	@Router		/files [get]
func (h *Handler) GetIndex(c *gin.Context) {
	files, err := h.Registry.List(c.Request.Context(), userID(c),
		c.DefaultQuery("parentId", model.RootParentID), service.ParsePage(c.Query("page")))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewFileListResponse(files))
}

// PutPublish 将记录设为公开.
//
//	@Summary	发布文件
//	@Tags		文件
//	@Produce	json
//	@Param		X-Token	header		string	true	"会话令牌"
//	@Param		id		path		string	true	"记录 ID"
//	@Success	200		{object}	types.FileResponse
//	@Failure	401		{object}	types.ErrorResponse
//	@Failure	404		{object}	types.ErrorResponse
//	@Router		/files/{id}/publish [put]
func (h *Handler) PutPublish(c *gin.Context) {
	h.setPublic(c, true)
}

// PutUnpublish 取消公开.
//
//	@Summary	取消发布文件
//	@Tags		文件
//	@Produce	json
//	@Param		X-Token	header		string	true	"会话令牌"
//	@Param		id		path		string	true	"记录 ID"
//	@Success	200		{object}	types.FileResponse
//	@Failure	401		{object}	types.ErrorResponse
//	@Failure	404		{object}	types.ErrorResponse
//	@Router		/files/{id}/unpublish [put]
func (h *Handler) PutUnpublish(c *gin.Context) {
	h.setPublic(c, false)
}

func (h *Handler) setPublic(c *gin.Context, value bool) {
	f, err := h.Registry.SetPublic(c.Request.Context(), userID(c), c.Param("id"), value)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewFileResponse(f))
}

// GetFile 返回记录内容，Content-Type 由文件名推断.
//
//	@Summary	下载文件内容
//	@Tags		文件
//	@Produce	application/octet-stream
//	@Param		X-Token	header		string	true	"会话令牌"
//	@Param		id		path		string	true	"记录 ID"
//	@Success	200		{file}		file
//	@Failure	401		{object}	types.ErrorResponse
//	@Failure	404		{object}	types.ErrorResponse
//	@Router		/files/{id}/data [get]
func (h *Handler) GetFile(c *gin.Context) {
	content, err := h.Content.Fetch(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, content.ContentType, content.Data)
}
