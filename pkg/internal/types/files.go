package types

import "github.com/yeisme/filevault/pkg/internal/model"

// CreateFileRequest 创建文件记录请求，data 为 base64 编码内容.
type CreateFileRequest struct {
	Name     LooseString `json:"name"     swaggertype:"string"`
	Type     LooseString `json:"type"     swaggertype:"string"  enums:"folder,file,image"`
	ParentID ParentRef   `json:"parentId" swaggertype:"string"`
	IsPublic LooseBool   `json:"isPublic" swaggertype:"boolean"`
	Data     LooseString `json:"data"     swaggertype:"string"`
}

// Input 转换为领域输入.
func (r *CreateFileRequest) Input() model.CreateInput {
	return model.CreateInput{
		Name:     string(r.Name),
		Type:     model.FileType(r.Type),
		ParentID: r.ParentID.String(),
		IsPublic: bool(r.IsPublic),
		Data:     string(r.Data),
	}
}

// FileResponse 文件记录响应.
type FileResponse struct {
	ID       string         `json:"id"`
	UserID   string         `json:"userId"`
	Name     string         `json:"name"`
	Type     model.FileType `json:"type"`
	IsPublic bool           `json:"isPublic"`
	ParentID ParentRef      `json:"parentId"`
}

// NewFileResponse 由记录构造响应.
func NewFileResponse(f *model.File) FileResponse {
	return FileResponse{
		ID:       f.ID.String(),
		UserID:   f.UserID,
		Name:     f.Name,
		Type:     f.Type,
		IsPublic: f.IsPublic,
		ParentID: ParentRef(f.ParentID),
	}
}

// NewFileListResponse 由记录列表构造响应，空列表编码为 [].
func NewFileListResponse(files []model.File) []FileResponse {
	out := make([]FileResponse, 0, len(files))
	for i := range files {
		out = append(out, NewFileResponse(&files[i]))
	}

	return out
}
