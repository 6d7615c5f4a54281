package model

import "errors"

// 创建校验错误，错误文本直接返回给客户端.
var (
	ErrMissingName = errors.New("Missing name")
	ErrMissingType = errors.New("Missing type")
	ErrMissingData = errors.New("Missing data")
)

// CreateInput 创建文件记录的输入. Data 为 base64 编码的内容.
type CreateInput struct {
	Name     string
	Type     FileType
	ParentID string
	IsPublic bool
	Data     string
}

// ValidateCreate 依次校验 name、type、data，返回第一个失败项.
// 通过时 ParentID 为空会被规范化为根目录.
func ValidateCreate(in *CreateInput) error {
	if in.Name == "" {
		return ErrMissingName
	}

	if !in.Type.Valid() {
		return ErrMissingType
	}

	if in.Data == "" && in.Type.HasContent() {
		return ErrMissingData
	}

	if IsRoot(in.ParentID) {
		in.ParentID = RootParentID
	}

	return nil
}
