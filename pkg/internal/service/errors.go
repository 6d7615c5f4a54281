// Package service 实现会话校验、文件记录注册、内容读取与统计等业务逻辑.
// 依赖在构造时显式注入，不从 context 中取存储客户端.
package service

import "errors"

// 业务错误，错误文本直接作为响应体 {"error": "<文本>"} 返回.
var (
	ErrUnauthorized     = errors.New("Unauthorized")
	ErrNotFound         = errors.New("Not found")
	ErrParentNotFound   = errors.New("Parent not found")
	ErrParentNotAFolder = errors.New("Parent is not a folder")
	ErrNotAFile         = errors.New("A folder doesn't have content")
	ErrInvalidData      = errors.New("Invalid data")
	ErrMissingEmail     = errors.New("Missing email")
	ErrMissingPassword  = errors.New("Missing password")
	ErrAlreadyExist     = errors.New("Already exist")
)
