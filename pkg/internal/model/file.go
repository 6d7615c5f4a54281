// Package model 定义文件记录、用户等持久化模型及其校验规则.
package model

import "time"

// FileType 文件记录类型.
type FileType string

const (
	FileTypeFolder FileType = "folder"
	FileTypeFile   FileType = "file"
	FileTypeImage  FileType = "image"
)

// RootParentID 根目录哨兵值.
const RootParentID = "0"

// Valid 类型是否在允许范围内.
func (t FileType) Valid() bool {
	switch t {
	case FileTypeFolder, FileTypeFile, FileTypeImage:
		return true
	default:
		return false
	}
}

// HasContent 非目录记录携带内容.
func (t FileType) HasContent() bool {
	return t != FileTypeFolder
}

// File 文件记录. UserID 与 ParentID 以字符串保存，ParentID 为 "0" 或父目录 ID.
type File struct {
	ID        ID       `gorm:"primaryKey;type:varchar(24)"                   json:"id"`
	UserID    string   `gorm:"size:24;not null;index:idx_files_owner_parent" json:"userId"`
	Name      string   `gorm:"size:512;not null"                             json:"name"`
	Type      FileType `gorm:"size:16;not null"                              json:"type"`
	ParentID  string   `gorm:"size:24;not null;index:idx_files_owner_parent" json:"parentId"`
	IsPublic  bool     `gorm:"not null;default:false"                        json:"isPublic"`
	LocalPath string   `gorm:"size:1024"                                     json:"-"`
	// 插入时间，SQL 后端按它保持插入顺序
	CreatedAt time.Time `gorm:"index" json:"-"`
}

// IsFolder 是否为目录.
func (f *File) IsFolder() bool {
	return f.Type == FileTypeFolder
}

// IsRoot 判断 parentID 是否指向根目录.
func IsRoot(parentID string) bool {
	return parentID == "" || parentID == RootParentID
}
