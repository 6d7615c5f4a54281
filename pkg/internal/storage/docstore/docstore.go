// Package docstore 定义文件记录与用户的持久化接口，提供 MongoDB 与 GORM 两种实现.
package docstore

import (
	"context"
	"errors"

	"github.com/yeisme/filevault/pkg/internal/model"
)

var (
	// ErrNotFound 记录不存在.
	ErrNotFound = errors.New("docstore: not found")
	// ErrDuplicate 唯一约束冲突.
	ErrDuplicate = errors.New("docstore: duplicate key")
)

// FileFilter 文件查询条件，零值字段不参与过滤.
type FileFilter struct {
	ID       *model.ID
	UserID   string
	ParentID *string
}

// ByID 按 ID 过滤.
func ByID(id model.ID) FileFilter {
	return FileFilter{ID: &id}
}

// Owned 追加所有者条件.
func (f FileFilter) Owned(userID string) FileFilter {
	f.UserID = userID
	return f
}

// InParent 追加父目录条件.
func (f FileFilter) InParent(parentID string) FileFilter {
	f.ParentID = &parentID
	return f
}

// FileStore 文件记录存储.
type FileStore interface {
	// InsertFile 插入记录，ID 为零值时生成新 ID.
	InsertFile(ctx context.Context, f *model.File) error
	// FindFile 查找单条记录，不存在返回 ErrNotFound.
	FindFile(ctx context.Context, filter FileFilter) (*model.File, error)
	// FindFiles 按插入顺序分页查询.
	FindFiles(ctx context.Context, filter FileFilter, skip, limit int) ([]model.File, error)
	// SetFilePublic 更新公开标记并返回更新后的记录.
	SetFilePublic(ctx context.Context, filter FileFilter, isPublic bool) (*model.File, error)
	// CountFiles 记录总数.
	CountFiles(ctx context.Context) (int64, error)
}

// UserStore 用户存储.
type UserStore interface {
	// InsertUser 插入用户，邮箱重复返回 ErrDuplicate.
	InsertUser(ctx context.Context, u *model.User) error
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindUserByID(ctx context.Context, id model.ID) (*model.User, error)
	CountUsers(ctx context.Context) (int64, error)
}

// Store 文档存储.
type Store interface {
	FileStore
	UserStore
	// Name 后端名称，用于日志与健康检查.
	Name() string
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
