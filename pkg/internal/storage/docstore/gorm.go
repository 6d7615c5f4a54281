package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yeisme/filevault/pkg/internal/model"
)

// GormStore 基于 GORM 的实现，适用于 PostgreSQL、MySQL、SQLite.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

// NewGormStore 创建存储并迁移表结构.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&model.File{}, &model.User{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &GormStore{db: db}, nil
}

// Name 返回后端名称.
func (s *GormStore) Name() string {
	return "gorm:" + s.db.Name()
}

func (s *GormStore) scoped(ctx context.Context, filter FileFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&model.File{})
	if filter.ID != nil {
		q = q.Where("id = ?", *filter.ID)
	}

	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}

	if filter.ParentID != nil {
		q = q.Where("parent_id = ?", *filter.ParentID)
	}

	return q
}

// InsertFile 插入文件记录.
func (s *GormStore) InsertFile(ctx context.Context, f *model.File) error {
	if f.ID.IsZero() {
		f.ID = model.NewID()
	}

	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}

	if err := s.db.WithContext(ctx).Create(f).Error; err != nil {
		return fmt.Errorf("insert file: %w", translate(err))
	}

	return nil
}

// FindFile 查找单条文件记录.
func (s *GormStore) FindFile(ctx context.Context, filter FileFilter) (*model.File, error) {
	var f model.File
	if err := s.scoped(ctx, filter).Take(&f).Error; err != nil {
		return nil, translate(err)
	}

	return &f, nil
}

// FindFiles 分页查询文件记录.
func (s *GormStore) FindFiles(ctx context.Context, filter FileFilter, skip, limit int) ([]model.File, error) {
	files := make([]model.File, 0, limit)

	err := s.scoped(ctx, filter).
		Order("created_at ASC").
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&files).Error
	if err != nil {
		return nil, fmt.Errorf("find files: %w", err)
	}

	return files, nil
}

// SetFilePublic 更新公开标记.
func (s *GormStore) SetFilePublic(ctx context.Context, filter FileFilter, isPublic bool) (*model.File, error) {
	f, err := s.FindFile(ctx, filter)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(&model.File{}).
		Where("id = ?", f.ID).
		Update("is_public", isPublic).Error
	if err != nil {
		return nil, fmt.Errorf("update file: %w", err)
	}

	f.IsPublic = isPublic

	return f, nil
}

// CountFiles 统计文件记录数.
func (s *GormStore) CountFiles(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.File{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count files: %w", err)
	}

	return n, nil
}

// InsertUser 插入用户.
func (s *GormStore) InsertUser(ctx context.Context, u *model.User) error {
	if u.ID.IsZero() {
		u.ID = model.NewID()
	}

	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("insert user: %w", translate(err))
	}

	return nil
}

// FindUserByEmail 按邮箱查找用户.
func (s *GormStore) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).Take(&u).Error; err != nil {
		return nil, translate(err)
	}

	return &u, nil
}

// FindUserByID 按 ID 查找用户.
func (s *GormStore) FindUserByID(ctx context.Context, id model.ID) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&u).Error; err != nil {
		return nil, translate(err)
	}

	return &u, nil
}

// CountUsers 统计用户数.
func (s *GormStore) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}

	return n, nil
}

// Ping 检查数据库连接.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

// Close 关闭连接池.
func (s *GormStore) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// translate 把 GORM 错误映射为包内哨兵错误.
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	default:
		return err
	}
}

// isUniqueViolation 兜底识别未被方言翻译的唯一约束错误.
func isUniqueViolation(err error) bool {
	msg := err.Error()

	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}
