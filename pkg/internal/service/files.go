package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	ctxPkg "github.com/yeisme/filevault/pkg/context"
	"github.com/yeisme/filevault/pkg/internal/model"
	"github.com/yeisme/filevault/pkg/internal/storage/blob"
	"github.com/yeisme/filevault/pkg/internal/storage/docstore"
	nlog "github.com/yeisme/filevault/pkg/log"
	"github.com/yeisme/filevault/pkg/metrics"
)

// FileRegistry 文件记录的创建、查询、列表与公开状态维护.
// 除 SetPublic（取决于 publish_scope）外，所有读写都按所有者过滤.
type FileRegistry struct {
	files     docstore.FileStore
	content   blob.ContentStore
	events    EventPublisher
	ownerOnly bool
	logger    zerolog.Logger
}

// RegistryOption 配置 FileRegistry.
type RegistryOption func(*FileRegistry)

// WithEvents 设置事件发布器，nil 表示不发布.
func WithEvents(p EventPublisher) RegistryOption {
	return func(r *FileRegistry) {
		if p != nil {
			r.events = p
		}
	}
}

// WithOwnerOnlyPublish 发布/取消发布时校验所有者.
func WithOwnerOnlyPublish(v bool) RegistryOption {
	return func(r *FileRegistry) { r.ownerOnly = v }
}

// NewFileRegistry 创建文件注册服务.
func NewFileRegistry(files docstore.FileStore, content blob.ContentStore, opts ...RegistryOption) *FileRegistry {
	r := &FileRegistry{
		files:   files,
		content: content,
		events:  NopEvents{},
		logger:  nlog.Component("files"),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Create 校验输入、检查父目录、同步写入内容后持久化记录.
func (r *FileRegistry) Create(ctx context.Context, userID string, in model.CreateInput) (*model.File, error) {
	if err := model.ValidateCreate(&in); err != nil {
		return nil, err
	}

	parentID := model.RootParentID
	if !model.IsRoot(in.ParentID) {
		parent, err := r.lookupParent(ctx, in.ParentID)
		if err != nil {
			return nil, err
		}

		parentID = parent.ID.String()
	}

	f := &model.File{
		UserID:   userID,
		Name:     in.Name,
		Type:     in.Type,
		ParentID: parentID,
		IsPublic: in.IsPublic,
	}

	size := 0

	if in.Type.HasContent() {
		data, err := decodeData(in.Data)
		if err != nil {
			return nil, ErrInvalidData
		}

		path, err := r.content.Put(ctx, data)
		if err != nil {
			return nil, fmt.Errorf("write content: %w", err)
		}

		f.LocalPath = path
		size = len(data)
	}

	if err := r.files.InsertFile(ctx, f); err != nil {
		if f.LocalPath != "" {
			if derr := r.content.Delete(ctx, f.LocalPath); derr != nil {
				l := ctxPkg.WithTraceContext(ctx, r.logger)
				l.Warn().Err(derr).Str("path", f.LocalPath).Msg("remove orphaned content failed")
			}
		}

		return nil, fmt.Errorf("insert file: %w", err)
	}

	metrics.FilesCreated.WithLabelValues(string(f.Type)).Inc()

	if err := r.events.FileCreated(ctx, f, size); err != nil {
		l := ctxPkg.WithTraceContext(ctx, r.logger)
		l.Warn().Err(err).Str("file_id", f.ID.String()).Msg("publish file created event failed")
	}

	return f, nil
}

// GetByID 按 ID 查询当前用户的记录. ID 非法或记录不属于该用户时返回 ErrNotFound.
func (r *FileRegistry) GetByID(ctx context.Context, userID, fileID string) (*model.File, error) {
	id, err := model.ParseID(fileID)
	if err != nil {
		return nil, ErrNotFound
	}

	return r.find(ctx, docstore.ByID(id).Owned(userID))
}

// GetPublic 按 ID 查询公开记录，不校验所有者.
func (r *FileRegistry) GetPublic(ctx context.Context, fileID string) (*model.File, error) {
	id, err := model.ParseID(fileID)
	if err != nil {
		return nil, ErrNotFound
	}

	f, err := r.find(ctx, docstore.ByID(id))
	if err != nil {
		return nil, err
	}

	if !f.IsPublic {
		return nil, ErrNotFound
	}

	return f, nil
}

// List 返回当前用户第 page 页的记录. parentID 为根目录时只按所有者过滤，
// 否则按规范化后的 ID 过滤，无法解析的 ID 返回空列表.
func (r *FileRegistry) List(ctx context.Context, userID, parentID string, page int) ([]model.File, error) {
	filter := docstore.FileFilter{}.Owned(userID)
	if !model.IsRoot(parentID) {
		id, err := model.ParseID(parentID)
		if err != nil {
			return []model.File{}, nil
		}

		filter = filter.InParent(id.String())
	}

	skip, limit := PageWindow(page)

	files, err := r.files.FindFiles(ctx, filter, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	if files == nil {
		files = []model.File{}
	}

	return files, nil
}

// SetPublic 设置公开标记并返回更新后的记录.
func (r *FileRegistry) SetPublic(ctx context.Context, userID, fileID string, value bool) (*model.File, error) {
	id, err := model.ParseID(fileID)
	if err != nil {
		return nil, ErrNotFound
	}

	filter := docstore.ByID(id)
	if r.ownerOnly {
		filter = filter.Owned(userID)
	}

	f, err := r.files.SetFilePublic(ctx, filter, value)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("set public: %w", err)
	}

	if err := r.events.FileVisibility(ctx, f, userID); err != nil {
		l := ctxPkg.WithTraceContext(ctx, r.logger)
		l.Warn().Err(err).Str("file_id", f.ID.String()).Msg("publish visibility event failed")
	}

	return f, nil
}

func (r *FileRegistry) lookupParent(ctx context.Context, parentID string) (*model.File, error) {
	id, err := model.ParseID(parentID)
	if err != nil {
		return nil, ErrParentNotFound
	}

	parent, err := r.files.FindFile(ctx, docstore.ByID(id))
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrParentNotFound
		}

		return nil, fmt.Errorf("lookup parent: %w", err)
	}

	if !parent.IsFolder() {
		return nil, ErrParentNotAFolder
	}

	return parent, nil
}

func (r *FileRegistry) find(ctx context.Context, filter docstore.FileFilter) (*model.File, error) {
	f, err := r.files.FindFile(ctx, filter)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("find file: %w", err)
	}

	return f, nil
}

// decodeData 解码 base64 内容，兼容无填充的写法.
func decodeData(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}

	return base64.RawStdEncoding.DecodeString(s)
}
