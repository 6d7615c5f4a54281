package service

import (
	"context"
	"errors"
	"mime"
	"path/filepath"

	"github.com/rs/zerolog"

	ctxPkg "github.com/yeisme/filevault/pkg/context"
	"github.com/yeisme/filevault/pkg/internal/model"
	"github.com/yeisme/filevault/pkg/internal/storage/blob"
	nlog "github.com/yeisme/filevault/pkg/log"
	"github.com/yeisme/filevault/pkg/metrics"
)

// DefaultContentType 无法按扩展名推断时使用的类型.
const DefaultContentType = "application/octet-stream"

// Content 读取到的文件内容.
type Content struct {
	Name        string
	ContentType string
	Data        []byte
}

// ContentAccessor 读取已授权记录的内容. 对外只暴露 ErrNotFound 与 ErrNotAFile，
// 内部错误只出现在日志与指标中.
type ContentAccessor struct {
	registry   *FileRegistry
	content    blob.ContentStore
	publicRead bool
	logger     zerolog.Logger
}

// NewContentAccessor 创建内容读取服务. publicRead 为 true 时允许读取他人的公开记录.
func NewContentAccessor(registry *FileRegistry, content blob.ContentStore, publicRead bool) *ContentAccessor {
	return &ContentAccessor{
		registry:   registry,
		content:    content,
		publicRead: publicRead,
		logger:     nlog.Component("content"),
	}
}

// Fetch 返回记录内容与推断的 Content-Type.
func (a *ContentAccessor) Fetch(ctx context.Context, userID, fileID string) (*Content, error) {
	l := ctxPkg.WithTraceContext(ctx, a.logger).With().Str("file_id", fileID).Logger()

	f, err := a.resolve(ctx, userID, fileID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, a.internal(l, err, "lookup file")
		}

		return nil, ErrNotFound
	}

	if f.IsFolder() {
		return nil, ErrNotAFile
	}

	if f.LocalPath == "" {
		return nil, a.missing(l, "record has no content path")
	}

	ok, err := a.content.Exists(ctx, f.LocalPath)
	if err != nil {
		return nil, a.internal(l, err, "stat content")
	}

	if !ok {
		return nil, a.missing(l, "content path does not exist")
	}

	data, err := a.content.ReadAll(ctx, f.LocalPath)
	if err != nil {
		return nil, a.internal(l, err, "read content")
	}

	metrics.ContentFetch.WithLabelValues(metrics.ResultOK).Inc()

	return &Content{
		Name:        f.Name,
		ContentType: ContentTypeFor(f.Name),
		Data:        data,
	}, nil
}

func (a *ContentAccessor) resolve(ctx context.Context, userID, fileID string) (*model.File, error) {
	f, err := a.registry.GetByID(ctx, userID, fileID)
	if err == nil || !a.publicRead || !errors.Is(err, ErrNotFound) {
		return f, err
	}

	return a.registry.GetPublic(ctx, fileID)
}

func (a *ContentAccessor) missing(l zerolog.Logger, msg string) error {
	metrics.ContentFetch.WithLabelValues(metrics.ResultMissing).Inc()
	l.Warn().Msg(msg)

	return ErrNotFound
}

func (a *ContentAccessor) internal(l zerolog.Logger, err error, msg string) error {
	metrics.ContentFetch.WithLabelValues(metrics.ResultInternal).Inc()
	l.Error().Err(err).Msg(msg)

	return ErrNotFound
}

// ContentTypeFor 按文件扩展名推断 Content-Type.
func ContentTypeFor(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}

	return DefaultContentType
}
