// Package storage 按配置显式构建文档存储、会话 KV、内容存储与消息队列客户端，
// 并统一提供健康检查与关闭.
//
// Example:
//
//	mgr, err := storage.New(ctx, configs.GetConfig())
//	if err != nil {
//	    // 处理错误
//	}
//	defer mgr.Close(context.Background())
//
//	alive := mgr.Health(ctx)
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/yeisme/filevault/pkg/configs"
	"github.com/yeisme/filevault/pkg/internal/storage/blob"
	dbc "github.com/yeisme/filevault/pkg/internal/storage/db"
	"github.com/yeisme/filevault/pkg/internal/storage/docstore"
	"github.com/yeisme/filevault/pkg/internal/storage/kv"
	mongoc "github.com/yeisme/filevault/pkg/internal/storage/mongo"
	mqc "github.com/yeisme/filevault/pkg/internal/storage/mq"
	nlog "github.com/yeisme/filevault/pkg/log"
	"github.com/yeisme/filevault/pkg/metrics"
)

// Manager 聚合所有存储资源.
type Manager struct {
	Docs    docstore.Store
	KV      kv.KVStore
	Content blob.ContentStore
	// MQ 仅在 events.enabled 时初始化，否则为 nil
	MQ *mqc.Client
}

// New 按配置初始化所有存储. 任一必需组件失败时关闭已创建的资源并返回错误.
func New(ctx context.Context, cfg *configs.AppConfig) (*Manager, error) {
	m := &Manager{}

	docs, err := NewDocStore(ctx, &cfg.DB, cfg.Metrics.Enabled)
	if err != nil {
		return nil, err
	}

	m.Docs = docs

	if m.KV, err = kv.New(ctx, &cfg.KV); err != nil {
		m.Close(ctx)
		return nil, fmt.Errorf("init kv (%s): %w", cfg.KV.Type, err)
	}

	if m.Content, err = blob.New(ctx, &cfg.Content); err != nil {
		m.Close(ctx)
		return nil, fmt.Errorf("init content store (%s): %w", cfg.Content.Type, err)
	}

	if cfg.Events.Enabled {
		if m.MQ, err = mqc.New(ctx, &cfg.MQ, metrics.Registerer(cfg.Metrics)); err != nil {
			m.Close(ctx)
			return nil, err
		}
	}

	nlog.Logger().Info().
		Str("docs", m.Docs.Name()).
		Str("kv", cfg.KV.Type).
		Str("content", m.Content.Name()).
		Bool("events", m.MQ != nil).
		Msg("storage manager initialized")

	return m, nil
}

// NewDocStore 创建文档存储：mongodb 走 MongoDB，其余类型走 GORM.
func NewDocStore(ctx context.Context, cfg *configs.DBConfig, enableMetrics bool) (docstore.Store, error) {
	if cfg.IsMongo() {
		cli, err := mongoc.New(ctx, cfg)
		if err != nil {
			return nil, err
		}

		store, err := docstore.NewMongoStore(ctx, cli.Database())
		if err != nil {
			_ = cli.Disconnect(ctx)
			return nil, err
		}

		return store, nil
	}

	cli, err := dbc.New(ctx, cfg, enableMetrics)
	if err != nil {
		return nil, err
	}

	store, err := docstore.NewGormStore(cli.DB)
	if err != nil {
		_ = cli.Close()
		return nil, err
	}

	return store, nil
}

// Health 各组件可用性，键为组件名.
func (m *Manager) Health(ctx context.Context) map[string]error {
	res := map[string]error{}

	if m.Docs != nil {
		res["db"] = m.Docs.Ping(ctx)
	}

	if m.KV != nil {
		res["kv"] = m.KV.Ping(ctx)
	}

	if m.Content != nil {
		res["content"] = m.Content.Ping(ctx)
	}

	if m.MQ != nil {
		res["mq"] = m.MQ.Ping(ctx)
	}

	return res
}

// Close 关闭所有已初始化的资源.
func (m *Manager) Close(ctx context.Context) error {
	var errs []error

	if m.MQ != nil {
		errs = append(errs, m.MQ.Close())
	}

	if m.KV != nil {
		errs = append(errs, m.KV.Close())
	}

	if m.Docs != nil {
		errs = append(errs, m.Docs.Close(ctx))
	}

	return errors.Join(errs...)
}
