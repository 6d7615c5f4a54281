package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/yeisme/filevault/pkg/internal/storage/docstore"
	"github.com/yeisme/filevault/pkg/internal/storage/kv"
	"github.com/yeisme/filevault/pkg/internal/types"
)

// StatsService 依赖存活状态与记录计数.
type StatsService struct {
	docs docstore.Store
	kv   kv.KVStore
}

// NewStatsService 创建统计服务.
func NewStatsService(docs docstore.Store, store kv.KVStore) *StatsService {
	return &StatsService{docs: docs, kv: store}
}

// Status 返回会话存储与文档存储是否可用.
func (s *StatsService) Status(ctx context.Context) types.AppStatus {
	return types.AppStatus{
		Redis: s.kv.Ping(ctx) == nil,
		DB:    s.docs.Ping(ctx) == nil,
	}
}

// Stats 并发统计用户数与文件数.
func (s *StatsService) Stats(ctx context.Context) (types.AppStats, error) {
	var out types.AppStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.docs.CountUsers(gctx)
		out.Users = n

		return err
	})
	g.Go(func() error {
		n, err := s.docs.CountFiles(gctx)
		out.Files = n

		return err
	})

	if err := g.Wait(); err != nil {
		return types.AppStats{}, err
	}

	return out, nil
}
