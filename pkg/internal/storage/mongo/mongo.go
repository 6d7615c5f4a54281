// Package mongo 负责创建 MongoDB 客户端，供文档存储默认后端使用.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/yeisme/filevault/pkg/configs"
	nlog "github.com/yeisme/filevault/pkg/log"
)

const connectTimeout = 10 * time.Second

// Client 包装 MongoDB 客户端与目标数据库.
type Client struct {
	*mongo.Client
	database string
}

// New 连接 MongoDB 并检查主节点可用性.
func New(ctx context.Context, cfg *configs.DBConfig) (*Client, error) {
	opts := options.Client().
		ApplyURI(cfg.GetMongoURI()).
		SetAppName("filevault").
		SetConnectTimeout(connectTimeout)

	if cfg.MaxOpenConns > 0 {
		opts.SetMaxPoolSize(uint64(cfg.MaxOpenConns))
	}

	cli, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := cli.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	nlog.Logger().Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Msg("MongoDB 连接成功")

	return &Client{Client: cli, database: cfg.Database}, nil
}

// Database 返回配置的数据库.
func (c *Client) Database() *mongo.Database {
	return c.Client.Database(c.database)
}
