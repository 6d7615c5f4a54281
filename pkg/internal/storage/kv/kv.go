// Package kv 提供会话令牌与响应缓存所用的键值存储接口和实现.
package kv

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/yeisme/filevault/pkg/configs"
)

// ErrNotFound 键不存在或已过期.
var ErrNotFound = errors.New("kv: key not found")

// KVStore 定义键值存储接口.
type KVStore interface {
	// Get 获取键的值，不存在时返回包装了 ErrNotFound 的错误.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set 设置键的值，ttl<=0 表示永不过期.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete 删除键.
	Delete(ctx context.Context, key string) error
	// Exists 检查键是否存在.
	Exists(ctx context.Context, key string) (bool, error)
	// Keys 获取匹配模式的键（用于调试）.
	Keys(ctx context.Context, pattern string) ([]string, error)
	// Ping 检查后端是否可用.
	Ping(ctx context.Context) error
	// Close 关闭存储连接.
	Close() error
}

// KVType 键值存储类型.
type KVType string

const (
	KVTypeMemory KVType = configs.KVTypeMemory
	KVTypeRedis  KVType = configs.KVTypeRedis
	KVTypeNATS   KVType = configs.KVTypeNATS
)

// KVFactory 定义创建 KVStore 的工厂函数类型.
type KVFactory func(ctx context.Context, config any) (KVStore, error)

// kvFactories 存储 KV 类型到工厂的映射.
var kvFactories = make(map[KVType]KVFactory)

// RegisterKVFactory 注册 KV 工厂函数.
func RegisterKVFactory(kvType KVType, factory KVFactory) {
	kvFactories[kvType] = factory
}

// GetRegisteredKVTypes 返回已注册的 KV 类型列表.
func GetRegisteredKVTypes() []KVType {
	types := make([]KVType, 0, len(kvFactories))
	for kvType := range kvFactories {
		types = append(types, kvType)
	}

	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	return types
}

// NewKVStore 根据类型创建 KVStore 实例.
func NewKVStore(ctx context.Context, kvType KVType, config any) (KVStore, error) {
	factory, exists := kvFactories[kvType]
	if !exists {
		return nil, fmt.Errorf("unsupported KV type: %s", kvType)
	}

	return factory(ctx, config)
}

// New 按 KV 配置创建对应后端.
func New(ctx context.Context, cfg *configs.KVConfig) (KVStore, error) {
	var sub any

	switch KVType(cfg.Type) {
	case KVTypeRedis:
		sub = &cfg.Redis
	case KVTypeNATS:
		sub = &cfg.NATS
	}

	return NewKVStore(ctx, KVType(cfg.Type), sub)
}

// IsNotFound 判断错误是否表示键不存在.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func notFound(key string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, key)
}
