// Package cache 提供基于键值存储的泛型缓存实现.
//
// 缓存与会话令牌共用同一个 KV 后端，所有缓存键带前缀（默认 "cache:"），
// Clear 只清理带前缀的键，不会影响 auth_ 开头的会话.
//
// 基本用法:
//
//	c := cache.NewCache(kvStore)
//
//	err := cache.Set(ctx, c, "stats", stats, 10*time.Second)
//	stats, err := cache.Get[types.AppStats](ctx, c, "stats")
//
//	// 并发未命中时 getter 只执行一次
//	stats, err := cache.GetOrSet(ctx, c, "stats", func() (types.AppStats, error) {
//	    return svc.Stats(ctx)
//	}, 10*time.Second)
//
// 值使用 sonic 编码为 JSON. 未命中时 Get 返回包装了 kv.ErrNotFound 的错误.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"golang.org/x/sync/singleflight"

	"github.com/yeisme/filevault/pkg/internal/storage/kv"
)

// DefaultPrefix 缓存键默认前缀.
const DefaultPrefix = "cache:"

// Cache 基于KV存储的缓存实现.
type Cache struct {
	kvStore kv.KVStore
	prefix  string
	group   singleflight.Group
}

// Option 配置 Cache.
type Option func(*Cache)

// WithPrefix 设置键前缀.
func WithPrefix(prefix string) Option {
	return func(c *Cache) { c.prefix = prefix }
}

// NewCache 创建一个新的缓存实例.
func NewCache(kvStore kv.KVStore, opts ...Option) *Cache {
	c := &Cache{kvStore: kvStore, prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Cache) key(k string) string {
	return c.prefix + k
}

// Get 泛型获取缓存值.
func Get[T any](ctx context.Context, c *Cache, key string) (T, error) {
	var zero T

	data, err := c.kvStore.Get(ctx, c.key(key))
	if err != nil {
		return zero, err
	}

	var value T
	if err := sonic.Unmarshal(data, &value); err != nil {
		return zero, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return value, nil
}

// Set 泛型设置缓存值.
func Set[T any](ctx context.Context, c *Cache, key string, value T, ttl time.Duration) error {
	data, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	return c.kvStore.Set(ctx, c.key(key), data, ttl)
}

// Delete 删除缓存键.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.kvStore.Delete(ctx, c.key(key))
}

// Exists 检查缓存键是否存在.
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	return c.kvStore.Exists(ctx, c.key(key))
}

// GetOrSet 获取缓存值，未命中时调用 getter 并写回. 同一键的并发未命中合并为一次 getter 调用，
// 写回失败不影响返回值.
func GetOrSet[T any](ctx context.Context, c *Cache, key string, getter func() (T, error), ttl time.Duration) (T, error) {
	if value, err := Get[T](ctx, c, key); err == nil {
		return value, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		value, err := getter()
		if err != nil {
			return value, err
		}

		_ = Set(ctx, c, key, value, ttl)

		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return v.(T), nil
}

// Clear 删除所有带前缀的缓存键.
func (c *Cache) Clear(ctx context.Context) error {
	keys, err := c.kvStore.Keys(ctx, c.prefix+"*")
	if err != nil {
		return err
	}

	for _, key := range keys {
		if delErr := c.kvStore.Delete(ctx, key); delErr != nil {
			return delErr
		}
	}

	return nil
}
