package kv

import (
	"context"
	"fmt"
	"path"
	"sync"
	"time"
)

// memEntry 存放编码后的值，以指针形式入 map 以便 CompareAndDelete 比较.
type memEntry struct {
	raw []byte
}

// MemoryKV 基于 sync.Map 的内存 KV 实现，TTL 通过值包装惰性过期.
type MemoryKV struct {
	data sync.Map // 并发安全的 map
	now  func() time.Time
}

// NewMemoryKV 创建内存 KV 实例.
func NewMemoryKV(ctx context.Context, config any) (KVStore, error) {
	// 内存实现不需要特殊配置
	return &MemoryKV{now: time.Now}, nil
}

// load 读取并解包，过期时顺带删除.
func (m *MemoryKV) load(key string) ([]byte, bool, error) {
	value, exists := m.data.Load(key)
	if !exists {
		return nil, false, nil
	}

	entry, ok := value.(*memEntry)
	if !ok {
		return nil, false, fmt.Errorf("invalid value type for key: %s", key)
	}

	val, expired, _, err := decodeWithTTL(entry.raw, m.now())
	if err != nil {
		return nil, false, err
	}

	if expired {
		m.data.CompareAndDelete(key, value)

		return nil, false, nil
	}

	return val, true, nil
}

// Get 获取键的值.
func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	val, ok, err := m.load(key)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, notFound(key)
	}

	// 返回副本
	result := make([]byte, len(val))
	copy(result, val)

	return result, nil
}

// Set 设置键的值.
func (m *MemoryKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	data := make([]byte, len(value))
	copy(data, value)

	encoded, _, err := encodeWithTTLAt(data, ttl, m.now())
	if err != nil {
		return err
	}

	m.data.Store(key, &memEntry{raw: encoded})

	return nil
}

// Delete 删除键.
func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	m.data.Delete(key)
	return nil
}

// Exists 检查键是否存在.
func (m *MemoryKV) Exists(ctx context.Context, key string) (bool, error) {
	_, ok, err := m.load(key)
	return ok, err
}

// Keys 获取匹配 glob 模式的键，空模式返回全部.
func (m *MemoryKV) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys := make([]string, 0)

	m.data.Range(func(key, value any) bool {
		k, ok := key.(string)
		if !ok {
			return true // 继续遍历
		}

		if pattern != "" && pattern != "*" {
			if matched, err := path.Match(pattern, k); err != nil || !matched {
				return true
			}
		}

		if _, live, _ := m.load(k); live {
			keys = append(keys, k)
		}

		return true
	})

	return keys, nil
}

// Ping 内存实现总是可用.
func (m *MemoryKV) Ping(ctx context.Context) error {
	return nil
}

// Close 关闭存储（内存实现无需操作）.
func (m *MemoryKV) Close() error {
	return nil
}

func init() {
	RegisterKVFactory(KVTypeMemory, NewMemoryKV)
}

// NewMemoryKVWithClock 创建使用指定时钟的内存 KV，测试中用于推进时间.
func NewMemoryKVWithClock(now func() time.Time) *MemoryKV {
	return &MemoryKV{now: now}
}
