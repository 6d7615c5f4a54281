package kv_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yeisme/filevault/pkg/configs"
	"github.com/yeisme/filevault/pkg/internal/storage/kv"
)

// TestMemoryKVTTL 测试内存 KV 按 TTL 惰性过期.
func TestMemoryKVTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := kv.NewMemoryKVWithClock(func() time.Time { return now })

	if err := store.Set(ctx, "auth_abc", []byte("user-1"), time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := store.Get(ctx, "auth_abc")
	if err != nil {
		t.Fatalf("get before expiry: %v", err)
	}

	if string(got) != "user-1" {
		t.Fatalf("unexpected value %q", got)
	}

	now = now.Add(time.Hour)

	if _, err := store.Get(ctx, "auth_abc"); !kv.IsNotFound(err) {
		t.Fatalf("expected not found after expiry, got %v", err)
	}

	ok, err := store.Exists(ctx, "auth_abc")
	if err != nil || ok {
		t.Fatalf("expected key gone, ok=%v err=%v", ok, err)
	}
}

// TestMemoryKVNoTTL 测试 ttl<=0 的键不会过期.
func TestMemoryKVNoTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	store := kv.NewMemoryKVWithClock(func() time.Time { return now })

	if err := store.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	now = now.Add(365 * 24 * time.Hour)

	if _, err := store.Get(ctx, "k"); err != nil {
		t.Fatalf("expected value to persist, got %v", err)
	}
}

// TestMemoryKVMissingKey 测试缺失键返回 ErrNotFound.
func TestMemoryKVMissingKey(t *testing.T) {
	store, err := kv.NewKVStore(context.Background(), kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}

	_, err = store.Get(context.Background(), "missing")
	if !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// TestMemoryKVKeysPattern 测试 Keys 的 glob 匹配与删除.
func TestMemoryKVKeysPattern(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryKVWithClock(time.Now)

	for _, k := range []string{"auth_1", "auth_2", "cache:stats"} {
		if err := store.Set(ctx, k, []byte("x"), 0); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}

	keys, err := store.Keys(ctx, "auth_*")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}

	if len(keys) != 2 {
		t.Fatalf("expected 2 auth keys, got %v", keys)
	}

	if err := store.Delete(ctx, "auth_1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	keys, _ = store.Keys(ctx, "")
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys after delete, got %v", keys)
	}
}

// TestNewFromConfig 测试按配置选择后端，未知类型报错.
func TestNewFromConfig(t *testing.T) {
	store, err := kv.New(context.Background(), &configs.KVConfig{Type: configs.KVTypeMemory})
	if err != nil {
		t.Fatalf("memory kv from config: %v", err)
	}

	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}

	if _, err := kv.New(context.Background(), &configs.KVConfig{Type: "etcd"}); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}

// TestMemoryKVExpiredKeyEvicted 测试过期键在读取与遍历时被移除，并可重新写入.
func TestMemoryKVExpiredKeyEvicted(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := kv.NewMemoryKVWithClock(func() time.Time { return now })

	for _, k := range []string{"auth_a", "auth_b"} {
		if err := store.Set(ctx, k, []byte("user-1"), time.Minute); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}

	now = now.Add(48 * time.Hour)

	keys, err := store.Keys(ctx, "auth_*")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}

	if len(keys) != 0 {
		t.Fatalf("expected expired keys to be skipped, got %v", keys)
	}

	if _, err := store.Get(ctx, "auth_a"); !kv.IsNotFound(err) {
		t.Fatalf("expected not found after expiry, got %v", err)
	}

	if err := store.Set(ctx, "auth_a", []byte("user-2"), time.Minute); err != nil {
		t.Fatalf("set after expiry: %v", err)
	}

	got, err := store.Get(ctx, "auth_a")
	if err != nil || string(got) != "user-2" {
		t.Fatalf("expected fresh value, got %q err=%v", got, err)
	}
}
