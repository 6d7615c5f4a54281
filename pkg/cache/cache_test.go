package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/filevault/pkg/cache"
	"github.com/yeisme/filevault/pkg/internal/storage/kv"
)

// testStats 测试用的缓存值.
type testStats struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

func newStore() kv.KVStore {
	return kv.NewMemoryKVWithClock(time.Now)
}

// TestCache_GetSet 测试 Get/Set 与前缀.
func TestCache_GetSet(t *testing.T) {
	store := newStore()
	c := cache.NewCache(store)
	ctx := context.Background()

	_, err := cache.Get[testStats](ctx, c, "stats")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, cache.Set(ctx, c, "stats", testStats{Users: 1, Files: 2}, 0))

	got, err := cache.Get[testStats](ctx, c, "stats")
	require.NoError(t, err)
	assert.Equal(t, testStats{Users: 1, Files: 2}, got)

	ok, err := store.Exists(ctx, cache.DefaultPrefix+"stats")
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestCache_DeleteExists 测试 Delete 与 Exists.
func TestCache_DeleteExists(t *testing.T) {
	c := cache.NewCache(newStore(), cache.WithPrefix("t:"))
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, c, "k", "v", 0))

	ok, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.Delete(ctx, "k"))

	ok, err = c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestGetOrSet 测试 GetOrSet 只调用一次 getter.
func TestGetOrSet(t *testing.T) {
	c := cache.NewCache(newStore())
	ctx := context.Background()

	var calls atomic.Int32

	getter := func() (testStats, error) {
		calls.Add(1)
		time.Sleep(10 * time.Millisecond)

		return testStats{Users: 5}, nil
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			v, err := cache.GetOrSet(ctx, c, "stats", getter, time.Minute)
			assert.NoError(t, err)
			assert.Equal(t, int64(5), v.Users)
		}()
	}

	wg.Wait()

	_, err := cache.GetOrSet(ctx, c, "stats", getter, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

// TestGetOrSet_GetterError 测试 getter 返回错误时不写缓存.
func TestGetOrSet_GetterError(t *testing.T) {
	c := cache.NewCache(newStore())
	ctx := context.Background()

	_, err := cache.GetOrSet(ctx, c, "bad", func() (testStats, error) {
		return testStats{}, errors.New("getter error")
	}, 0)
	require.EqualError(t, err, "getter error")

	ok, err := c.Exists(ctx, "bad")
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestCache_ClearKeepsSessions Clear 只删除缓存键.
func TestCache_ClearKeepsSessions(t *testing.T) {
	store := newStore()
	c := cache.NewCache(store)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "auth_token", []byte("user"), 0))
	require.NoError(t, cache.Set(ctx, c, "a", 1, 0))
	require.NoError(t, cache.Set(ctx, c, "b", 2, 0))

	require.NoError(t, c.Clear(ctx))

	keys, err := store.Keys(ctx, "*")
	require.NoError(t, err)
	assert.Equal(t, []string{"auth_token"}, keys)
}
