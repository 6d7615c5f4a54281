package blob_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/filevault/pkg/internal/storage/blob"
)

// TestLocalStorePutRead 测试写入后可读取，且不残留临时文件.
func TestLocalStorePutRead(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	store := blob.NewLocalStore(fs, "/data/files")

	path, err := store.Put(ctx, []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "/data/files", filepath.Dir(path))

	ok, err := store.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := store.ReadAll(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	entries, err := afero.ReadDir(fs, "/data/files")
	require.NoError(t, err)

	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "leftover temp file %s", e.Name())
	}
}

// TestLocalStoreMissing 测试缺失路径与目录均视为不存在.
func TestLocalStoreMissing(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	store := blob.NewLocalStore(fs, "/data/files")

	require.NoError(t, store.Ping(ctx))

	ok, err := store.Exists(ctx, "/data/files/nope")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Exists(ctx, "/data/files")
	require.NoError(t, err)
	assert.False(t, ok, "directory is not content")

	_, err = store.ReadAll(ctx, "/data/files/nope")
	assert.Error(t, err)
}

// TestLocalStoreUniqueNames 测试相同内容写入得到不同路径.
func TestLocalStoreUniqueNames(t *testing.T) {
	ctx := context.Background()
	store := blob.NewLocalStore(afero.NewMemMapFs(), "/x")

	a, err := store.Put(ctx, []byte("same"))
	require.NoError(t, err)

	b, err := store.Put(ctx, []byte("same"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

// TestLocalStoreDelete 测试删除后不存在，重复删除不报错.
func TestLocalStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := blob.NewLocalStore(afero.NewMemMapFs(), "/x")

	path, err := store.Put(ctx, []byte("bye"))
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, path))

	ok, err := store.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, store.Delete(ctx, path))
}
