package docstore_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mongodrv "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/filevault/pkg/internal/model"
	"github.com/yeisme/filevault/pkg/internal/storage/docstore"
)

func newGormStore(t *testing.T) *docstore.GormStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store, err := docstore.NewGormStore(db)
	require.NoError(t, err)

	t.Cleanup(func() { _ = store.Close(context.Background()) })

	return store
}

// TestGormStore 在内存 SQLite 上运行存储契约测试.
func TestGormStore(t *testing.T) {
	runStoreContract(t, newGormStore(t))
}

// TestMongoStore 需要设置 FILEVAULT_TEST_MONGO_URI，否则跳过.
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("FILEVAULT_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("set FILEVAULT_TEST_MONGO_URI to enable")
	}

	ctx := context.Background()

	cli, err := mongodrv.Connect(options.Client().ApplyURI(uri))
	require.NoError(t, err)

	db := cli.Database(fmt.Sprintf("filevault_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		_ = db.Drop(ctx)
		_ = cli.Disconnect(ctx)
	})

	store, err := docstore.NewMongoStore(ctx, db)
	require.NoError(t, err)

	runStoreContract(t, store)
}

func runStoreContract(t *testing.T, store docstore.Store) {
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	owner := model.NewID().String()
	other := model.NewID().String()

	folder := &model.File{UserID: owner, Name: "docs", Type: model.FileTypeFolder, ParentID: model.RootParentID}
	require.NoError(t, store.InsertFile(ctx, folder))
	require.False(t, folder.ID.IsZero())

	var inFolder []model.ID

	for i := range 3 {
		f := &model.File{
			UserID:    owner,
			Name:      fmt.Sprintf("f%d.txt", i),
			Type:      model.FileTypeFile,
			ParentID:  folder.ID.String(),
			LocalPath: fmt.Sprintf("/tmp/f%d", i),
		}
		require.NoError(t, store.InsertFile(ctx, f))

		inFolder = append(inFolder, f.ID)
	}

	require.NoError(t, store.InsertFile(ctx, &model.File{
		UserID: other, Name: "theirs", Type: model.FileTypeFolder, ParentID: model.RootParentID,
	}))

	t.Run("find owned", func(t *testing.T) {
		got, err := store.FindFile(ctx, docstore.ByID(folder.ID).Owned(owner))
		require.NoError(t, err)
		assert.Equal(t, "docs", got.Name)
		assert.Equal(t, model.RootParentID, got.ParentID)

		_, err = store.FindFile(ctx, docstore.ByID(folder.ID).Owned(other))
		assert.ErrorIs(t, err, docstore.ErrNotFound)

		_, err = store.FindFile(ctx, docstore.ByID(model.NewID()))
		assert.ErrorIs(t, err, docstore.ErrNotFound)
	})

	t.Run("list by owner and parent", func(t *testing.T) {
		all, err := store.FindFiles(ctx, docstore.FileFilter{UserID: owner}, 0, 20)
		require.NoError(t, err)
		assert.Len(t, all, 4)

		children, err := store.FindFiles(ctx, docstore.FileFilter{UserID: owner}.InParent(folder.ID.String()), 0, 20)
		require.NoError(t, err)
		require.Len(t, children, 3)

		for i, f := range children {
			assert.Equal(t, inFolder[i], f.ID, "insertion order")
			assert.Equal(t, fmt.Sprintf("/tmp/f%d", i), f.LocalPath)
		}

		page, err := store.FindFiles(ctx, docstore.FileFilter{UserID: owner}.InParent(folder.ID.String()), 2, 2)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, inFolder[2], page[0].ID)

		empty, err := store.FindFiles(ctx, docstore.FileFilter{UserID: owner}, 40, 20)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("set public", func(t *testing.T) {
		got, err := store.SetFilePublic(ctx, docstore.ByID(inFolder[0]), true)
		require.NoError(t, err)
		assert.True(t, got.IsPublic)

		reread, err := store.FindFile(ctx, docstore.ByID(inFolder[0]))
		require.NoError(t, err)
		assert.True(t, reread.IsPublic)

		_, err = store.SetFilePublic(ctx, docstore.ByID(inFolder[0]).Owned(other), false)
		assert.ErrorIs(t, err, docstore.ErrNotFound)
	})

	t.Run("users", func(t *testing.T) {
		u := &model.User{Email: "bob@example.com", Password: "hash"}
		require.NoError(t, store.InsertUser(ctx, u))

		dup := &model.User{Email: "bob@example.com", Password: "hash"}
		err := store.InsertUser(ctx, dup)
		assert.True(t, errors.Is(err, docstore.ErrDuplicate), "got %v", err)

		byEmail, err := store.FindUserByEmail(ctx, "bob@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byEmail.ID)

		byID, err := store.FindUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "bob@example.com", byID.Email)

		_, err = store.FindUserByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, docstore.ErrNotFound)
	})

	t.Run("counts", func(t *testing.T) {
		files, err := store.CountFiles(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 5, files)

		users, err := store.CountUsers(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, users)
	})
}
