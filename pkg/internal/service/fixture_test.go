package service_test

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/filevault/pkg/configs"
	"github.com/yeisme/filevault/pkg/internal/model"
	"github.com/yeisme/filevault/pkg/internal/service"
	"github.com/yeisme/filevault/pkg/internal/storage/blob"
	"github.com/yeisme/filevault/pkg/internal/storage/docstore"
	"github.com/yeisme/filevault/pkg/internal/storage/kv"
)

const contentRoot = "/tmp/files_manager"

type fixture struct {
	docs     *docstore.GormStore
	kv       kv.KVStore
	fs       afero.Fs
	content  *blob.LocalStore
	registry *service.FileRegistry
	accessor *service.ContentAccessor
	gate     *service.SessionGate
	users    *service.UserService
	auth     *service.AuthService
}

func authConfig() configs.AuthConfig {
	return configs.AuthConfig{
		TokenHeader: configs.DefaultTokenHeader,
		KeyPrefix:   configs.DefaultKeyPrefix,
		SessionTTL:  time.Hour,
		BcryptCost:  bcrypt.MinCost,
	}
}

func newFixture(t *testing.T, opts ...service.RegistryOption) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard, TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	docs, err := docstore.NewGormStore(db)
	require.NoError(t, err)

	t.Cleanup(func() { _ = docs.Close(context.Background()) })

	f := &fixture{
		docs: docs,
		kv:   kv.NewMemoryKVWithClock(time.Now),
		fs:   afero.NewMemMapFs(),
	}
	f.content = blob.NewLocalStore(f.fs, contentRoot)
	f.registry = service.NewFileRegistry(docs, f.content, opts...)
	f.accessor = service.NewContentAccessor(f.registry, f.content, false)
	f.gate = service.NewSessionGate(f.kv, authConfig())
	f.users = service.NewUserService(docs, authConfig())
	f.auth = service.NewAuthService(f.gate, f.users)

	return f
}

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func (f *fixture) mustCreate(t *testing.T, userID string, in model.CreateInput) *model.File {
	t.Helper()

	created, err := f.registry.Create(context.Background(), userID, in)
	require.NoError(t, err)

	return created
}
