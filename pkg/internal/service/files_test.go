package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/filevault/pkg/configs"
	"github.com/yeisme/filevault/pkg/internal/model"
	"github.com/yeisme/filevault/pkg/internal/service"
	"github.com/yeisme/filevault/pkg/internal/storage/docstore"
	"github.com/yeisme/filevault/pkg/queue"
)

const (
	owner = "64b7f0c2a1b2c3d4e5f60718"
	other = "64b7f0c2a1b2c3d4e5f60719"
)

// TestCreateFolderAndFile 目录与子文件的创建、按所有者查询.
func TestCreateFolderAndFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	docs := f.mustCreate(t, owner, model.CreateInput{Name: "docs", Type: model.FileTypeFolder})
	assert.False(t, docs.ID.IsZero())
	assert.Equal(t, model.RootParentID, docs.ParentID)
	assert.False(t, docs.IsPublic)
	assert.Empty(t, docs.LocalPath)

	a := f.mustCreate(t, owner, model.CreateInput{
		Name: "a.txt", Type: model.FileTypeFile, ParentID: docs.ID.String(), Data: b64("hello"),
	})
	assert.Equal(t, docs.ID.String(), a.ParentID)
	assert.NotEmpty(t, a.LocalPath)

	got, err := f.registry.GetByID(ctx, owner, a.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "a.txt", got.Name)
	assert.Equal(t, model.FileTypeFile, got.Type)

	_, err = f.registry.GetByID(ctx, other, a.ID.String())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	plain := f.mustCreate(t, owner, model.CreateInput{Name: "plain.txt", Type: model.FileTypeFile, Data: b64("x")})

	cases := []struct {
		name string
		in   model.CreateInput
		want error
	}{
		{"missing name", model.CreateInput{Type: model.FileTypeFile, Data: b64("x")}, model.ErrMissingName},
		{"missing type", model.CreateInput{Name: "a"}, model.ErrMissingType},
		{"missing data", model.CreateInput{Name: "a", Type: model.FileTypeImage}, model.ErrMissingData},
		{"parent not found", model.CreateInput{Name: "a", Type: model.FileTypeFolder, ParentID: model.NewID().String()}, service.ErrParentNotFound},
		{"malformed parent", model.CreateInput{Name: "a", Type: model.FileTypeFolder, ParentID: "nope"}, service.ErrParentNotFound},
		{"parent not a folder", model.CreateInput{Name: "a", Type: model.FileTypeFolder, ParentID: plain.ID.String()}, service.ErrParentNotAFolder},
		{"invalid base64", model.CreateInput{Name: "a", Type: model.FileTypeFile, Data: "%%%"}, service.ErrInvalidData},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.registry.Create(ctx, owner, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// TestCreateUnderOtherUsersFolder 父目录校验不区分所有者.
func TestCreateUnderOtherUsersFolder(t *testing.T) {
	f := newFixture(t)

	shared := f.mustCreate(t, other, model.CreateInput{Name: "shared", Type: model.FileTypeFolder})
	child := f.mustCreate(t, owner, model.CreateInput{Name: "c", Type: model.FileTypeFolder, ParentID: shared.ID.String()})
	assert.Equal(t, shared.ID.String(), child.ParentID)
}

func TestGetByIDMalformed(t *testing.T) {
	f := newFixture(t)

	for _, id := range []string{"", "0", "xyz", "64b7f0c2a1b2c3d4e5f6071"} {
		_, err := f.registry.GetByID(context.Background(), owner, id)
		assert.ErrorIs(t, err, service.ErrNotFound, id)
	}
}

func TestListPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	folder := f.mustCreate(t, owner, model.CreateInput{Name: "dir", Type: model.FileTypeFolder})
	for i := range 25 {
		f.mustCreate(t, owner, model.CreateInput{
			Name: fmt.Sprintf("f%02d", i), Type: model.FileTypeFile, ParentID: folder.ID.String(), Data: b64("x"),
		})
	}

	f.mustCreate(t, other, model.CreateInput{Name: "theirs", Type: model.FileTypeFolder})

	page0, err := f.registry.List(ctx, owner, model.RootParentID, 0)
	require.NoError(t, err)
	assert.Len(t, page0, service.PageSize)

	for _, rec := range page0 {
		assert.Equal(t, owner, rec.UserID)
	}

	page1, err := f.registry.List(ctx, owner, "", 1)
	require.NoError(t, err)
	assert.Len(t, page1, 6)

	inDir, err := f.registry.List(ctx, owner, folder.ID.String(), 1)
	require.NoError(t, err)
	require.Len(t, inDir, 5)

	for _, rec := range inDir {
		assert.Equal(t, folder.ID.String(), rec.ParentID)
	}

	assert.Equal(t, "f20", inDir[0].Name)

	empty, err := f.registry.List(ctx, owner, model.RootParentID, 9)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestSetPublic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec := f.mustCreate(t, owner, model.CreateInput{Name: "a.txt", Type: model.FileTypeFile, Data: b64("x")})

	updated, err := f.registry.SetPublic(ctx, owner, rec.ID.String(), true)
	require.NoError(t, err)
	assert.True(t, updated.IsPublic)

	got, err := f.registry.GetByID(ctx, owner, rec.ID.String())
	require.NoError(t, err)
	assert.True(t, got.IsPublic)

	// publish_scope=any：其他用户也可以修改
	updated, err = f.registry.SetPublic(ctx, other, rec.ID.String(), false)
	require.NoError(t, err)
	assert.False(t, updated.IsPublic)

	_, err = f.registry.SetPublic(ctx, owner, model.NewID().String(), true)
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = f.registry.SetPublic(ctx, owner, "bad", true)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestSetPublicOwnerOnly(t *testing.T) {
	f := newFixture(t, service.WithOwnerOnlyPublish(true))
	ctx := context.Background()

	rec := f.mustCreate(t, owner, model.CreateInput{Name: "docs", Type: model.FileTypeFolder})

	_, err := f.registry.SetPublic(ctx, other, rec.ID.String(), true)
	assert.ErrorIs(t, err, service.ErrNotFound)

	updated, err := f.registry.SetPublic(ctx, owner, rec.ID.String(), true)
	require.NoError(t, err)
	assert.True(t, updated.IsPublic)
}

func TestRegistryPublishesEvents(t *testing.T) {
	pubsub := gochannel.NewGoChannel(gochannel.Config{Persistent: true}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubsub.Close() })

	f := newFixture(t, service.WithEvents(service.NewMQEvents(pubsub, configs.FileEventsConfig{Created: true, Published: true})))
	ctx := context.Background()

	created, err := pubsub.Subscribe(ctx, queue.TopicFileCreated)
	require.NoError(t, err)

	published, err := pubsub.Subscribe(ctx, queue.TopicFilePublished)
	require.NoError(t, err)

	rec := f.mustCreate(t, owner, model.CreateInput{Name: "p.png", Type: model.FileTypeImage, Data: b64("png")})

	msg := <-created
	env, err := queue.ParseFileCreated(msg)
	require.NoError(t, err)
	msg.Ack()
	assert.Equal(t, rec.ID.String(), env.Payload.File.ID)
	assert.Equal(t, 3, env.Payload.Size)
	assert.Equal(t, service.Producer, env.Header.Producer)

	_, err = f.registry.SetPublic(ctx, other, rec.ID.String(), true)
	require.NoError(t, err)

	msg = <-published
	vis, err := queue.ParseWatermillMessage[queue.FileVisibilityPayload](msg)
	require.NoError(t, err)
	msg.Ack()
	assert.Equal(t, other, vis.Payload.ActorID)
	assert.True(t, vis.Payload.File.IsPublic)
}

func TestListParentIDNormalized(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	folder := f.mustCreate(t, owner, model.CreateInput{Name: "dir", Type: model.FileTypeFolder})
	f.mustCreate(t, owner, model.CreateInput{
		Name: "a.txt", Type: model.FileTypeFile, ParentID: strings.ToUpper(folder.ID.String()), Data: b64("x"),
	})

	upper, err := f.registry.List(ctx, owner, strings.ToUpper(folder.ID.String()), 0)
	require.NoError(t, err)
	require.Len(t, upper, 1)
	assert.Equal(t, "a.txt", upper[0].Name)
	assert.Equal(t, folder.ID.String(), upper[0].ParentID)

	bad, err := f.registry.List(ctx, owner, "not-an-id", 0)
	require.NoError(t, err)
	assert.NotNil(t, bad)
	assert.Empty(t, bad)
}

// failingFiles 插入总是失败的记录存储.
type failingFiles struct {
	docstore.FileStore
}

func (failingFiles) InsertFile(context.Context, *model.File) error {
	return errors.New("db down")
}

// TestCreateRemovesContentOnInsertFailure 记录写入失败时删除已写入的内容.
func TestCreateRemovesContentOnInsertFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	registry := service.NewFileRegistry(failingFiles{FileStore: f.docs}, f.content)

	_, err := registry.Create(ctx, owner, model.CreateInput{Name: "a.txt", Type: model.FileTypeFile, Data: b64("hi")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert file")

	exists, err := afero.DirExists(f.fs, contentRoot)
	require.NoError(t, err)

	if exists {
		entries, err := afero.ReadDir(f.fs, contentRoot)
		require.NoError(t, err)
		assert.Empty(t, entries)
	}

	_, err = registry.Create(ctx, owner, model.CreateInput{Name: "dir", Type: model.FileTypeFolder})
	require.Error(t, err)
}
