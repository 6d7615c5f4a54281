package service_test

import (
	"context"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/filevault/pkg/internal/model"
	"github.com/yeisme/filevault/pkg/internal/service"
	"github.com/yeisme/filevault/pkg/metrics"
	"github.com/yeisme/filevault/pkg/queue"
)

func TestPageWindow(t *testing.T) {
	skip, limit := service.PageWindow(0)
	assert.Equal(t, 0, skip)
	assert.Equal(t, 20, limit)

	skip, _ = service.PageWindow(3)
	assert.Equal(t, 60, skip)

	skip, _ = service.PageWindow(-2)
	assert.Equal(t, 0, skip)
}

func TestParsePage(t *testing.T) {
	cases := map[string]int{"": 0, "0": 0, "2": 2, "-1": 0, "abc": 0, "1.5": 0}
	for in, want := range cases {
		assert.Equal(t, want, service.ParsePage(in), in)
	}
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.Register(ctx, "a@b.c", "pw")
	require.NoError(t, err)
	f.mustCreate(t, owner, model.CreateInput{Name: "docs", Type: model.FileTypeFolder})
	f.mustCreate(t, owner, model.CreateInput{Name: "a.txt", Type: model.FileTypeFile, Data: b64("x")})

	svc := service.NewStatsService(f.docs, f.kv)

	status := svc.Status(ctx)
	assert.True(t, status.Redis)
	assert.True(t, status.DB)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Users)
	assert.Equal(t, int64(2), stats.Files)
}

func TestContentReconciler(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mustCreate(t, owner, model.CreateInput{Name: "docs", Type: model.FileTypeFolder})
	for range 4 {
		f.mustCreate(t, owner, model.CreateInput{Name: "ok.txt", Type: model.FileTypeFile, Data: b64("x")})
	}

	gone := f.mustCreate(t, owner, model.CreateInput{Name: "gone.txt", Type: model.FileTypeFile, Data: b64("x")})
	require.NoError(t, f.fs.Remove(gone.LocalPath))

	rep, err := service.NewContentReconciler(f.docs, f.content, 2).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, rep.Checked)
	assert.Equal(t, 1, rep.Missing)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.ContentMissing), 0.001)
}

func TestEventWorkerHandleFileCreated(t *testing.T) {
	f := newFixture(t)
	w := service.NewEventWorker(f.content)

	// 1x1 PNG 头部足以被识别为 image/png
	png := "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00"

	img := f.mustCreate(t, owner, model.CreateInput{Name: "p.png", Type: model.FileTypeImage, Data: b64(png)})
	fake := f.mustCreate(t, owner, model.CreateInput{Name: "q.png", Type: model.FileTypeImage, Data: b64("plain text")})
	missing := f.mustCreate(t, owner, model.CreateInput{Name: "r.png", Type: model.FileTypeImage, Data: b64(png)})
	require.NoError(t, f.fs.Remove(missing.LocalPath))

	for _, rec := range []*model.File{img, fake, missing} {
		msg, err := queue.NewWatermillMessage(queue.TopicFileCreated, queue.FileCreatedPayload{
			File: queue.FileRef{ID: rec.ID.String(), Name: rec.Name, Type: string(rec.Type), LocalPath: rec.LocalPath},
		})
		require.NoError(t, err)
		assert.NoError(t, w.HandleFileCreated(msg))
	}

	assert.NoError(t, w.HandleFileCreated(message.NewMessage(watermill.NewUUID(), []byte("not json"))))
	assert.True(t, service.IsImageMIME("image/png"))
	assert.False(t, service.IsImageMIME("text/plain; charset=utf-8"))
}
