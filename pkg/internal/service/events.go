package service

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/yeisme/filevault/pkg/configs"
	ctxPkg "github.com/yeisme/filevault/pkg/context"
	"github.com/yeisme/filevault/pkg/internal/model"
	"github.com/yeisme/filevault/pkg/queue"
)

// Producer 事件头中的生产者标识.
const Producer = "filevault"

// EventPublisher 发布文件事件. 发布失败只记录日志，不影响请求结果.
type EventPublisher interface {
	FileCreated(ctx context.Context, f *model.File, size int) error
	FileVisibility(ctx context.Context, f *model.File, actorID string) error
}

// NopEvents 不发布任何事件.
type NopEvents struct{}

func (NopEvents) FileCreated(context.Context, *model.File, int) error { return nil }

func (NopEvents) FileVisibility(context.Context, *model.File, string) error { return nil }

// MQEvents 通过 watermill Publisher 发布事件，按主题开关过滤.
type MQEvents struct {
	pub    message.Publisher
	topics configs.FileEventsConfig
}

// NewMQEvents 创建事件发布器.
func NewMQEvents(pub message.Publisher, topics configs.FileEventsConfig) *MQEvents {
	return &MQEvents{pub: pub, topics: topics}
}

func (e *MQEvents) FileCreated(ctx context.Context, f *model.File, size int) error {
	if !e.topics.Created {
		return nil
	}

	return queue.PublishFileCreated(e.pub,
		queue.FileCreatedPayload{File: fileRef(f), Size: size},
		queue.WithProducer(Producer), queue.WithTraceID(ctxPkg.TraceID(ctx)))
}

func (e *MQEvents) FileVisibility(ctx context.Context, f *model.File, actorID string) error {
	if !e.topics.Published {
		return nil
	}

	return queue.PublishFileVisibility(e.pub,
		queue.FileVisibilityPayload{File: fileRef(f), ActorID: actorID},
		queue.WithProducer(Producer), queue.WithTraceID(ctxPkg.TraceID(ctx)))
}

func fileRef(f *model.File) queue.FileRef {
	return queue.FileRef{
		ID:        f.ID.String(),
		UserID:    f.UserID,
		Name:      f.Name,
		Type:      string(f.Type),
		ParentID:  f.ParentID,
		IsPublic:  f.IsPublic,
		LocalPath: f.LocalPath,
	}
}
