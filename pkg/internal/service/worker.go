package service

import (
	"strings"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/yeisme/filevault/pkg/internal/model"
	"github.com/yeisme/filevault/pkg/internal/storage/blob"
	nlog "github.com/yeisme/filevault/pkg/log"
	"github.com/yeisme/filevault/pkg/queue"
)

// EventWorker 消费文件事件. 对 image 类型记录嗅探实际内容，类型不符时记录告警.
type EventWorker struct {
	content blob.ContentStore
	logger  zerolog.Logger
}

// NewEventWorker 创建事件消费者.
func NewEventWorker(content blob.ContentStore) *EventWorker {
	return &EventWorker{content: content, logger: nlog.Component("worker")}
}

// Register 在 router 上注册 handler.
func (w *EventWorker) Register(router *message.Router, sub message.Subscriber) {
	router.AddNoPublisherHandler("file_created_sniff", queue.TopicFileCreated, sub, w.HandleFileCreated)
}

// HandleFileCreated 处理 fv.file.created. 无法解析或读取的消息只记录日志并确认，不重投.
func (w *EventWorker) HandleFileCreated(msg *message.Message) error {
	env, err := queue.ParseFileCreated(msg)
	if err != nil {
		w.logger.Error().Err(err).Str("uuid", msg.UUID).Msg("decode file created event")
		return nil
	}

	f := env.Payload.File
	l := w.logger.With().Str("file_id", f.ID).Str("trace_id", env.Header.TraceID).Logger()

	if model.FileType(f.Type) != model.FileTypeImage || f.LocalPath == "" {
		return nil
	}

	data, err := w.content.ReadAll(msg.Context(), f.LocalPath)
	if err != nil {
		l.Error().Err(err).Msg("read image content")
		return nil
	}

	detected := mimetype.Detect(data)
	if !IsImageMIME(detected.String()) {
		l.Warn().
			Str("name", f.Name).
			Str("detected", detected.String()).
			Str("declared", ContentTypeFor(f.Name)).
			Msg("image record content is not an image")

		return nil
	}

	l.Debug().Str("detected", detected.String()).Msg("image content verified")

	return nil
}

// IsImageMIME 判断 MIME 是否为图片类型.
func IsImageMIME(mt string) bool {
	return strings.HasPrefix(mt, "image/")
}
