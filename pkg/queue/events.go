package queue

import "github.com/ThreeDotsLabs/watermill/message"

// PublishFileCreated 发布 fv.file.created 事件.
func PublishFileCreated(pub message.Publisher, payload FileCreatedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicFileCreated, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicFileCreated, msg)
}

// PublishFileVisibility 按公开状态发布 fv.file.published 或 fv.file.unpublished.
func PublishFileVisibility(pub message.Publisher, payload FileVisibilityPayload, opts ...func(*EventHeader)) error {
	topic := TopicFileUnpublished
	if payload.File.IsPublic {
		topic = TopicFilePublished
	}

	msg, err := NewWatermillMessage(topic, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(topic, msg)
}

// ParseFileCreated 将 Watermill 消息解析为强类型 Envelope.
func ParseFileCreated(msg *message.Message) (Message[FileCreatedPayload], error) {
	return ParseWatermillMessage[FileCreatedPayload](msg)
}
