package queue_test

import (
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/filevault/pkg/queue"
)

// TestNewWatermillMessage 测试消息信封头部与元数据.
func TestNewWatermillMessage(t *testing.T) {
	payload := queue.FileCreatedPayload{
		File: queue.FileRef{ID: "65f0c0ffee0000000000abcd", Name: "a.txt", Type: "file", ParentID: "0"},
		Size: 5,
	}

	msg, err := queue.NewWatermillMessage(queue.TopicFileCreated, payload,
		queue.WithTraceID("trace-1"), queue.WithProducer("filevault"))
	require.NoError(t, err)

	assert.Equal(t, queue.TopicFileCreated, msg.Metadata.Get("topic"))
	assert.Equal(t, "trace-1", msg.Metadata.Get("trace_id"))

	env, err := queue.ParseFileCreated(msg)
	require.NoError(t, err)
	assert.Equal(t, queue.PayloadVersionV1, env.Header.Version)
	assert.Equal(t, "filevault", env.Header.Producer)
	assert.Equal(t, payload, env.Payload)
}

// TestPublishFileVisibilityTopic 测试根据公开状态选择主题.
func TestPublishFileVisibilityTopic(t *testing.T) {
	pubsub := gochannel.NewGoChannel(gochannel.Config{Persistent: true}, nil)
	defer pubsub.Close()

	publish := func(isPublic bool) {
		err := queue.PublishFileVisibility(pubsub, queue.FileVisibilityPayload{
			File:    queue.FileRef{ID: "x", IsPublic: isPublic},
			ActorID: "u1",
		})
		require.NoError(t, err)
	}

	publish(true)
	publish(false)

	published, err := pubsub.Subscribe(t.Context(), queue.TopicFilePublished)
	require.NoError(t, err)

	unpublished, err := pubsub.Subscribe(t.Context(), queue.TopicFileUnpublished)
	require.NoError(t, err)

	for _, ch := range []<-chan *message.Message{published, unpublished} {
		m := <-ch
		m.Ack()
	}
}
