package mq

import (
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	nc "github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/filevault/pkg/configs"
	"github.com/yeisme/filevault/pkg/queue"
)

func natsConfig() *configs.MQConfig {
	return &configs.MQConfig{
		Type: configs.MQTypeNATS,
		Common: configs.MQCommonConfig{
			URL:                configs.DefaultMQURL,
			ClientID:           "fv-test",
			MaxReconnects:      7,
			ReconnectWait:      2,
			MaxPingsOut:        4,
			PingInterval:       15,
			ReconnectJitter:    250 * time.Millisecond,
			ReconnectJitterTLS: 2 * time.Second,
			BufferSize:         configs.DefaultBufferSize,
		},
		NATS: configs.MQNATSConfig{
			JetStreamEnabled:       true,
			JetStreamDurablePrefix: "fv",
			SubjectPrefix:          "filevault.",
			QueueGroup:             "workers",
			ConsumerAckWait:        10,
			ConsumerMaxDeliver:     5,
			ConsumerMaxAckPending:  50,
		},
	}
}

func applyOptions(t *testing.T, opts []nc.Option) nc.Options {
	t.Helper()

	o := nc.GetDefaultOptions()
	for _, opt := range opts {
		require.NoError(t, opt(&o))
	}

	return o
}

func TestBuildNatsOptions(t *testing.T) {
	cfg := natsConfig()
	o := applyOptions(t, buildNatsOptions(cfg))

	assert.Equal(t, "fv-test", o.Name)
	assert.Equal(t, 7, o.MaxReconnect)
	assert.Equal(t, 2*time.Second, o.ReconnectWait)
	assert.Equal(t, 4, o.MaxPingsOut)
	assert.Equal(t, 15*time.Second, o.PingInterval)
	assert.Equal(t, 250*time.Millisecond, o.ReconnectJitter)
	assert.Equal(t, 2*time.Second, o.ReconnectJitterTLS)
	assert.True(t, o.RetryOnFailedConnect)

	cfg.Common.StrictConnect = true
	o = applyOptions(t, buildNatsOptions(cfg))
	assert.False(t, o.RetryOnFailedConnect)
}

func TestBuildNatsOptionsAuth(t *testing.T) {
	cfg := natsConfig()
	cfg.Common.User = "fv"
	cfg.Common.Password = "secret"

	o := applyOptions(t, buildNatsOptions(cfg))
	assert.Equal(t, "fv", o.User)
	assert.Equal(t, "secret", o.Password)
}

func TestSubjectsAndDurables(t *testing.T) {
	cfg := natsConfig()

	topic := streamTopic(queue.TopicFileCreated)
	assert.NotContains(t, topic, ".")

	detail := subjectCalculator(cfg)(cfg.NATS.QueueGroup, topic)
	assert.Equal(t, "filevault."+topic, detail.Primary)
	assert.Equal(t, "workers", detail.QueueGroup)

	assert.Equal(t, "fv_"+topic, durableName("fv", topic))
	assert.Empty(t, durableName("", topic))
}

func TestBuildJetStreamConfig(t *testing.T) {
	cfg := natsConfig()

	js := buildJetStreamConfig(cfg, watermill.NopLogger{})
	assert.False(t, js.Disabled)
	assert.Len(t, js.SubscribeOptions, 3)
	assert.Equal(t, "fv_fv_file_created", js.CalculateDurableName("fv_file_created"))

	sub := buildSubscriberConfig(cfg, nil, js, nil)
	assert.Equal(t, 10*time.Second, sub.AckWaitTimeout)
	assert.Equal(t, "workers", sub.QueueGroupPrefix)
	assert.Equal(t, configs.DefaultMQURL, sub.URL)

	cfg.NATS.ClusterURLs = []string{"nats://a:4222", "nats://b:4222"}
	assert.Equal(t, "nats://a:4222,nats://b:4222", buildSubscriberConfig(cfg, nil, js, nil).URL)

	cfg.NATS.JetStreamEnabled = false
	js = buildJetStreamConfig(cfg, watermill.NopLogger{})
	assert.True(t, js.Disabled)
	assert.Empty(t, js.SubscribeOptions)
}
