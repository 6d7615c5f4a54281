// Package mq 提供 NATS 消息队列操作实现。
// 此文件包含 NATS 特定的工厂函数，用于创建配置了可选 JetStream 支持的 Publisher 和 Subscriber 实例。
//
// 支持的功能特性：
//   - 重连、心跳与重连抖动
//   - 多种认证方式（JWT、NKey、用户名/密码）
//   - JetStream 持久化消息，按主题派生流名与 durable 名
//   - 队列组负载均衡
//
// 配置从 configs.MQConfig 读取，支持集群 URL 以实现高可用性。
package mq

import (
	"context"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"

	"github.com/yeisme/filevault/pkg/configs"
)

const (
	DefaultDrainTimeout   = 30 * time.Second
	DefaultFlusherTimeout = 10 * time.Second
)

// init 注册 NATS 工厂.
func init() {
	RegisterFactory(configs.MQTypeNATS, natsFactory)
}

// buildNatsOptions 构建 NATS 连接选项.
func buildNatsOptions(cfg *configs.MQConfig) []nc.Option {
	opts := []nc.Option{
		nc.Name(cfg.Common.ClientID),
		nc.MaxReconnects(cfg.Common.MaxReconnects),
		nc.ReconnectWait(time.Duration(cfg.Common.ReconnectWait) * time.Second),
		nc.ReconnectJitter(cfg.Common.ReconnectJitter, cfg.Common.ReconnectJitterTLS),
		nc.PingInterval(time.Duration(cfg.Common.PingInterval) * time.Second),
		nc.MaxPingsOutstanding(cfg.Common.MaxPingsOut),
		nc.ReconnectBufSize(cfg.Common.BufferSize),
		nc.DrainTimeout(DefaultDrainTimeout),
		nc.FlusherTimeout(DefaultFlusherTimeout),
		nc.RetryOnFailedConnect(!cfg.Common.StrictConnect),
	}

	// 添加认证选项
	opts = appendAuthOptions(opts, cfg)

	return opts
}

// appendAuthOptions 添加认证选项.
func appendAuthOptions(opts []nc.Option, cfg *configs.MQConfig) []nc.Option {
	if cfg.NATS.JWT != "" {
		opts = append(opts, nc.UserJWTAndSeed(cfg.NATS.JWT, cfg.NATS.NKey))
	} else if cfg.NATS.NKey != "" {
		opts = append(opts, nc.Nkey(cfg.NATS.NKey, nil))
	} else if cfg.Common.User != "" {
		opts = append(opts, nc.UserInfo(cfg.Common.User, cfg.Common.Password))
	}

	return opts
}

// streamTopic 把事件主题转换为合法的 JetStream 流名，流名中不允许出现 '.'.
func streamTopic(topic string) string {
	return strings.ReplaceAll(topic, ".", "_")
}

// subjectCalculator subject 为前缀加主题，队列组取配置值.
func subjectCalculator(cfg *configs.MQConfig) nats.SubjectCalculator {
	return func(queueGroup, topic string) *nats.SubjectDetail {
		return &nats.SubjectDetail{
			Primary:    cfg.NATS.Subject(topic),
			QueueGroup: queueGroup,
		}
	}
}

// durableName 每个主题使用独立的 durable 消费者.
func durableName(prefix, topic string) string {
	if prefix == "" {
		return ""
	}

	return prefix + "_" + topic
}

// buildJetStreamConfig 构建 JetStream 配置.
func buildJetStreamConfig(cfg *configs.MQConfig, logger watermill.LoggerAdapter) nats.JetStreamConfig {
	jsCfg := nats.JetStreamConfig{
		Disabled: !cfg.NATS.JetStreamEnabled,
	}

	if !cfg.NATS.JetStreamEnabled {
		return jsCfg
	}

	jsCfg.AutoProvision = cfg.NATS.JetStreamAutoProvision
	jsCfg.TrackMsgId = cfg.NATS.JetStreamTrackMsgID
	jsCfg.AckAsync = cfg.NATS.JetStreamAckAsync
	jsCfg.DurablePrefix = cfg.NATS.JetStreamDurablePrefix
	jsCfg.DurableCalculator = durableName
	jsCfg.SubscribeOptions = []nc.SubOpt{
		nc.AckExplicit(),
		nc.MaxDeliver(cfg.NATS.ConsumerMaxDeliver),
		nc.MaxAckPending(cfg.NATS.ConsumerMaxAckPending),
	}

	logger.Info("JetStream 配置信息", watermill.LogFields{
		"auto_provision":  cfg.NATS.JetStreamAutoProvision,
		"track_msg_id":    cfg.NATS.JetStreamTrackMsgID,
		"ack_async":       cfg.NATS.JetStreamAckAsync,
		"durable_prefix":  cfg.NATS.JetStreamDurablePrefix,
		"max_deliver":     cfg.NATS.ConsumerMaxDeliver,
		"max_ack_pending": cfg.NATS.ConsumerMaxAckPending,
	})

	return jsCfg
}

// natsFactory 创建 NATS Publisher & Subscriber，主题在进入 watermill 之前转换为流名.
func natsFactory(
	ctx context.Context,
	cfg *configs.MQConfig,
	logger watermill.LoggerAdapter) (
	message.Publisher, message.Subscriber, error) {
	opts := buildNatsOptions(cfg)
	jsCfg := buildJetStreamConfig(cfg, logger)
	marshaler := &nats.JSONMarshaler{}

	pub, err := nats.NewPublisher(nats.PublisherConfig{
		URL:               cfg.ServerURL(),
		NatsOptions:       opts,
		Marshaler:         marshaler,
		SubjectCalculator: subjectCalculator(cfg),
		JetStream:         jsCfg,
	}, logger)
	if err != nil {
		return nil, nil, err
	}

	sub, err := nats.NewSubscriber(buildSubscriberConfig(cfg, opts, jsCfg, marshaler), logger)
	if err != nil {
		_ = pub.Close()
		return nil, nil, err
	}

	if cfg.NATS.QueueGroup != "" {
		logger.Info("通过队列组启用负载均衡", watermill.LogFields{"queue_group": cfg.NATS.QueueGroup})
	}

	return &streamPublisher{Publisher: pub}, &streamSubscriber{Subscriber: sub}, nil
}

// buildSubscriberConfig 构建订阅端配置.
func buildSubscriberConfig(
	cfg *configs.MQConfig,
	opts []nc.Option,
	jsCfg nats.JetStreamConfig,
	unmarshaler nats.Unmarshaler) nats.SubscriberConfig {
	return nats.SubscriberConfig{
		URL:               cfg.ServerURL(),
		QueueGroupPrefix:  cfg.NATS.QueueGroup,
		AckWaitTimeout:    cfg.NATS.AckWait(),
		NatsOptions:       opts,
		Unmarshaler:       unmarshaler,
		SubjectCalculator: subjectCalculator(cfg),
		JetStream:         jsCfg,
	}
}

type streamPublisher struct {
	message.Publisher
}

func (p *streamPublisher) Publish(topic string, msgs ...*message.Message) error {
	return p.Publisher.Publish(streamTopic(topic), msgs...)
}

type streamSubscriber struct {
	message.Subscriber
}

func (s *streamSubscriber) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return s.Subscriber.Subscribe(ctx, streamTopic(topic))
}
