// Package mq 提供基于 Watermill 库的统一消息队列操作接口，用于发布和消费文件事件。
// 通过工厂模式抽象不同的 MQ 实现。
//
// 支持的 MQ 类型：
//   - NATS（支持 JetStream）
//   - Redis Pub/Sub
//
// 使用示例：
//
//	client, err := mq.New(ctx, &cfg.MQ, metrics.Registry())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	msg := message.NewMessage(watermill.NewUUID(), []byte("hello world"))
//	err = client.Publish(ctx, "topic", msg)
package mq

import (
	"context"
	"fmt"
	"sort"

	watermill "github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yeisme/filevault/pkg/configs"
	nlog "github.com/yeisme/filevault/pkg/log"
)

// Factory 定义创建 Publisher + Subscriber 的工厂函数.
type Factory func(ctx context.Context, cfg *configs.MQConfig, logger watermill.LoggerAdapter) (message.Publisher, message.Subscriber, error)

var (
	factories = map[configs.MQType]Factory{}
)

// RegisterFactory 注册指定 MQType 的工厂.
func RegisterFactory(t configs.MQType, f Factory) {
	factories[t] = f
}

// GetRegisteredTypes 返回已注册的 MQ 类型.
func GetRegisteredTypes() []configs.MQType {
	types := make([]configs.MQType, 0, len(factories))
	for t := range factories {
		types = append(types, t)
	}

	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	return types
}

// Client 封装 watermill Publisher 与 Subscriber.
type Client struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	logger     watermill.LoggerAdapter
	metrics    *metrics.PrometheusMetricsBuilder
	mqType     configs.MQType
}

// New 按配置初始化消息队列. reg 不为 nil 时为 Publisher/Subscriber 增加 prometheus 指标.
func New(ctx context.Context, cfg *configs.MQConfig, reg prometheus.Registerer) (*Client, error) {
	factory, ok := factories[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported mq type: %s", cfg.Type)
	}

	l := nlog.Component("mq")
	logger := &zerologAdapter{l: &l}

	pub, sub, err := factory(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init mq (%s): %w", cfg.Type, err)
	}

	c := &Client{publisher: pub, subscriber: sub, logger: logger, mqType: cfg.Type}

	if reg != nil && cfg.Common.EnableMetrics {
		builder := metrics.NewPrometheusMetricsBuilder(reg, "filevault", "mq")
		c.metrics = &builder

		if c.publisher, err = builder.DecoratePublisher(pub); err != nil {
			return nil, fmt.Errorf("decorate publisher with metrics: %w", err)
		}

		if c.subscriber, err = builder.DecorateSubscriber(sub); err != nil {
			return nil, fmt.Errorf("decorate subscriber with metrics: %w", err)
		}
	}

	nlog.Logger().Info().Str("type", string(cfg.Type)).Msg("MQ 客户端已初始化")

	return c, nil
}

// Publish 便捷发布.
func (c *Client) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	if c == nil || c.publisher == nil {
		return fmt.Errorf("mq publisher not initialized")
	}

	for _, m := range msgs {
		m.SetContext(ctx)
	}

	return c.publisher.Publish(topic, msgs...)
}

// Subscribe 便捷订阅.
func (c *Client) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if c == nil || c.subscriber == nil {
		return nil, fmt.Errorf("mq subscriber not initialized")
	}

	return c.subscriber.Subscribe(ctx, topic)
}

// NewRouter 创建绑定本客户端日志与指标的 watermill Router，供 worker 注册 handler.
func (c *Client) NewRouter() (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, c.logger)
	if err != nil {
		return nil, fmt.Errorf("create router: %w", err)
	}

	if c.metrics != nil {
		c.metrics.AddPrometheusRouterMetrics(router)
	}

	return router, nil
}

// Publisher 返回底层 Publisher.
func (c *Client) Publisher() message.Publisher {
	return c.publisher
}

// Subscriber 返回底层 Subscriber.
func (c *Client) Subscriber() message.Subscriber {
	return c.subscriber
}

// Type 返回 MQ 类型.
func (c *Client) Type() configs.MQType {
	return c.mqType
}

// Ping 通过 Publisher 是否存在判断可用性；底层连接由各实现自动重连.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.publisher == nil {
		return fmt.Errorf("mq not initialized")
	}

	if p, ok := c.publisher.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}

	return nil
}

// Close 关闭资源.
func (c *Client) Close() error {
	var err error

	if c.publisher != nil {
		if e := c.publisher.Close(); e != nil {
			err = e
		}
	}

	if c.subscriber != nil {
		if e := c.subscriber.Close(); e != nil {
			err = e
		}
	}

	return err
}
