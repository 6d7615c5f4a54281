package mq

import (
	"context"
	"errors"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"

	"github.com/yeisme/filevault/pkg/configs"
)

const (
	// DefaultChannelBufferSize 默认通道缓冲区大小.
	DefaultChannelBufferSize = 100
	// uuidMetadataKey Redis Pub/Sub 只传递负载，消息 UUID 由订阅端重新生成.
	uuidMetadataKey = "redis_channel"
)

// RedisPublisher Redis Publisher 实现.
type RedisPublisher struct {
	client *redis.Client
}

// RedisSubscriber Redis Subscriber 实现，每次 Subscribe 持有独立的 PubSub.
type RedisSubscriber struct {
	client  *redis.Client
	subs    []*redis.PubSub
	mu      sync.Mutex
	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// init 注册 Redis 工厂.
func init() {
	RegisterFactory(configs.MQTypeRedis, redisFactory)
}

// redisFactory 创建 Redis Publisher & Subscriber.
func redisFactory(
	ctx context.Context,
	cfg *configs.MQConfig,
	logger watermill.LoggerAdapter) (
	message.Publisher, message.Subscriber, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, err
	}

	logger.Info("Redis Pub/Sub 已连接", watermill.LogFields{"addr": cfg.Redis.Addr})

	pub := &RedisPublisher{client: rdb}
	sub := &RedisSubscriber{
		client:  rdb,
		closeCh: make(chan struct{}),
	}

	return pub, sub, nil
}

// Publish 实现 Publisher 接口.
func (p *RedisPublisher) Publish(topic string, msgs ...*message.Message) error {
	for _, msg := range msgs {
		ctx := msg.Context()
		if err := p.client.Publish(ctx, topic, []byte(msg.Payload)).Err(); err != nil {
			return err
		}
	}

	return nil
}

// Ping 检查 Redis 连接.
func (p *RedisPublisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Close 实现 Publisher 接口. 连接与 Subscriber 共享，由 Subscriber 关闭.
func (p *RedisPublisher) Close() error {
	return nil
}

// Subscribe 实现 Subscriber 接口.
func (s *RedisSubscriber) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, errors.New("redis subscriber closed")
	}

	ps := s.client.Subscribe(ctx, topic)
	s.subs = append(s.subs, ps)

	ch := make(chan *message.Message, DefaultChannelBufferSize)

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		defer close(ch)

		for {
			msg, err := ps.ReceiveMessage(ctx)
			if err != nil {
				return
			}

			wmMsg := message.NewMessage(watermill.NewUUID(), []byte(msg.Payload))
			wmMsg.Metadata.Set(uuidMetadataKey, msg.Channel)

			select {
			case ch <- wmMsg:
			case <-s.closeCh:
				return
			case <-ctx.Done():
				return
			}

			// 等待处理结果；Pub/Sub 不支持重投，Nack 仅丢弃
			select {
			case <-wmMsg.Acked():
			case <-wmMsg.Nacked():
			case <-s.closeCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

// Close 实现 Subscriber 接口.
func (s *RedisSubscriber) Close() error {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		return nil
	}

	s.closed = true
	close(s.closeCh)

	for _, ps := range s.subs {
		_ = ps.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()

	return s.client.Close()
}
