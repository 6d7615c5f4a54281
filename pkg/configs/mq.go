package configs

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// MQType 消息队列类型.
type MQType string

const (
	MQTypeNATS  MQType = "nats"
	MQTypeRedis MQType = "redis"

	DefaultMQURL         = "localhost:4222"
	DefaultMaxReconnects = 5               // 默认最大重连次数.
	DefaultReconnectWait = 5               // 默认重连等待时间（秒）.
	DefaultMQClientID    = "filevault-app" // 默认客户端ID

	DefaultMaxPingsOut  = 3     // 默认最大未响应 ping 数
	DefaultPingInterval = 20    // 默认ping间隔 (秒)
	DefaultBufferSize   = 32768 // 默认重连缓冲区大小 (32KB)

	DefaultReconnectJitter    = 100 * time.Millisecond
	DefaultReconnectJitterTLS = time.Second

	DefaultSubjectPrefix = "filevault."
	DefaultQueueGroup    = "filevault-workers"

	// 消费者配置常量.

	DefaultConsumerAckWait       = 30   // 默认消费者确认等待时间 (秒)
	DefaultConsumerMaxDeliver    = 3    // 默认消费者最大投递次数
	DefaultConsumerMaxAckPending = 1000 // 默认消费者最大待确认消息数
)

// MQConfig 消息队列配置.
type MQConfig struct {
	Type   MQType         `mapstructure:"type"   rule:"oneof=nats redis"`
	Common MQCommonConfig `mapstructure:"common"`
	NATS   MQNATSConfig   `mapstructure:"nats"`
	Redis  MQRedisConfig  `mapstructure:"redis"`
}

// MQCommonConfig 连接参数.
type MQCommonConfig struct {
	URL           string `mapstructure:"url"            rule:"hostname_port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	ClientID      string `mapstructure:"client_id"`
	MaxReconnects int    `mapstructure:"max_reconnects" rule:"min=0,max=100"`
	ReconnectWait int    `mapstructure:"reconnect_wait" rule:"min=1,max=300"`
	// StrictConnect 为 true 时首次连接失败直接报错，否则在后台重试.
	StrictConnect      bool          `mapstructure:"strict_connect"`
	MaxPingsOut        int           `mapstructure:"max_pings_out"        rule:"min=1,max=10"`
	PingInterval       int           `mapstructure:"ping_interval"        rule:"min=1,max=300"`
	ReconnectJitter    time.Duration `mapstructure:"reconnect_jitter"`
	ReconnectJitterTLS time.Duration `mapstructure:"reconnect_jitter_tls"`
	BufferSize         int           `mapstructure:"buffer_size"          rule:"min=1024,max=1048576"`
	EnableMetrics      bool          `mapstructure:"enable_metrics"`
}

// MQNATSConfig NATS MQ 配置.
type MQNATSConfig struct {
	JetStreamEnabled       bool   `mapstructure:"jetstream_enabled"`
	JetStreamAutoProvision bool   `mapstructure:"jetstream_auto_provision"`
	JetStreamTrackMsgID    bool   `mapstructure:"jetstream_track_msg_id"`
	JetStreamAckAsync      bool   `mapstructure:"jetstream_ack_async"`
	JetStreamDurablePrefix string `mapstructure:"jetstream_durable_prefix"`
	// SubjectPrefix 拼在主题前得到 NATS subject.
	SubjectPrefix string `mapstructure:"subject_prefix"`
	// QueueGroup 非空时多个 worker 以队列组方式分摊消息.
	QueueGroup            string   `mapstructure:"queue_group"`
	ConsumerAckWait       int      `mapstructure:"consumer_ack_wait"        rule:"min=1,max=3600"`
	ConsumerMaxDeliver    int      `mapstructure:"consumer_max_deliver"     rule:"min=-1"`
	ConsumerMaxAckPending int      `mapstructure:"consumer_max_ack_pending" rule:"min=-1"`
	JWT                   string   `mapstructure:"jwt"`
	NKey                  string   `mapstructure:"nkey"`
	ClusterURLs           []string `mapstructure:"cluster_urls"`
}

// MQRedisConfig Redis MQ 配置.
type MQRedisConfig struct {
	Addr     string `mapstructure:"addr"     rule:"hostname_port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"       rule:"min=0,max=15"`
}

// ServerURL 返回连接地址，配置了集群时以逗号拼接.
func (c *MQConfig) ServerURL() string {
	if len(c.NATS.ClusterURLs) > 0 {
		return strings.Join(c.NATS.ClusterURLs, ",")
	}

	return c.Common.URL
}

// Subject 返回主题对应的 NATS subject.
func (c *MQNATSConfig) Subject(topic string) string {
	return c.SubjectPrefix + topic
}

// AckWait 消费者确认超时.
func (c *MQNATSConfig) AckWait() time.Duration {
	return time.Duration(c.ConsumerAckWait) * time.Second
}

// setDefaults 设置MQ配置的默认值.
func (c *MQConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("mq.type", MQTypeNATS)

	v.SetDefault("mq.common.url", DefaultMQURL)
	v.SetDefault("mq.common.user", "")
	v.SetDefault("mq.common.password", "")
	v.SetDefault("mq.common.client_id", DefaultMQClientID)
	v.SetDefault("mq.common.max_reconnects", DefaultMaxReconnects)
	v.SetDefault("mq.common.reconnect_wait", DefaultReconnectWait)
	v.SetDefault("mq.common.strict_connect", false)
	v.SetDefault("mq.common.max_pings_out", DefaultMaxPingsOut)
	v.SetDefault("mq.common.ping_interval", DefaultPingInterval)
	v.SetDefault("mq.common.reconnect_jitter", DefaultReconnectJitter)
	v.SetDefault("mq.common.reconnect_jitter_tls", DefaultReconnectJitterTLS)
	v.SetDefault("mq.common.buffer_size", DefaultBufferSize)
	v.SetDefault("mq.common.enable_metrics", true)

	v.SetDefault("mq.nats.jetstream_enabled", true)
	v.SetDefault("mq.nats.jetstream_auto_provision", true)
	v.SetDefault("mq.nats.jetstream_track_msg_id", true)
	v.SetDefault("mq.nats.jetstream_ack_async", true)
	v.SetDefault("mq.nats.jetstream_durable_prefix", "filevault-durable")
	v.SetDefault("mq.nats.subject_prefix", DefaultSubjectPrefix)
	v.SetDefault("mq.nats.queue_group", DefaultQueueGroup)
	v.SetDefault("mq.nats.consumer_ack_wait", DefaultConsumerAckWait)
	v.SetDefault("mq.nats.consumer_max_deliver", DefaultConsumerMaxDeliver)
	v.SetDefault("mq.nats.consumer_max_ack_pending", DefaultConsumerMaxAckPending)
	v.SetDefault("mq.nats.jwt", "")
	v.SetDefault("mq.nats.nkey", "")
	v.SetDefault("mq.nats.cluster_urls", []string{})

	v.SetDefault("mq.redis.addr", "localhost:6379")
	v.SetDefault("mq.redis.password", "")
	v.SetDefault("mq.redis.db", 0)
}
