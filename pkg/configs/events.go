package configs

import "github.com/spf13/viper"

// EventsConfig 控制事件发布的开关（全局与分主题）。
type EventsConfig struct {
	Enabled bool             `mapstructure:"enabled"` // 总开关，开启后需要可用的 MQ
	File    FileEventsConfig `mapstructure:"file"`
}

// FileEventsConfig 针对文件记录的事件开关。
type FileEventsConfig struct {
	Created   bool `mapstructure:"created"`
	Published bool `mapstructure:"published"`
}

func (c *EventsConfig) setDefaults(v *viper.Viper) {
	// 默认关闭，避免单机部署时强依赖消息队列
	v.SetDefault("events.enabled", false)

	v.SetDefault("events.file.created", true)
	v.SetDefault("events.file.published", true)
}
