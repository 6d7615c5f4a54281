package configs

import (
	"strings"

	"github.com/spf13/viper"
)

const (
	// 默认速率限制配置.
	DefaultRateLimitEnabled = false
	DefaultRateLimitRPS     = 50.0
	DefaultRateLimitBurst   = 100
	DefaultRateLimitKey     = "ip"
)

// 限流维度.
const (
	RateLimitGlobal = "global"
	RateLimitIP     = "ip"
	RateLimitHeader = "header"
)

// RateLimitConfig 速率限制配置.
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"   rule:"gt=0"` // 每秒允许的请求数
	Burst   int     `mapstructure:"burst" rule:"min=1"`
	// Key 选择限流维度：global（全局）、ip（按客户端IP）、header:Header-Name（按请求头）
	Key string `mapstructure:"key"`
}

// KeyMode 解析限流维度，按请求头限流时同时返回请求头名. 空值视为 global，无法识别时退回 ip.
func (c RateLimitConfig) KeyMode() (mode, header string) {
	key := strings.TrimSpace(c.Key)

	switch {
	case key == "" || strings.EqualFold(key, RateLimitGlobal):
		return RateLimitGlobal, ""
	case len(key) > len(RateLimitHeader)+1 && strings.EqualFold(key[:len(RateLimitHeader)+1], RateLimitHeader+":"):
		return RateLimitHeader, strings.TrimSpace(key[len(RateLimitHeader)+1:])
	default:
		return RateLimitIP, ""
	}
}

func (c *RateLimitConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("rate_limit.enabled", DefaultRateLimitEnabled)
	v.SetDefault("rate_limit.rps", DefaultRateLimitRPS)
	v.SetDefault("rate_limit.burst", DefaultRateLimitBurst)
	v.SetDefault("rate_limit.key", DefaultRateLimitKey)
}
