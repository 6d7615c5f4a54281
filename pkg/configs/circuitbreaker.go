package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	// 默认熔断器配置.
	DefaultCBEnabled           = false
	DefaultCBFailureRate       = 0.5
	DefaultCBMinRequests       = 20
	DefaultCBIntervalSeconds   = 60
	DefaultCBTimeoutSeconds    = 30
	DefaultCBMaxRequestsInHalf = 5
)

// CircuitBreakerConfig 熔断器配置.
type CircuitBreakerConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	FailureRate       float64 `mapstructure:"failure_rate"         rule:"gt=0,lte=1"` // 统计窗口内失败比例阈值
	MinRequests       uint32  `mapstructure:"min_requests"         rule:"min=1"`      // 进入统计的最小请求数
	IntervalSeconds   int     `mapstructure:"interval_seconds"     rule:"min=0"`      // 统计窗口，0 表示不清零
	TimeoutSeconds    int     `mapstructure:"timeout_seconds"      rule:"min=1"`      // 打开状态持续时间（自动半开）
	MaxRequestsInHalf uint32  `mapstructure:"max_requests_in_half" rule:"min=1"`      // 半开状态允许的请求数
}

// Interval 统计窗口.
func (c CircuitBreakerConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// Timeout 打开状态持续时间.
func (c CircuitBreakerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ShouldTrip 请求数达到 MinRequests 且失败比例不低于 FailureRate 时返回 true.
func (c CircuitBreakerConfig) ShouldTrip(requests, failures uint32) bool {
	if requests == 0 || requests < c.MinRequests {
		return false
	}

	return float64(failures)/float64(requests) >= c.FailureRate
}

func (c *CircuitBreakerConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("circuit_breaker.enabled", DefaultCBEnabled)
	v.SetDefault("circuit_breaker.failure_rate", DefaultCBFailureRate)
	v.SetDefault("circuit_breaker.min_requests", DefaultCBMinRequests)
	v.SetDefault("circuit_breaker.interval_seconds", DefaultCBIntervalSeconds)
	v.SetDefault("circuit_breaker.timeout_seconds", DefaultCBTimeoutSeconds)
	v.SetDefault("circuit_breaker.max_requests_in_half", DefaultCBMaxRequestsInHalf)
}
