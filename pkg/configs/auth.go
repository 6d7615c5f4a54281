package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultTokenHeader = "X-Token"
	DefaultKeyPrefix   = "auth_"
	DefaultSessionTTL  = 24 * time.Hour
)

// AuthConfig 会话令牌配置. 令牌保存在 KV 中，键为 KeyPrefix+token，值为用户 ID.
type AuthConfig struct {
	TokenHeader string        `mapstructure:"token_header" rule:"required"`
	KeyPrefix   string        `mapstructure:"key_prefix"`
	SessionTTL  time.Duration `mapstructure:"session_ttl"`
	BcryptCost  int           `mapstructure:"bcrypt_cost"  rule:"min=4,max=31"`
}

func (c *AuthConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("auth.token_header", DefaultTokenHeader)
	v.SetDefault("auth.key_prefix", DefaultKeyPrefix)
	v.SetDefault("auth.session_ttl", DefaultSessionTTL)
	v.SetDefault("auth.bcrypt_cost", 10)
}
