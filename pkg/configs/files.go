package configs

import "github.com/spf13/viper"

// PublishScope 发布/取消发布时的记录查找范围.
type PublishScope string

const (
	// PublishScopeAny 按 id 查找，不校验归属.
	PublishScopeAny PublishScope = "any"
	// PublishScopeOwner 仅允许所有者修改.
	PublishScopeOwner PublishScope = "owner"
)

// FilesConfig 文件访问策略.
type FilesConfig struct {
	PublishScope PublishScope `mapstructure:"publish_scope" rule:"oneof=any owner"`
	// PublicRead 为 true 时，已认证用户可以读取他人公开文件的内容.
	PublicRead bool `mapstructure:"public_read"`
}

// OwnerOnlyPublish 发布操作是否需要所有者身份.
func (c *FilesConfig) OwnerOnlyPublish() bool {
	return c.PublishScope == PublishScopeOwner
}

func (c *FilesConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("files.publish_scope", PublishScopeAny)
	v.SetDefault("files.public_read", false)
}
