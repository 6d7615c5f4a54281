package configs

import (
	"fmt"

	"github.com/spf13/viper"
)

// ContentType 文件内容存储后端.
type ContentType string

const (
	ContentLocal ContentType = "local"
	ContentS3    ContentType = "s3"

	DefaultFolderPath = "/tmp/files_manager" // 默认本地存储目录

	DefaultS3Endpoint        = "localhost:9000" // 默认S3端点
	DefaultS3AccessKeyID     = "minioadmin"     // 默认访问密钥ID
	DefaultS3SecretAccessKey = "minioadmin"     // 默认秘密访问密钥
	DefaultS3UseSSL          = false            // 默认是否使用SSL
	DefaultS3BucketName      = "filevault"      // 默认存储桶名称
	DefaultS3Region          = "us-east-1"      // 默认区域
)

// ContentConfig 文件内容存储配置.
type ContentConfig struct {
	Type  ContentType        `mapstructure:"type"  rule:"oneof=local s3"`
	Local LocalContentConfig `mapstructure:"local"`
	S3    S3Config           `mapstructure:"s3"`
}

// LocalContentConfig 本地磁盘存储配置.
type LocalContentConfig struct {
	FolderPath string `mapstructure:"folder_path" rule:"required"`
}

// S3Config MinIO S3存储配置.
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	BucketName      string `mapstructure:"bucket_name"`
	Region          string `mapstructure:"region"`
}

// GetEndpointURL 获取完整的端点URL.
func (c *S3Config) GetEndpointURL() string {
	scheme := "http"
	if c.UseSSL {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s", scheme, c.Endpoint)
}

// setDefaults 设置内容存储配置的默认值.
func (c *ContentConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("content.type", ContentLocal)
	v.SetDefault("content.local.folder_path", DefaultFolderPath)

	v.SetDefault("content.s3.endpoint", DefaultS3Endpoint)
	v.SetDefault("content.s3.access_key_id", DefaultS3AccessKeyID)
	v.SetDefault("content.s3.secret_access_key", DefaultS3SecretAccessKey)
	v.SetDefault("content.s3.use_ssl", DefaultS3UseSSL)
	v.SetDefault("content.s3.bucket_name", DefaultS3BucketName)
	v.SetDefault("content.s3.region", DefaultS3Region)
}
