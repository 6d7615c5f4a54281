// Package configs 管理 filevault 的应用配置，包括服务端口、文档存储、会话存储、
// 内容存储、事件队列以及可观测性相关设置.
// configs 包支持多种配置格式（YAML、JSON、TOML、dotenv）并启用热重载.
//
// Example:
//
//	err := configs.InitConfig("./")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	config := configs.GetConfig()
//	fmt.Println(config.Server.Port)
//
// Example accessing DB config:
//
//	dbConfig := configs.GetConfig().DB
//	if dbConfig.IsMongo() {
//		fmt.Println("URI:", dbConfig.GetMongoURI())
//	} else {
//		fmt.Println("DSN:", dbConfig.GetDSN())
//	}
//
// Example accessing session (KV) config:
//
//	kvConfig := configs.GetConfig().KV
//	fmt.Println("KV Type:", kvConfig.GetKVType())
package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// AppVersion 当前应用版本，构建时可通过 -ldflags 覆盖.
var AppVersion = "0.1.0"

// EnvPrefix 环境变量前缀，例如 FILEVAULT_SERVER_PORT.
const EnvPrefix = "FILEVAULT"

type (
	// AppConfig 全局应用程序配置.
	AppConfig struct {
		Server         ServerConfig         `mapstructure:"server"`          // ServerConfig 服务器端口、超时等
		Log            LogConfig            `mapstructure:"log"`             // LogConfig 日志相关配置
		DB             DBConfig             `mapstructure:"db"`              // DBConfig 文档存储配置
		KV             KVConfig             `mapstructure:"kv"`              // KVConfig 会话存储配置
		Content        ContentConfig        `mapstructure:"content"`         // ContentConfig 文件内容存储配置
		MQ             MQConfig             `mapstructure:"mq"`              // MQConfig 消息队列配置
		Events         EventsConfig         `mapstructure:"events"`          // EventsConfig 事件发布开关
		Auth           AuthConfig           `mapstructure:"auth"`            // AuthConfig 会话令牌相关配置
		Files          FilesConfig          `mapstructure:"files"`           // FilesConfig 文件访问策略
		Metrics        MetricsConfig        `mapstructure:"metrics"`         // MetricsConfig 监控指标
		Tracing        TracingConfig        `mapstructure:"tracing"`         // TracingConfig 链路追踪
		RateLimit      RateLimitConfig      `mapstructure:"rate_limit"`      // RateLimitConfig 限流
		CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"` // CircuitBreakerConfig 熔断
		Jobs           JobsConfig           `mapstructure:"jobs"`            // JobsConfig 定时任务
	}
)

var (
	// globalConfig 全局配置实例.
	globalConfig AppConfig
	// appViper 全局 Viper 实例.
	appViper *viper.Viper
)

// InitConfig 加载应用程序配置，支持多种格式(yaml、json、toml、dotenv)并启用热重载.
// 找不到配置文件时仅使用默认值与环境变量.
func InitConfig(path string) error {
	appViper = viper.New()
	// 设置默认值
	setAllDefaults(appViper)

	// 检查path是否是文件
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		// 是文件，使用SetConfigFile，Viper会自动检测类型
		appViper.SetConfigFile(path)
	} else {
		// 是目录，设置配置名和路径
		appViper.SetConfigName("config")
		appViper.AddConfigPath(path)
		appViper.AddConfigPath(filepath.Join(path, "configs"))

		exts := []string{"yaml", "yml", "json", "toml", "env", "dotenv"}

		for _, ext := range exts {
			cfg := filepath.Join(path, "config."+ext)
			if _, err := os.Stat(cfg); err == nil {
				appViper.SetConfigFile(cfg)

				break
			}
		}
	}

	appViper.SetEnvPrefix(EnvPrefix)
	appViper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	appViper.AutomaticEnv()

	// 读取配置
	if err := appViper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	// 解析到全局配置
	if err := appViper.Unmarshal(&globalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	reloadConfigs(appViper, globalConfig.Server.ReloadConfig)

	return nil
}

// Load 从 viper 实例解析出一份独立的配置，不影响全局配置. 测试和子命令使用.
func Load(v *viper.Viper) (*AppConfig, error) {
	setAllDefaults(v)

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Default 返回仅包含默认值的配置.
func Default() *AppConfig {
	cfg, err := Load(viper.New())
	if err != nil {
		// 默认值总能被解析
		panic(err)
	}

	return cfg
}

// setAllDefaults 设置所有配置的默认值.
func setAllDefaults(v *viper.Viper) {
	var (
		serverConfig  ServerConfig
		logConfig     LogConfig
		dbConfig      DBConfig
		kvConfig      KVConfig
		contentConfig ContentConfig
		mqConfig      MQConfig
		eventsConfig  EventsConfig
		authConfig    AuthConfig
		filesConfig   FilesConfig
		metricsConfig MetricsConfig
		tracingConfig TracingConfig
		rlConfig      RateLimitConfig
		cbConfig      CircuitBreakerConfig
		jobsConfig    JobsConfig
	)

	serverConfig.setDefaults(v)
	logConfig.setDefaults(v)
	dbConfig.setDefaults(v)
	kvConfig.setDefaults(v)
	contentConfig.setDefaults(v)
	mqConfig.setDefaults(v)
	eventsConfig.setDefaults(v)
	authConfig.setDefaults(v)
	filesConfig.setDefaults(v)
	metricsConfig.setDefaults(v)
	tracingConfig.setDefaults(v)
	rlConfig.setDefaults(v)
	cbConfig.setDefaults(v)
	jobsConfig.setDefaults(v)
}

func reloadConfigs(v *viper.Viper, isHotReload bool) {
	if !isHotReload || v.ConfigFileUsed() == "" {
		return
	}
	// 启用配置热重载
	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Println("Config file changed:", e.Name)
		fmt.Println("Reloading configuration...")

		if err := v.Unmarshal(&globalConfig); err != nil {
			fmt.Printf("Error reloading config: %v\n", err)
		}
	})
	v.WatchConfig()
}

// GetConfig 返回全局配置实例.
func GetConfig() *AppConfig {
	return &globalConfig
}

// GetViper 返回全局 Viper 实例，未初始化时为 nil.
func GetViper() *viper.Viper {
	return appViper
}
