package configs

import "github.com/spf13/viper"

// JobsConfig 定时任务配置.
type JobsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// ReconcileCron 内容一致性巡检的 cron 表达式.
	ReconcileCron string `mapstructure:"reconcile_cron" rule:"required"`
	// ReconcileBatch 巡检时每批读取的记录数.
	ReconcileBatch int `mapstructure:"reconcile_batch" rule:"min=1,max=10000"`
}

func (c *JobsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("jobs.enabled", true)
	v.SetDefault("jobs.reconcile_cron", "0 * * * *")
	v.SetDefault("jobs.reconcile_batch", 200)
}
