// Package jobs 负责注册与实现业务定时任务（基于 scheduler）.
package jobs

import (
	"context"
	"fmt"

	"github.com/yeisme/filevault/pkg/configs"
	"github.com/yeisme/filevault/pkg/internal/service"
	"github.com/yeisme/filevault/pkg/scheduler"
)

// Reconciler 内容一致性巡检.
type Reconciler interface {
	Run(ctx context.Context) (service.ReconcileReport, error)
}

// RegisterCronJobs 配置业务定时任务：
//   - 按 jobs.reconcile_cron（默认每小时）巡检内容缺失的记录
func RegisterCronJobs(sched *scheduler.Scheduler, cfg configs.JobsConfig, reconciler Reconciler) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if !cfg.Enabled {
		return nil
	}

	return sched.AddCron(JobContentReconcile, cfg.ReconcileCron, func(ctx context.Context) error {
		_, err := reconciler.Run(ctx)
		return err
	})
}
