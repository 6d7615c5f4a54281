package jobs_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/filevault/pkg/configs"
	"github.com/yeisme/filevault/pkg/internal/jobs"
	"github.com/yeisme/filevault/pkg/internal/service"
	"github.com/yeisme/filevault/pkg/scheduler"
)

type countingReconciler struct{ runs atomic.Int32 }

func (r *countingReconciler) Run(context.Context) (service.ReconcileReport, error) {
	r.runs.Add(1)
	return service.ReconcileReport{}, nil
}

func TestRegisterCronJobs(t *testing.T) {
	sched, err := scheduler.NewScheduler()
	require.NoError(t, err)

	sched.Start()
	t.Cleanup(func() { _ = sched.Stop() })

	rec := &countingReconciler{}
	require.NoError(t, jobs.RegisterCronJobs(sched, configs.JobsConfig{Enabled: true, ReconcileCron: "0 * * * *"}, rec))

	infos := sched.GetJobInfos()
	require.Len(t, infos, 1)
	assert.Equal(t, jobs.JobContentReconcile, infos[0].Name)

	require.NoError(t, sched.RunNow(jobs.JobContentReconcile))
	assert.Eventually(t, func() bool { return rec.runs.Load() == 1 }, 5*time.Second, 20*time.Millisecond)
}

func TestRegisterCronJobsDisabled(t *testing.T) {
	sched, err := scheduler.NewScheduler()
	require.NoError(t, err)

	require.NoError(t, jobs.RegisterCronJobs(sched, configs.JobsConfig{}, &countingReconciler{}))
	assert.Empty(t, sched.GetJobInfos())
	assert.Error(t, jobs.RegisterCronJobs(nil, configs.JobsConfig{Enabled: true}, nil))
}
