package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/filevault/pkg/scheduler"
)

func TestSchedulerRunNow(t *testing.T) {
	s, err := scheduler.NewScheduler()
	require.NoError(t, err)

	s.Start()
	t.Cleanup(func() { _ = s.Stop() })

	done := make(chan struct{}, 1)
	require.NoError(t, s.AddCron("ok", "0 * * * *", func(context.Context) error {
		done <- struct{}{}
		return nil
	}))
	require.NoError(t, s.AddCron("bad", "0 * * * *", func(context.Context) error {
		return errors.New("boom")
	}))

	assert.Error(t, s.AddCron("ok", "0 * * * *", func(context.Context) error { return nil }))
	assert.ErrorIs(t, s.RunNow("missing"), scheduler.ErrJobNotFound)

	require.NoError(t, s.RunNow("ok"))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run")
	}

	require.NoError(t, s.RunNow("bad"))
	require.Eventually(t, func() bool {
		info, err := s.GetJobInfoByName("bad")
		return err == nil && info.Status == scheduler.StatusError
	}, 5*time.Second, 20*time.Millisecond)

	require.Eventually(t, func() bool {
		info, err := s.GetJobInfoByName("ok")
		return err == nil && !info.LastSuccess.IsZero()
	}, 5*time.Second, 20*time.Millisecond)

	infos := s.GetJobInfos()
	require.Len(t, infos, 2)
	assert.Equal(t, "bad", infos[0].Name)
	assert.Equal(t, "boom", infos[0].Error)
	assert.False(t, infos[1].NextRun.IsZero())
}
