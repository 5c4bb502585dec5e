package cron

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/questx-lab/eventreward/pkg/testutil"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	runNow bool
	count  atomic.Int32
	target int32
	done   chan struct{}
}

func (job *countingJob) Do(context.Context) {
	if job.count.Add(1) == job.target {
		close(job.done)
	}
}

func (job *countingJob) RunNow() bool {
	return job.runNow
}

func (job *countingJob) Next() time.Time {
	return time.Now().Add(10 * time.Millisecond)
}

func TestCronJobManager(t *testing.T) {
	ctx := testutil.NewMockContext()
	immediate := &countingJob{runNow: true, target: 3, done: make(chan struct{})}
	delayed := &countingJob{runNow: false, target: 2, done: make(chan struct{})}

	manager := NewCronJobManager()
	manager.Register(immediate, delayed)

	stopped := make(chan struct{})
	go func() {
		manager.Start(ctx)
		close(stopped)
	}()

	for _, job := range []*countingJob{immediate, delayed} {
		select {
		case <-job.done:
		case <-time.After(5 * time.Second):
			t.Fatal("job was not run enough times")
		}
	}

	manager.Cancel(ctx)

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("manager did not stop")
	}

	require.GreaterOrEqual(t, immediate.count.Load(), int32(3))
	require.GreaterOrEqual(t, delayed.count.Load(), int32(2))
}
