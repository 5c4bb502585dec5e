package cron

import (
	"context"
	"time"

	"github.com/questx-lab/eventreward/internal/repository"
	"github.com/questx-lab/eventreward/pkg/xcontext"
)

// LockCleanupCronJob deletes claim locks older than their ttl. Expired locks
// are already ignored when acquiring, this job only keeps the table small.
type LockCleanupCronJob struct {
	lockRepo repository.ClaimLockRepository
	ttl      time.Duration
	interval time.Duration
}

func NewLockCleanupCronJob(
	lockRepo repository.ClaimLockRepository,
	ttl time.Duration,
	interval time.Duration,
) *LockCleanupCronJob {
	return &LockCleanupCronJob{lockRepo: lockRepo, ttl: ttl, interval: interval}
}

func (job *LockCleanupCronJob) Do(ctx context.Context) {
	n, err := job.lockRepo.DeleteExpired(ctx, time.Now().Add(-job.ttl))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete expired claim locks: %v", err)
		return
	}

	if n > 0 {
		xcontext.Logger(ctx).Infof("Deleted %d expired claim locks", n)
	}
}

func (job *LockCleanupCronJob) RunNow() bool {
	return true
}

func (job *LockCleanupCronJob) Next() time.Time {
	return time.Now().Add(job.interval)
}
