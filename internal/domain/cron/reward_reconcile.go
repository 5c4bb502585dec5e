package cron

import (
	"context"
	"errors"
	"time"

	"github.com/questx-lab/eventreward/internal/client"
	"github.com/questx-lab/eventreward/internal/common"
	"github.com/questx-lab/eventreward/internal/model"
	"github.com/questx-lab/eventreward/internal/repository"
	"github.com/questx-lab/eventreward/pkg/xcontext"
	"gorm.io/gorm"
)

// RewardReconcileCronJob gives rewards of claims which were recorded as
// claimed but whose rewards were never applied, for example because the user
// service was down. A claim younger than grace may still be in progress and is
// skipped.
type RewardReconcileCronJob struct {
	claimHistoryRepo repository.ClaimHistoryRepository
	eventRepo        repository.EventRepository
	userCaller       client.UserCaller
	interval         time.Duration
	grace            time.Duration
	batch            int
}

func NewRewardReconcileCronJob(
	claimHistoryRepo repository.ClaimHistoryRepository,
	eventRepo repository.EventRepository,
	userCaller client.UserCaller,
	interval time.Duration,
	grace time.Duration,
	batch int,
) *RewardReconcileCronJob {
	return &RewardReconcileCronJob{
		claimHistoryRepo: claimHistoryRepo,
		eventRepo:        eventRepo,
		userCaller:       userCaller,
		interval:         interval,
		grace:            grace,
		batch:            batch,
	}
}

func (job *RewardReconcileCronJob) Do(ctx context.Context) {
	histories, err := job.claimHistoryRepo.GetNotRewarded(ctx, time.Now().Add(-job.grace), job.batch)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get not rewarded claim histories: %v", err)
		return
	}

	for _, history := range histories {
		result := job.reconcile(ctx, history.ID, history.EventID, history.UserID)
		common.PromCounters[common.RewardReconcileTotal].WithLabelValues(result).Inc()
	}
}

func (job *RewardReconcileCronJob) reconcile(ctx context.Context, historyID, eventID, userID string) string {
	event, err := job.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Warnf("Claim %s refers to a deleted event %s", historyID, eventID)
			return "skipped"
		}

		xcontext.Logger(ctx).Errorf("Cannot get event %s: %v", eventID, err)
		return "failed"
	}

	// The claimed history is marked before giving rewards, so a crash between
	// both steps never gives the rewards twice.
	if err := job.claimHistoryRepo.MarkRewarded(ctx, historyID, time.Now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "skipped"
		}

		xcontext.Logger(ctx).Errorf("Cannot mark claim %s as rewarded: %v", historyID, err)
		return "failed"
	}

	if _, err := job.userCaller.GiveRewards(ctx, userID, model.ConvertRewards(event.Rewards)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot give rewards of claim %s, need a manual fix: %v", historyID, err)
		return "failed"
	}

	xcontext.Logger(ctx).Infof("Gave rewards of claim %s to user %s", historyID, userID)
	return "success"
}

func (job *RewardReconcileCronJob) RunNow() bool {
	return false
}

func (job *RewardReconcileCronJob) Next() time.Time {
	return time.Now().Add(job.interval)
}
