package cron

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/questx-lab/eventreward/internal/entity"
	"github.com/questx-lab/eventreward/internal/model"
	"github.com/questx-lab/eventreward/internal/repository"
	"github.com/questx-lab/eventreward/pkg/testutil"
	"github.com/questx-lab/eventreward/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func createHistory(t *testing.T, ctx context.Context, history entity.ClaimHistory) {
	require.NoError(t, repository.NewClaimHistoryRepository().Create(ctx, &history))
}

func getHistory(t *testing.T, ctx context.Context, id string) entity.ClaimHistory {
	var history entity.ClaimHistory
	require.NoError(t, xcontext.DB(ctx).Where("id=?", id).Take(&history).Error)
	return history
}

func TestRewardReconcileCronJob(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	old := time.Now().Add(-time.Hour)
	createHistory(t, ctx, entity.ClaimHistory{
		ID: "stuck", CreatedAt: old, EventID: testutil.PublicEvent.ID,
		UserID: testutil.User1.ID, Status: entity.Claimed,
	})
	createHistory(t, ctx, entity.ClaimHistory{
		ID: "rewarded", CreatedAt: old, EventID: testutil.PublicEvent.ID,
		UserID: testutil.User2.ID, Status: entity.Claimed,
		RewardedAt: sql.NullTime{Valid: true, Time: old},
	})
	createHistory(t, ctx, entity.ClaimHistory{
		ID: "failed", CreatedAt: old, EventID: testutil.PublicEvent.ID,
		UserID: testutil.User2.ID, Status: entity.ClaimFailed, FailureCause: "CONFLICT",
	})
	createHistory(t, ctx, entity.ClaimHistory{
		ID: "recent", CreatedAt: time.Now(), EventID: testutil.LimitedEvent.ID,
		UserID: testutil.User1.ID, Status: entity.Claimed,
	})
	createHistory(t, ctx, entity.ClaimHistory{
		ID: "orphan", CreatedAt: old, EventID: "deleted_event",
		UserID: testutil.User1.ID, Status: entity.Claimed,
	})

	var given []string
	userCaller := &testutil.MockUserCaller{
		GiveRewardsFunc: func(ctx context.Context, userID string, rewards []model.Reward) (*model.Balance, error) {
			given = append(given, userID)
			require.Len(t, rewards, 1)
			require.Equal(t, "coin", rewards[0].Type)
			return &model.Balance{}, nil
		},
	}

	job := NewRewardReconcileCronJob(
		repository.NewClaimHistoryRepository(), repository.NewEventRepository(),
		userCaller, time.Minute, 5*time.Minute, 10)
	require.False(t, job.RunNow())

	job.Do(ctx)
	require.Equal(t, []string{testutil.User1.ID}, given)
	require.True(t, getHistory(t, ctx, "stuck").RewardedAt.Valid)
	require.False(t, getHistory(t, ctx, "recent").RewardedAt.Valid)
	require.False(t, getHistory(t, ctx, "orphan").RewardedAt.Valid)

	// Nothing is given twice.
	job.Do(ctx)
	require.Equal(t, []string{testutil.User1.ID}, given)
}

func TestRewardReconcileCronJob_GiveRewardsFailed(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	createHistory(t, ctx, entity.ClaimHistory{
		ID: "stuck", CreatedAt: time.Now().Add(-time.Hour), EventID: testutil.LimitedEvent.ID,
		UserID: testutil.User1.ID, Status: entity.Claimed,
	})

	calls := 0
	userCaller := &testutil.MockUserCaller{
		GiveRewardsFunc: func(context.Context, string, []model.Reward) (*model.Balance, error) {
			calls++
			return nil, errors.New("user service is down")
		},
	}

	job := NewRewardReconcileCronJob(
		repository.NewClaimHistoryRepository(), repository.NewEventRepository(),
		userCaller, time.Minute, time.Minute, 10)

	require.Equal(t, "failed", job.reconcile(ctx, "stuck", testutil.LimitedEvent.ID, testutil.User1.ID))
	require.Equal(t, 1, calls)

	// The claim stays marked and is not retried.
	require.True(t, getHistory(t, ctx, "stuck").RewardedAt.Valid)
	require.Equal(t, "skipped", job.reconcile(ctx, "stuck", testutil.LimitedEvent.ID, testutil.User1.ID))
	require.Equal(t, 1, calls)
}
