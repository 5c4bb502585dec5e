package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/questx-lab/eventreward/internal/entity"
	"github.com/questx-lab/eventreward/pkg/testutil"
	"github.com/questx-lab/eventreward/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_eventRepository_ConsumeRewardLimit(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	eventRepo := NewEventRepository()

	remaining, err := eventRepo.ConsumeRewardLimit(ctx, testutil.LimitedEvent.ID)
	require.NoError(t, err)
	require.Equal(t, sql.NullInt64{Valid: true, Int64: 1}, remaining)

	remaining, err = eventRepo.ConsumeRewardLimit(ctx, testutil.LimitedEvent.ID)
	require.NoError(t, err)
	require.Equal(t, sql.NullInt64{Valid: true, Int64: 0}, remaining)

	// The caller sees a negative value and rolls back.
	txCtx := xcontext.WithDBTransaction(ctx)
	remaining, err = eventRepo.ConsumeRewardLimit(txCtx, testutil.LimitedEvent.ID)
	require.NoError(t, err)
	require.Equal(t, sql.NullInt64{Valid: true, Int64: -1}, remaining)
	xcontext.WithRollbackDBTransaction(txCtx)

	event, err := eventRepo.GetByID(ctx, testutil.LimitedEvent.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), event.RewardLimit.Int64)

	// Unlimited events are untouched.
	remaining, err = eventRepo.ConsumeRewardLimit(ctx, testutil.PublicEvent.ID)
	require.NoError(t, err)
	require.False(t, remaining.Valid)
}

func Test_eventRepository_GetList(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	eventRepo := NewEventRepository()

	events, err := eventRepo.GetList(ctx, GetListEventFilter{
		StartDate:  time.Now().Add(-90 * time.Minute),
		OnlyPublic: true,
		Limit:      10,
	})
	require.NoError(t, err)

	ids := []string{}
	for _, e := range events {
		require.True(t, e.IsPublic)
		ids = append(ids, e.ID)
	}
	require.ElementsMatch(t, []string{
		testutil.PublicEvent.ID,
		testutil.LimitedEvent.ID,
		testutil.CashChallengeEvent.ID,
	}, ids)

	events, err = eventRepo.GetList(ctx, GetListEventFilter{
		StartDate: time.Now().Add(-3 * time.Hour),
		Limit:     1,
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, testutil.EndedEvent.ID, events[0].ID)
}

func Test_eventRepository_UpdateRewards(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	eventRepo := NewEventRepository()

	rewards := []entity.Reward{
		{Type: entity.CouponReward, Data: entity.Map{"coupon_id": "SALE10", "quantity": float64(1)}},
	}
	err := eventRepo.UpdateRewards(ctx, testutil.PublicEvent.ID, rewards, sql.NullInt64{Valid: true, Int64: 3})
	require.NoError(t, err)

	event, err := eventRepo.GetByID(ctx, testutil.PublicEvent.ID)
	require.NoError(t, err)
	require.Equal(t, entity.Array[entity.Reward](rewards), event.Rewards)
	require.Equal(t, sql.NullInt64{Valid: true, Int64: 3}, event.RewardLimit)
	require.True(t, event.Challenge.IsZero())
}
