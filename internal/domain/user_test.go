package domain

import (
	"database/sql"
	"testing"
	"time"

	"github.com/questx-lab/eventreward/internal/entity"
	"github.com/questx-lab/eventreward/internal/model"
	"github.com/questx-lab/eventreward/internal/repository"
	"github.com/questx-lab/eventreward/pkg/errorx"
	"github.com/questx-lab/eventreward/pkg/testutil"
	"github.com/questx-lab/eventreward/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_userDomain_Create(t *testing.T) {
	ctx := testutil.NewMockContext()
	userRepo := repository.NewUserRepository()
	d := NewUserDomain(userRepo)

	resp, err := d.Create(ctx, &model.CreateUserRequest{Name: "foo"})
	require.NoError(t, err)

	user, err := userRepo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.Equal(t, entity.UserRoleUser, user.Role)
	require.Equal(t, 1, user.ConsecutiveLoginCount)
	require.True(t, user.LastLoginAt.Valid)

	resp, err = d.Create(ctx, &model.CreateUserRequest{Name: "bar", Role: "operator"})
	require.NoError(t, err)
	user, err = userRepo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.Equal(t, entity.UserRoleOperator, user.Role)

	_, err = d.Create(ctx, &model.CreateUserRequest{Name: "baz", Role: "god"})
	require.True(t, errorx.Is(err, errorx.BadRequest), "got %v", err)
}

func Test_userDomain_GiveRewards(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	userRepo := repository.NewUserRepository()
	d := NewUserDomain(userRepo)

	rewards := []model.Reward{
		{Type: "coin", Data: map[string]any{"quantity": 5}},
		{Type: "coin", Data: map[string]any{"quantity": 5}},
		{Type: "cash", Data: map[string]any{"quantity": 10}},
		{Type: "item", Data: map[string]any{"item_id": "sword1", "quantity": 2}},
		{Type: "item", Data: map[string]any{"item_id": "health_potion"}},
		{Type: "coupon", Data: map[string]any{"coupon_id": "SALE10", "quantity": 1}},
	}

	resp, err := d.GiveRewards(ctx, &model.GiveRewardsRequest{UserID: testutil.User2.ID, Rewards: rewards})
	require.NoError(t, err)
	require.Equal(t, model.Balance{
		Cash:  10,
		Coins: 10,
		Inventory: []model.InventoryItem{
			{ItemID: "sword1", ItemType: "weapon", Quantity: 3},
			{ItemID: "health_potion", ItemType: "consumable", Quantity: 1},
		},
		Coupons: []model.Coupon{{CouponID: "SALE10", Quantity: 1}},
	}, resp.Balance)

	// The balance is persisted.
	snapshot, err := d.GetSnapshot(ctx, &model.GetUserSnapshotRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.Equal(t, resp.Balance, snapshot.User.Balance)
	require.False(t, xcontext.HasDBTransaction(ctx))
}

func Test_userDomain_GiveRewards_Error(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	userRepo := repository.NewUserRepository()
	d := NewUserDomain(userRepo)

	tests := []struct {
		name string
		req  *model.GiveRewardsRequest
		code errorx.Code
	}{
		{
			name: "empty user id",
			req:  &model.GiveRewardsRequest{},
			code: errorx.BadRequest,
		},
		{
			name: "not found user",
			req: &model.GiveRewardsRequest{
				UserID:  "unknown",
				Rewards: []model.Reward{{Type: "coin", Data: map[string]any{"quantity": 1}}},
			},
			code: errorx.NotFound,
		},
		{
			name: "invalid reward",
			req: &model.GiveRewardsRequest{
				UserID:  testutil.User1.ID,
				Rewards: []model.Reward{{Type: "item", Data: map[string]any{"item_id": "laser1"}}},
			},
			code: errorx.BadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.GiveRewards(ctx, tt.req)
			require.True(t, errorx.Is(err, tt.code), "got %v", err)
		})
	}

	user, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.Cash, user.Cash)
}

func Test_userDomain_GetSnapshot_Banned(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := NewUserDomain(repository.NewUserRepository())

	snapshot, err := d.GetSnapshot(ctx, &model.GetUserSnapshotRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.Equal(t, int64(50), snapshot.User.Cash)
	require.Equal(t, 3, snapshot.User.ConsecutiveLoginCount)
	require.NotNil(t, snapshot.User.LastLoginAt)

	_, err = d.Ban(ctx, &model.BanUserRequest{
		UserID: testutil.User1.ID,
		Until:  time.Now().Add(time.Hour).Format(model.DefaultTimeLayout),
	})
	require.NoError(t, err)

	_, err = d.GetSnapshot(ctx, &model.GetUserSnapshotRequest{UserID: testutil.User1.ID})
	require.True(t, errorx.Is(err, errorx.PermissionDenied), "got %v", err)

	// A ban in the past has no effect.
	_, err = d.Ban(ctx, &model.BanUserRequest{
		UserID: testutil.User1.ID,
		Until:  time.Now().Add(-time.Hour).Format(model.DefaultTimeLayout),
	})
	require.NoError(t, err)

	_, err = d.GetSnapshot(ctx, &model.GetUserSnapshotRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)

	_, err = d.GetSnapshot(ctx, &model.GetUserSnapshotRequest{UserID: "unknown"})
	require.True(t, errorx.Is(err, errorx.NotFound), "got %v", err)

	_, err = d.Ban(ctx, &model.BanUserRequest{UserID: testutil.User1.ID, Until: "tomorrow"})
	require.True(t, errorx.Is(err, errorx.BadRequest), "got %v", err)
}

func Test_userDomain_RecordLogin(t *testing.T) {
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	tests := []struct {
		name            string
		lastLoginAt     sql.NullTime
		consecutive     int
		todayCount      int
		wantConsecutive int
		wantTodayCount  int
	}{
		{
			name:            "first login",
			lastLoginAt:     sql.NullTime{},
			wantConsecutive: 1,
			wantTodayCount:  1,
		},
		{
			name:            "same day",
			lastLoginAt:     sql.NullTime{Valid: true, Time: today.Add(time.Second)},
			consecutive:     2,
			todayCount:      1,
			wantConsecutive: 2,
			wantTodayCount:  2,
		},
		{
			name:            "next day",
			lastLoginAt:     sql.NullTime{Valid: true, Time: today.Add(-time.Hour)},
			consecutive:     2,
			todayCount:      3,
			wantConsecutive: 3,
			wantTodayCount:  1,
		},
		{
			name:            "missed a day",
			lastLoginAt:     sql.NullTime{Valid: true, Time: today.Add(-25 * time.Hour)},
			consecutive:     5,
			todayCount:      1,
			wantConsecutive: 1,
			wantTodayCount:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.NewMockContext()
			userRepo := repository.NewUserRepository()
			require.NoError(t, userRepo.Create(ctx, &entity.User{
				Base:                  entity.Base{ID: "user"},
				Role:                  entity.UserRoleUser,
				LastLoginAt:           tt.lastLoginAt,
				ConsecutiveLoginCount: tt.consecutive,
				TodayLoginCount:       tt.todayCount,
			}))

			resp, err := NewUserDomain(userRepo).RecordLogin(ctx, &model.RecordLoginRequest{UserID: "user"})
			require.NoError(t, err)
			require.Equal(t, tt.wantConsecutive, resp.ConsecutiveLoginCount)
			require.Equal(t, tt.wantTodayCount, resp.TodayLoginCount)

			user, err := userRepo.GetByID(ctx, "user")
			require.NoError(t, err)
			require.Equal(t, tt.wantConsecutive, user.ConsecutiveLoginCount)
			require.True(t, user.LastLoginAt.Valid)
		})
	}
}
