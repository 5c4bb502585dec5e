package testutil

import (
	"context"

	"github.com/questx-lab/eventreward/internal/model"
)

type MockUserCaller struct {
	GetSnapshotFunc func(ctx context.Context, userID string) (*model.UserSnapshot, error)
	GiveRewardsFunc func(ctx context.Context, userID string, rewards []model.Reward) (*model.Balance, error)
}

func (m *MockUserCaller) GetSnapshot(ctx context.Context, userID string) (*model.UserSnapshot, error) {
	if m.GetSnapshotFunc != nil {
		return m.GetSnapshotFunc(ctx, userID)
	}

	return &model.UserSnapshot{ID: userID}, nil
}

func (m *MockUserCaller) GiveRewards(
	ctx context.Context, userID string, rewards []model.Reward,
) (*model.Balance, error) {
	if m.GiveRewardsFunc != nil {
		return m.GiveRewardsFunc(ctx, userID, rewards)
	}

	return &model.Balance{}, nil
}

func (m *MockUserCaller) Close() {}
