package domain

import (
	"context"

	"github.com/questx-lab/eventreward/internal/model"
	"github.com/questx-lab/eventreward/pkg/xcontext"
)

// UserRPCService exposes UserDomain to the json-rpc server. Method names are
// called as <rpc_name>_<method>, for example user_giveRewards.
type UserRPCService struct {
	rootCtx    context.Context
	userDomain UserDomain
}

func NewUserRPCService(rootCtx context.Context, userDomain UserDomain) *UserRPCService {
	return &UserRPCService{rootCtx: rootCtx, userDomain: userDomain}
}

func (s *UserRPCService) GetSnapshot(ctx context.Context, userID string) (*model.UserSnapshot, error) {
	resp, err := s.userDomain.GetSnapshot(
		xcontext.Inherit(ctx, s.rootCtx), &model.GetUserSnapshotRequest{UserID: userID})
	if err != nil {
		return nil, err
	}

	return &resp.User, nil
}

func (s *UserRPCService) GiveRewards(ctx context.Context, req model.GiveRewardsRequest) (*model.Balance, error) {
	resp, err := s.userDomain.GiveRewards(xcontext.Inherit(ctx, s.rootCtx), &req)
	if err != nil {
		return nil, err
	}

	return &resp.Balance, nil
}

func (s *UserRPCService) Create(
	ctx context.Context, req model.CreateUserRequest,
) (*model.CreateUserResponse, error) {
	return s.userDomain.Create(xcontext.Inherit(ctx, s.rootCtx), &req)
}

func (s *UserRPCService) RecordLogin(ctx context.Context, userID string) (*model.RecordLoginResponse, error) {
	return s.userDomain.RecordLogin(
		xcontext.Inherit(ctx, s.rootCtx), &model.RecordLoginRequest{UserID: userID})
}

func (s *UserRPCService) Ban(ctx context.Context, req model.BanUserRequest) error {
	_, err := s.userDomain.Ban(xcontext.Inherit(ctx, s.rootCtx), &req)
	return err
}

// EventRPCService exposes claims to other services through json-rpc. The
// caller is trusted to pass the id of an authenticated user.
type EventRPCService struct {
	rootCtx          context.Context
	eventClaimDomain EventClaimDomain
}

func NewEventRPCService(rootCtx context.Context, eventClaimDomain EventClaimDomain) *EventRPCService {
	return &EventRPCService{rootCtx: rootCtx, eventClaimDomain: eventClaimDomain}
}

func (s *EventRPCService) ClaimEventRewards(
	ctx context.Context, eventID, userID string,
) (*model.ClaimEventRewardsResponse, error) {
	ctx = xcontext.WithRequestUserID(xcontext.Inherit(ctx, s.rootCtx), userID)
	return s.eventClaimDomain.Claim(ctx, &model.ClaimEventRewardsRequest{EventID: eventID})
}

func (s *EventRPCService) GetClaimHistories(
	ctx context.Context, req model.GetClaimHistoriesRequest,
) ([]model.ClaimHistory, error) {
	resp, err := s.eventClaimDomain.GetHistories(xcontext.Inherit(ctx, s.rootCtx), &req)
	if err != nil {
		return nil, err
	}

	return resp.Histories, nil
}
