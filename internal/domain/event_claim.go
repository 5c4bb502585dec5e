package domain

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/questx-lab/eventreward/internal/client"
	"github.com/questx-lab/eventreward/internal/common"
	"github.com/questx-lab/eventreward/internal/domain/eventclaim"
	"github.com/questx-lab/eventreward/internal/entity"
	"github.com/questx-lab/eventreward/internal/model"
	"github.com/questx-lab/eventreward/internal/repository"
	"github.com/questx-lab/eventreward/pkg/errorx"
	"github.com/questx-lab/eventreward/pkg/pubsub"
	"github.com/questx-lab/eventreward/pkg/xcontext"
	"gorm.io/gorm"
)

type EventClaimDomain interface {
	Claim(context.Context, *model.ClaimEventRewardsRequest) (*model.ClaimEventRewardsResponse, error)
	GetHistories(context.Context, *model.GetClaimHistoriesRequest) (*model.GetClaimHistoriesResponse, error)
}

type eventClaimDomain struct {
	eventRepo        repository.EventRepository
	claimHistoryRepo repository.ClaimHistoryRepository
	locker           eventclaim.Locker
	userCaller       client.UserCaller
	publisher        pubsub.Publisher
	idGenerator      *snowflake.Node
}

func NewEventClaimDomain(
	eventRepo repository.EventRepository,
	claimHistoryRepo repository.ClaimHistoryRepository,
	locker eventclaim.Locker,
	userCaller client.UserCaller,
	publisher pubsub.Publisher,
	idGenerator *snowflake.Node,
) *eventClaimDomain {
	return &eventClaimDomain{
		eventRepo:        eventRepo,
		claimHistoryRepo: claimHistoryRepo,
		locker:           locker,
		userCaller:       userCaller,
		publisher:        publisher,
		idGenerator:      idGenerator,
	}
}

// Claim grants the rewards of an event to the request user. At most one claim
// of a user on an event succeeds. Every attempt which passed the request
// validation is recorded as a claim history.
func (d *eventClaimDomain) Claim(
	ctx context.Context, req *model.ClaimEventRewardsRequest,
) (*model.ClaimEventRewardsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Need authenticated user")
	}

	if req.EventID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty event id")
	}

	resp, err := d.lockAndClaim(ctx, req.EventID, userID)
	if err != nil {
		d.recordFailure(ctx, req.EventID, userID, err)
	}

	common.IncreaseClaimCounter(err)
	return resp, err
}

func (d *eventClaimDomain) lockAndClaim(
	ctx context.Context, eventID, userID string,
) (*model.ClaimEventRewardsResponse, error) {
	lock, err := d.locker.Acquire(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, eventclaim.ErrLockHeld) {
			return nil, errorx.New(errorx.AlreadyExists, "Another request is already claiming this reward")
		}

		xcontext.Logger(ctx).Errorf("Cannot acquire the claim lock: %v", err)
		return nil, errorx.New(errorx.Internal, "Cannot acquire the claim lock")
	}

	defer func() {
		if err := lock.Release(ctx); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot release the claim lock of %s:%s: %v", eventID, userID, err)
		}
	}()

	return d.claim(ctx, eventID, userID)
}

func (d *eventClaimDomain) claim(
	ctx context.Context, eventID, userID string,
) (*model.ClaimEventRewardsResponse, error) {
	event, err := d.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.New(errorx.Internal, "Cannot get event")
	}

	if !event.IsPublic {
		return nil, errorx.New(errorx.NotFound, "Not found event")
	}

	now := time.Now()
	if !now.Before(event.EndTime) {
		return nil, errorx.New(errorx.PermissionDenied, "The event has ended")
	}

	if event.RewardLimit.Valid && event.RewardLimit.Int64 <= 0 {
		return nil, errorx.New(errorx.Gone, "The event rewards are exhausted")
	}

	claimed, err := d.claimHistoryRepo.HasClaimed(ctx, eventID, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check claim histories: %v", err)
		return nil, errorx.New(errorx.Internal, "Cannot check claim histories")
	}

	if claimed {
		return nil, errorx.New(errorx.AlreadyExists, "Rewards have already been claimed")
	}

	user, err := d.userCaller.GetSnapshot(ctx, userID)
	if err != nil {
		var errx errorx.Error
		if errors.As(err, &errx) && errx.Code != errorx.Unknown.Code {
			return nil, errx
		}

		xcontext.Logger(ctx).Errorf("Cannot get user snapshot: %v", err)
		return nil, errorx.New(errorx.Internal, "Cannot get the user")
	}

	if !eventclaim.IsEligible(now, *user, event.Challenge) {
		return nil, errorx.New(errorx.PermissionDenied, "The challenge is not satisfied")
	}

	if err := d.consumeRewardLimit(ctx, eventID); err != nil {
		return nil, err
	}

	history := &entity.ClaimHistory{
		ID:      d.idGenerator.Generate().String(),
		EventID: eventID,
		UserID:  userID,
		Status:  entity.Claimed,
	}
	if err := d.claimHistoryRepo.Create(ctx, history); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create claimed history: %v", err)
		return nil, errorx.New(errorx.Internal, "Cannot record the claim")
	}

	// From here the user is entitled to the rewards. If applying them fails,
	// the claimed history stays without rewarded_at for reconciliation.
	balance, err := d.userCaller.GiveRewards(ctx, userID, model.ConvertRewards(event.Rewards))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot give rewards of claim %s: %v", history.ID, err)
		return nil, errorx.New(errorx.Internal, "Rewards are claimed but cannot be given now")
	}

	if err := d.claimHistoryRepo.MarkRewarded(ctx, history.ID, time.Now()); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot mark claim %s as rewarded: %v", history.ID, err)
	}

	d.publishClaimed(ctx, history, event)

	return &model.ClaimEventRewardsResponse{HistoryID: history.ID, Balance: *balance}, nil
}

// consumeRewardLimit takes one reward of the event in a transaction. The
// transaction is rolled back if the limit went below zero.
func (d *eventClaimDomain) consumeRewardLimit(ctx context.Context, eventID string) error {
	ctx = xcontext.WithDBTransaction(ctx)
	remaining, err := d.eventRepo.ConsumeRewardLimit(ctx, eventID)
	if err != nil {
		xcontext.WithRollbackDBTransaction(ctx)
		xcontext.Logger(ctx).Errorf("Cannot consume reward limit: %v", err)
		return errorx.New(errorx.Internal, "Cannot consume the reward limit")
	}

	if remaining.Valid && remaining.Int64 < 0 {
		xcontext.WithRollbackDBTransaction(ctx)
		return errorx.New(errorx.Gone, "The event rewards are exhausted")
	}

	if _, err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit reward limit: %v", err)
		return errorx.New(errorx.Internal, "Cannot consume the reward limit")
	}

	return nil
}

func (d *eventClaimDomain) recordFailure(ctx context.Context, eventID, userID string, cause error) {
	history := &entity.ClaimHistory{
		ID:           d.idGenerator.Generate().String(),
		EventID:      eventID,
		UserID:       userID,
		Status:       entity.ClaimFailed,
		FailureCause: cause.Error(),
	}

	if err := d.claimHistoryRepo.Create(ctx, history); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create failed claim history: %v", err)
	}
}

func (d *eventClaimDomain) publishClaimed(ctx context.Context, history *entity.ClaimHistory, event *entity.Event) {
	b, err := json.Marshal(model.EventRewardClaimedMessage{
		HistoryID: history.ID,
		EventID:   history.EventID,
		UserID:    history.UserID,
		Rewards:   model.ConvertRewards(event.Rewards),
		ClaimedAt: history.CreatedAt.Format(model.DefaultTimeLayout),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal claimed message: %v", err)
		return
	}

	err = d.publisher.Publish(ctx, model.EventRewardClaimedTopic, &pubsub.Pack{
		Key: []byte(history.UserID),
		Msg: b,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish claimed message: %v", err)
	}
}

func (d *eventClaimDomain) GetHistories(
	ctx context.Context, req *model.GetClaimHistoriesRequest,
) (*model.GetClaimHistoriesResponse, error) {
	filter := repository.GetListClaimHistoryFilter{TimeAt: req.TimeAt}
	switch req.Filter {
	case model.ClaimHistoryFilterAll:
	case model.ClaimHistoryFilterEventID:
		if req.EventID == "" {
			return nil, errorx.New(errorx.BadRequest, "Not allow empty event id")
		}
		filter.EventID = req.EventID
	case model.ClaimHistoryFilterUserID:
		if req.UserID == "" {
			return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
		}
		filter.UserID = req.UserID
	case model.ClaimHistoryFilterEventIDAndUserID:
		if req.EventID == "" || req.UserID == "" {
			return nil, errorx.New(errorx.BadRequest, "Not allow empty event id or user id")
		}
		filter.EventID = req.EventID
		filter.UserID = req.UserID
	default:
		return nil, errorx.New(errorx.BadRequest, "Invalid filter %s", req.Filter)
	}

	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}
	filter.Limit = req.Limit

	if filter.TimeAt.IsZero() {
		filter.TimeAt = time.Now()
	}

	histories, err := d.claimHistoryRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get claim histories: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.ClaimHistory{}
	for i := range histories {
		result = append(result, model.ConvertClaimHistory(&histories[i]))
	}

	return &model.GetClaimHistoriesResponse{Histories: result}, nil
}
