package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/questx-lab/eventreward/internal/common"
	"github.com/questx-lab/eventreward/internal/domain/eventclaim"
	"github.com/questx-lab/eventreward/internal/entity"
	"github.com/questx-lab/eventreward/internal/model"
	"github.com/questx-lab/eventreward/internal/repository"
	"github.com/questx-lab/eventreward/pkg/errorx"
	"github.com/questx-lab/eventreward/pkg/xcontext"
	"gorm.io/gorm"
)

type EventDomain interface {
	Create(context.Context, *model.CreateEventRequest) (*model.CreateEventResponse, error)
	Get(context.Context, *model.GetEventRequest) (*model.GetEventResponse, error)
	GetList(context.Context, *model.GetListEventRequest) (*model.GetListEventResponse, error)
	GetRewards(context.Context, *model.GetEventRewardsRequest) (*model.GetEventRewardsResponse, error)
	UpdateRewards(context.Context, *model.UpdateEventRewardsRequest) (*model.UpdateEventRewardsResponse, error)
}

type eventDomain struct {
	eventRepo repository.EventRepository
}

func NewEventDomain(eventRepo repository.EventRepository) *eventDomain {
	return &eventDomain{eventRepo: eventRepo}
}

func (d *eventDomain) Create(
	ctx context.Context, req *model.CreateEventRequest,
) (*model.CreateEventResponse, error) {
	if err := common.VerifyRole(ctx, common.EventManagerRoles...); err != nil {
		return nil, err
	}

	if !req.StartTime.Before(req.EndTime) {
		return nil, errorx.New(errorx.BadRequest, "Invalid event time")
	}

	rewardLimit, err := parseRewardLimit(req.RewardLimit)
	if err != nil {
		return nil, err
	}

	challenge, err := eventclaim.ParseChallenge(ctx, req.Challenge)
	if err != nil {
		return nil, err
	}

	rewards, err := eventclaim.ParseRewards(ctx, req.Rewards)
	if err != nil {
		return nil, err
	}

	if len(rewards) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Event must have at least one reward")
	}

	event := &entity.Event{
		Base:        entity.Base{ID: uuid.NewString()},
		CreatorID:   xcontext.RequestUserID(ctx),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsPublic:    req.IsPublic,
		Challenge:   challenge,
		Rewards:     rewards,
		RewardLimit: rewardLimit,
	}

	if err := d.eventRepo.Create(ctx, event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create event: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateEventResponse{ID: event.ID}, nil
}

func (d *eventDomain) Get(ctx context.Context, req *model.GetEventRequest) (*model.GetEventResponse, error) {
	event, err := d.getVisibleEvent(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &model.GetEventResponse{Event: model.ConvertEvent(event)}, nil
}

func (d *eventDomain) GetList(
	ctx context.Context, req *model.GetListEventRequest,
) (*model.GetListEventResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Count == 0 {
		req.Count = apiCfg.DefaultLimit
	}

	if req.Count < 0 {
		return nil, errorx.New(errorx.BadRequest, "Count must be positive")
	}

	if req.Count > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of count (%d)", apiCfg.MaxLimit)
	}

	events, err := d.eventRepo.GetList(ctx, repository.GetListEventFilter{
		StartDate:  req.StartDate,
		OnlyPublic: common.VerifyRole(ctx, common.EventManagerRoles...) != nil,
		Limit:      req.Count,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of events: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Event{}
	for i := range events {
		result = append(result, model.ConvertEvent(&events[i]))
	}

	return &model.GetListEventResponse{Events: result}, nil
}

func (d *eventDomain) GetRewards(
	ctx context.Context, req *model.GetEventRewardsRequest,
) (*model.GetEventRewardsResponse, error) {
	event, err := d.getVisibleEvent(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	converted := model.ConvertEvent(event)
	return &model.GetEventRewardsResponse{
		Rewards:     converted.Rewards,
		RewardLimit: converted.RewardLimit,
	}, nil
}

func (d *eventDomain) UpdateRewards(
	ctx context.Context, req *model.UpdateEventRewardsRequest,
) (*model.UpdateEventRewardsResponse, error) {
	if err := common.VerifyRole(ctx, common.EventManagerRoles...); err != nil {
		return nil, err
	}

	if _, err := d.eventRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	rewardLimit, err := parseRewardLimit(req.RewardLimit)
	if err != nil {
		return nil, err
	}

	rewards, err := eventclaim.ParseRewards(ctx, req.Rewards)
	if err != nil {
		return nil, err
	}

	if len(rewards) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Event must have at least one reward")
	}

	if err := d.eventRepo.UpdateRewards(ctx, req.ID, rewards, rewardLimit); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update event rewards: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateEventRewardsResponse{}, nil
}

// getVisibleEvent returns the event if it is public or the request user can
// manage events.
func (d *eventDomain) getVisibleEvent(ctx context.Context, id string) (*entity.Event, error) {
	event, err := d.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	if !event.IsPublic && common.VerifyRole(ctx, common.EventManagerRoles...) != nil {
		return nil, errorx.New(errorx.NotFound, "Not found event")
	}

	return event, nil
}

func parseRewardLimit(limit *int64) (sql.NullInt64, error) {
	if limit == nil {
		return sql.NullInt64{}, nil
	}

	if *limit < 0 {
		return sql.NullInt64{}, errorx.New(errorx.BadRequest, "Reward limit must not be negative")
	}

	return sql.NullInt64{Valid: true, Int64: *limit}, nil
}
