package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/questx-lab/eventreward/internal/entity"
	"github.com/questx-lab/eventreward/pkg/xcontext"
	"gorm.io/gorm"
)

type GetListEventFilter struct {
	StartDate  time.Time
	OnlyPublic bool
	Limit      int
}

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	GetList(ctx context.Context, filter GetListEventFilter) ([]entity.Event, error)
	UpdateRewards(ctx context.Context, id string, rewards []entity.Reward, limit sql.NullInt64) error
	ConsumeRewardLimit(ctx context.Context, id string) (sql.NullInt64, error)
}

type eventRepository struct{}

func NewEventRepository() *eventRepository {
	return &eventRepository{}
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	return xcontext.DB(ctx).Create(event).Error
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	var result entity.Event
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *eventRepository) GetList(ctx context.Context, filter GetListEventFilter) ([]entity.Event, error) {
	var result []entity.Event
	tx := xcontext.DB(ctx).Where("start_time >= ?", filter.StartDate)
	if filter.OnlyPublic {
		tx = tx.Where("is_public=?", true)
	}

	if err := tx.Order("start_time ASC").Limit(filter.Limit).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *eventRepository) UpdateRewards(
	ctx context.Context, id string, rewards []entity.Reward, limit sql.NullInt64,
) error {
	return xcontext.DB(ctx).Model(&entity.Event{}).
		Where("id=?", id).
		Updates(map[string]any{
			"rewards":      entity.Array[entity.Reward](rewards),
			"reward_limit": limit,
		}).Error
}

// ConsumeRewardLimit decrements the remaining reward limit of the event and
// returns the value after decrementing. It must run inside a transaction, the
// caller rolls it back when the returned value is negative. An event without
// limit is left untouched and the returned value is invalid.
func (r *eventRepository) ConsumeRewardLimit(ctx context.Context, id string) (sql.NullInt64, error) {
	tx := xcontext.DB(ctx).Model(&entity.Event{}).
		Where("id=? AND reward_limit IS NOT NULL", id).
		UpdateColumn("reward_limit", gorm.Expr("reward_limit-?", 1))
	if tx.Error != nil {
		return sql.NullInt64{}, tx.Error
	}

	var event entity.Event
	err := xcontext.DB(ctx).Select("reward_limit").Take(&event, "id=?", id).Error
	if err != nil {
		return sql.NullInt64{}, err
	}

	return event.RewardLimit, nil
}
