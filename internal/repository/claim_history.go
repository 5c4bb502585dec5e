package repository

import (
	"context"
	"time"

	"github.com/questx-lab/eventreward/internal/entity"
	"github.com/questx-lab/eventreward/pkg/xcontext"
	"gorm.io/gorm"
)

type GetListClaimHistoryFilter struct {
	EventID string
	UserID  string
	TimeAt  time.Time
	Limit   int
}

type ClaimHistoryRepository interface {
	Create(ctx context.Context, history *entity.ClaimHistory) error
	HasClaimed(ctx context.Context, eventID, userID string) (bool, error)
	GetList(ctx context.Context, filter GetListClaimHistoryFilter) ([]entity.ClaimHistory, error)
	GetNotRewarded(ctx context.Context, before time.Time, limit int) ([]entity.ClaimHistory, error)
	MarkRewarded(ctx context.Context, id string, at time.Time) error
}

type claimHistoryRepository struct{}

func NewClaimHistoryRepository() *claimHistoryRepository {
	return &claimHistoryRepository{}
}

func (r *claimHistoryRepository) Create(ctx context.Context, history *entity.ClaimHistory) error {
	return xcontext.DB(ctx).Create(history).Error
}

func (r *claimHistoryRepository) HasClaimed(ctx context.Context, eventID, userID string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.ClaimHistory{}).
		Where("event_id=? AND user_id=? AND status=?", eventID, userID, entity.Claimed).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *claimHistoryRepository) GetList(
	ctx context.Context, filter GetListClaimHistoryFilter,
) ([]entity.ClaimHistory, error) {
	var result []entity.ClaimHistory
	tx := xcontext.DB(ctx).Where("updated_at <= ?", filter.TimeAt)
	if filter.EventID != "" {
		tx = tx.Where("event_id=?", filter.EventID)
	}

	if filter.UserID != "" {
		tx = tx.Where("user_id=?", filter.UserID)
	}

	err := tx.Order("updated_at DESC").Limit(filter.Limit).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetNotRewarded returns CLAIMED histories created before the given time whose
// rewards have not been applied yet, oldest first.
func (r *claimHistoryRepository) GetNotRewarded(
	ctx context.Context, before time.Time, limit int,
) ([]entity.ClaimHistory, error) {
	var result []entity.ClaimHistory
	err := xcontext.DB(ctx).
		Where("status=? AND rewarded_at IS NULL AND created_at < ?", entity.Claimed, before).
		Order("created_at ASC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *claimHistoryRepository) MarkRewarded(ctx context.Context, id string, at time.Time) error {
	// UpdateColumn keeps updated_at, the history list is ordered by it.
	tx := xcontext.DB(ctx).Model(&entity.ClaimHistory{}).
		Where("id=? AND rewarded_at IS NULL", id).
		UpdateColumn("rewarded_at", at)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
