package repository

import (
	"context"
	"time"

	"github.com/questx-lab/eventreward/internal/entity"
	"github.com/questx-lab/eventreward/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type ClaimLockRepository interface {
	TryInsert(ctx context.Context, lock *entity.ClaimLock, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key, owner string) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type claimLockRepository struct{}

func NewClaimLockRepository() *claimLockRepository {
	return &claimLockRepository{}
}

// TryInsert inserts the lock if no live lock with the same key exists. A lock
// older than ttl is considered dead and is replaced.
func (r *claimLockRepository) TryInsert(
	ctx context.Context, lock *entity.ClaimLock, ttl time.Duration,
) (bool, error) {
	err := xcontext.DB(ctx).
		Where("lock_key=? AND created_at < ?", lock.LockKey, lock.CreatedAt.Add(-ttl)).
		Delete(&entity.ClaimLock{}).Error
	if err != nil {
		return false, err
	}

	tx := xcontext.DB(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(lock)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *claimLockRepository) Delete(ctx context.Context, key, owner string) error {
	return xcontext.DB(ctx).
		Where("lock_key=? AND owner=?", key, owner).
		Delete(&entity.ClaimLock{}).Error
}

func (r *claimLockRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	tx := xcontext.DB(ctx).Where("created_at < ?", before).Delete(&entity.ClaimLock{})
	return tx.RowsAffected, tx.Error
}
