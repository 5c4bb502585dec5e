package repository

import (
	"context"
	"time"

	"github.com/questx-lab/eventreward/internal/entity"
	"github.com/questx-lab/eventreward/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.User, error)
	UpdateBalance(ctx context.Context, user *entity.User) error
	UpdateLogin(ctx context.Context, user *entity.User) error
	UpdateBannedUntil(ctx context.Context, id string, until time.Time) error
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return xcontext.DB(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.User, error) {
	var result entity.User
	err := xcontext.DB(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Take(&result, "id=?", id).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) UpdateBalance(ctx context.Context, user *entity.User) error {
	return xcontext.DB(ctx).Model(&entity.User{}).
		Where("id=?", user.ID).
		Updates(map[string]any{
			"cash":      user.Cash,
			"coins":     user.Coins,
			"inventory": user.Inventory,
			"coupons":   user.Coupons,
		}).Error
}

func (r *userRepository) UpdateLogin(ctx context.Context, user *entity.User) error {
	return xcontext.DB(ctx).Model(&entity.User{}).
		Where("id=?", user.ID).
		Updates(map[string]any{
			"today_login_count":       user.TodayLoginCount,
			"consecutive_login_count": user.ConsecutiveLoginCount,
			"consecutive_login_start": user.ConsecutiveLoginStart,
			"last_login_at":           user.LastLoginAt,
		}).Error
}

func (r *userRepository) UpdateBannedUntil(ctx context.Context, id string, until time.Time) error {
	return xcontext.DB(ctx).Model(&entity.User{}).
		Where("id=?", id).
		Update("banned_until", until).Error
}
