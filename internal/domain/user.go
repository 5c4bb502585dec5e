package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/questx-lab/eventreward/internal/domain/eventclaim"
	"github.com/questx-lab/eventreward/internal/entity"
	"github.com/questx-lab/eventreward/internal/model"
	"github.com/questx-lab/eventreward/internal/repository"
	"github.com/questx-lab/eventreward/pkg/enum"
	"github.com/questx-lab/eventreward/pkg/dateutil"
	"github.com/questx-lab/eventreward/pkg/errorx"
	"github.com/questx-lab/eventreward/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	Create(context.Context, *model.CreateUserRequest) (*model.CreateUserResponse, error)
	GetSnapshot(context.Context, *model.GetUserSnapshotRequest) (*model.GetUserSnapshotResponse, error)
	GiveRewards(context.Context, *model.GiveRewardsRequest) (*model.GiveRewardsResponse, error)
	RecordLogin(context.Context, *model.RecordLoginRequest) (*model.RecordLoginResponse, error)
	Ban(context.Context, *model.BanUserRequest) (*model.BanUserResponse, error)
}

type userDomain struct {
	userRepo repository.UserRepository
}

func NewUserDomain(userRepo repository.UserRepository) *userDomain {
	return &userDomain{userRepo: userRepo}
}

func (d *userDomain) Create(
	ctx context.Context, req *model.CreateUserRequest,
) (*model.CreateUserResponse, error) {
	role := entity.UserRoleUser
	if req.Role != "" {
		var err error
		role, err = enum.ToEnum[entity.UserRole](req.Role)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid role: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid role %s", req.Role)
		}
	}

	// Registration counts as the first login.
	now := time.Now()
	user := &entity.User{
		Base:                  entity.Base{ID: uuid.NewString()},
		Name:                  req.Name,
		Role:                  role,
		TodayLoginCount:       1,
		ConsecutiveLoginCount: 1,
		ConsecutiveLoginStart: sql.NullTime{Valid: true, Time: now},
		LastLoginAt:           sql.NullTime{Valid: true, Time: now},
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateUserResponse{ID: user.ID}, nil
}

func (d *userDomain) GetSnapshot(
	ctx context.Context, req *model.GetUserSnapshotRequest,
) (*model.GetUserSnapshotResponse, error) {
	user, err := d.getActiveUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	return &model.GetUserSnapshotResponse{User: model.ConvertUserSnapshot(user)}, nil
}

// GiveRewards adds rewards to the balance of the user in one transaction.
func (d *userDomain) GiveRewards(
	ctx context.Context, req *model.GiveRewardsRequest,
) (*model.GiveRewardsResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	rewards, err := eventclaim.ParseRewards(ctx, req.Rewards)
	if err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	user, err := d.userRepo.GetByIDForUpdate(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	balance, err := eventclaim.ApplyRewards(eventclaim.Balance{
		Cash:      user.Cash,
		Coins:     user.Coins,
		Inventory: user.Inventory,
		Coupons:   user.Coupons,
	}, rewards)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot apply rewards to user %s: %v", user.ID, err)
		return nil, err
	}

	user.Cash = balance.Cash
	user.Coins = balance.Coins
	user.Inventory = balance.Inventory
	user.Coupons = balance.Coupons
	if err := d.userRepo.UpdateBalance(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user balance: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit user balance: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GiveRewardsResponse{Balance: model.ConvertBalance(user)}, nil
}

// RecordLogin counts a login of the user. Logins on consecutive days extend
// the consecutive login count, a missing day restarts it.
func (d *userDomain) RecordLogin(
	ctx context.Context, req *model.RecordLoginRequest,
) (*model.RecordLoginResponse, error) {
	user, err := d.getActiveUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	switch {
	case !user.LastLoginAt.Valid:
		user.ConsecutiveLoginCount = 1
		user.ConsecutiveLoginStart = sql.NullTime{Valid: true, Time: now}
		user.TodayLoginCount = 1

	case dateutil.DaysBetween(user.LastLoginAt.Time, now) == 0:
		user.TodayLoginCount++

	case dateutil.DaysBetween(user.LastLoginAt.Time, now) == 1:
		user.ConsecutiveLoginCount++
		user.TodayLoginCount = 1

	default:
		user.ConsecutiveLoginCount = 1
		user.ConsecutiveLoginStart = sql.NullTime{Valid: true, Time: now}
		user.TodayLoginCount = 1
	}
	user.LastLoginAt = sql.NullTime{Valid: true, Time: now}

	if err := d.userRepo.UpdateLogin(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user login: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RecordLoginResponse{
		TodayLoginCount:       user.TodayLoginCount,
		ConsecutiveLoginCount: user.ConsecutiveLoginCount,
	}, nil
}

func (d *userDomain) Ban(ctx context.Context, req *model.BanUserRequest) (*model.BanUserResponse, error) {
	until, err := time.Parse(model.DefaultTimeLayout, req.Until)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid time format")
	}

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.UpdateBannedUntil(ctx, req.UserID, until); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot ban user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.BanUserResponse{}, nil
}

func (d *userDomain) getActiveUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if user.BannedUntil.Valid && user.BannedUntil.Time.After(time.Now()) {
		return nil, errorx.New(errorx.PermissionDenied, "The user is banned until %s",
			user.BannedUntil.Time.Format(model.DefaultTimeLayout))
	}

	return user, nil
}
