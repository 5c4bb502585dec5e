package model

import (
	"database/sql"
	"time"

	"github.com/questx-lab/eventreward/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertRewards(entityRewards []entity.Reward) []Reward {
	modelRewards := []Reward{}
	for _, r := range entityRewards {
		modelRewards = append(modelRewards, Reward{Type: string(r.Type), Data: r.Data})
	}
	return modelRewards
}

func ConvertChallenge(challenge entity.Challenge) *Challenge {
	if challenge.IsZero() {
		return nil
	}

	return &Challenge{Type: string(challenge.Type), Data: challenge.Data}
}

func ConvertEvent(event *entity.Event) Event {
	if event == nil {
		return Event{}
	}

	return Event{
		ID:          event.ID,
		CreatorID:   event.CreatorID,
		StartTime:   event.StartTime.Format(DefaultTimeLayout),
		EndTime:     event.EndTime.Format(DefaultTimeLayout),
		IsPublic:    event.IsPublic,
		Challenge:   ConvertChallenge(event.Challenge),
		Rewards:     ConvertRewards(event.Rewards),
		RewardLimit: convertNullInt64(event.RewardLimit),
		CreatedAt:   event.CreatedAt.Format(DefaultTimeLayout),
		UpdatedAt:   event.UpdatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertBalance(user *entity.User) Balance {
	if user == nil {
		return Balance{}
	}

	balance := Balance{
		Cash:      user.Cash,
		Coins:     user.Coins,
		Inventory: []InventoryItem{},
		Coupons:   []Coupon{},
	}

	for _, item := range user.Inventory {
		balance.Inventory = append(balance.Inventory, InventoryItem{
			ItemID:   item.ItemID,
			ItemType: string(item.ItemType),
			Quantity: item.Quantity,
		})
	}

	for _, coupon := range user.Coupons {
		balance.Coupons = append(balance.Coupons, Coupon{
			CouponID: coupon.CouponID,
			Quantity: coupon.Quantity,
		})
	}

	return balance
}

func ConvertUserSnapshot(user *entity.User) UserSnapshot {
	if user == nil {
		return UserSnapshot{}
	}

	return UserSnapshot{
		ID:                    user.ID,
		Role:                  string(user.Role),
		TodayLoginCount:       user.TodayLoginCount,
		ConsecutiveLoginCount: user.ConsecutiveLoginCount,
		LastLoginAt:           convertNullTimePtr(user.LastLoginAt),
		Balance:               ConvertBalance(user),
	}
}

func ConvertClaimHistory(history *entity.ClaimHistory) ClaimHistory {
	if history == nil {
		return ClaimHistory{}
	}

	return ClaimHistory{
		ID:           history.ID,
		EventID:      history.EventID,
		UserID:       history.UserID,
		Status:       string(history.Status),
		FailureCause: history.FailureCause,
		RewardedAt:   convertNullTime(history.RewardedAt),
		CreatedAt:    history.CreatedAt.Format(DefaultTimeLayout),
		UpdatedAt:    history.UpdatedAt.Format(DefaultTimeLayout),
	}
}

func convertNullTime(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}

	return t.Time.Format(DefaultTimeLayout)
}

func convertNullInt64(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}

	v := n.Int64
	return &v
}

func convertNullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}

	v := t.Time
	return &v
}
