package model

import "time"

type Challenge struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

type Reward struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

type Event struct {
	ID          string     `json:"id"`
	CreatorID   string     `json:"creator_id,omitempty"`
	StartTime   string     `json:"start_time"`
	EndTime     string     `json:"end_time"`
	IsPublic    bool       `json:"is_public"`
	Challenge   *Challenge `json:"challenge,omitempty"`
	Rewards     []Reward   `json:"rewards"`
	RewardLimit *int64     `json:"reward_limit,omitempty"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   string     `json:"updated_at"`
}

type InventoryItem struct {
	ItemID   string `json:"item_id"`
	ItemType string `json:"item_type"`
	Quantity int64  `json:"quantity"`
}

type Coupon struct {
	CouponID string `json:"coupon_id"`
	Quantity int64  `json:"quantity"`
}

// Balance is the part of a user which rewards are applied to.
type Balance struct {
	Cash      int64           `json:"cash"`
	Coins     int64           `json:"coins"`
	Inventory []InventoryItem `json:"inventory"`
	Coupons   []Coupon        `json:"coupons"`
}

// UserSnapshot is the read-only view of a user evaluated by challenges.
type UserSnapshot struct {
	ID                    string     `json:"id"`
	Role                  string     `json:"role"`
	TodayLoginCount       int        `json:"today_login_count"`
	ConsecutiveLoginCount int        `json:"consecutive_login_count"`
	LastLoginAt           *time.Time `json:"last_login_at,omitempty"`
	Balance
}

type ClaimHistory struct {
	ID           string `json:"id"`
	EventID      string `json:"event_id"`
	UserID       string `json:"user_id"`
	Status       string `json:"status"`
	FailureCause string `json:"failure_cause,omitempty"`
	RewardedAt   string `json:"rewarded_at,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}
