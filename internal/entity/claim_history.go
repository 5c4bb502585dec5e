package entity

import (
	"database/sql"
	"time"

	"github.com/questx-lab/eventreward/pkg/enum"
)

type ClaimHistoryStatus string

var (
	Claimed     = enum.New(ClaimHistoryStatus("claimed"))
	ClaimFailed = enum.New(ClaimHistoryStatus("claim_failed"))
)

// ClaimHistory is one claim attempt. Rows are only appended, except for
// RewardedAt which is set once the rewards reached the user's balance.
type ClaimHistory struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time `gorm:"index:idx_claim_histories_event_user,priority:3;index"`

	EventID      string `gorm:"index:idx_claim_histories_event_user,priority:1"`
	UserID       string `gorm:"index:idx_claim_histories_event_user,priority:2;index"`
	Status       ClaimHistoryStatus
	FailureCause string
	RewardedAt   sql.NullTime
}
