package entity

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/questx-lab/eventreward/pkg/enum"
)

type ChallengeType string

var (
	ContinuousLoginCountChallenge   = enum.New(ChallengeType("continuousLoginCount"))
	ReturnUserChallenge             = enum.New(ChallengeType("returnUser"))
	CashGreaterThanOrEqualChallenge = enum.New(ChallengeType("cashGreaterThanOrEqual"))
	CashLessThanOrEqualChallenge    = enum.New(ChallengeType("cashLessThanOrEqual"))
	CoinGreaterThanOrEqualChallenge = enum.New(ChallengeType("coinGreaterThanOrEqual"))
	CoinLessThanOrEqualChallenge    = enum.New(ChallengeType("coinLessThanOrEqual"))
	AllItemCountChallenge           = enum.New(ChallengeType("allItemCount"))
	SpecificItemCountChallenge      = enum.New(ChallengeType("specificItemCount"))
)

// Challenge is the eligibility gate of an event. A challenge with an empty
// Type is absent and stored as NULL.
type Challenge struct {
	Type ChallengeType `json:"type"`
	Data Map           `json:"data"`
}

func (c Challenge) IsZero() bool {
	return c.Type == ""
}

func (c *Challenge) Scan(value any) error {
	switch t := value.(type) {
	case nil:
		*c = Challenge{}
		return nil
	case string:
		return json.Unmarshal([]byte(t), c)
	case []byte:
		return json.Unmarshal(t, c)
	default:
		return fmt.Errorf("cannot scan invalid data type %T", value)
	}
}

func (c Challenge) Value() (driver.Value, error) {
	if c.IsZero() {
		return nil, nil
	}

	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}

	return string(b), nil
}

type RewardType string

var (
	CoinReward   = enum.New(RewardType("coin"))
	CashReward   = enum.New(RewardType("cash"))
	ItemReward   = enum.New(RewardType("item"))
	CouponReward = enum.New(RewardType("coupon"))
)

type Reward struct {
	Type RewardType `json:"type"`
	Data Map        `json:"data"`
}

type ItemType string

var (
	WeaponItem     = enum.New(ItemType("weapon"))
	ArmorItem      = enum.New(ItemType("armor"))
	ConsumableItem = enum.New(ItemType("consumable"))
)

// Items is the catalogue of item ids grouped by their type.
var Items = map[ItemType][]string{
	WeaponItem:     {"sword1", "axe1", "bow1"},
	ArmorItem:      {"hat1", "gloves1", "boots1", "fullbody1", "top1", "bottom1"},
	ConsumableItem: {"health_potion", "mana_potion"},
}

type Event struct {
	Base

	CreatorID string
	StartTime time.Time `gorm:"index"`
	EndTime   time.Time
	IsPublic  bool
	Challenge Challenge     `gorm:"type:text"`
	Rewards   Array[Reward] `gorm:"type:text"`

	// RewardLimit is the remaining number of claims. NULL means unlimited.
	RewardLimit sql.NullInt64
}
