package eventclaim

import (
	"math"

	"github.com/questx-lab/eventreward/internal/entity"
	"github.com/questx-lab/eventreward/pkg/errorx"
)

// Balance is the mutable part of a user which rewards are added to.
// Inventory is unique by item id, Coupons is unique by coupon id.
type Balance struct {
	Cash      int64
	Coins     int64
	Inventory []entity.InventoryItem
	Coupons   []entity.Coupon
}

func (b Balance) clone() Balance {
	return Balance{
		Cash:      b.Cash,
		Coins:     b.Coins,
		Inventory: append([]entity.InventoryItem{}, b.Inventory...),
		Coupons:   append([]entity.Coupon{}, b.Coupons...),
	}
}

// ApplyRewards adds every reward to a copy of balance and returns it. Rewards
// of the same bucket are summed, the order of rewards only affects the order
// of new inventory and coupon entries. The input balance is never modified.
func ApplyRewards(balance Balance, rewards []entity.Reward) (Balance, error) {
	result := balance.clone()
	for i, reward := range rewards {
		applier, err := newRewardApplier(reward)
		if err != nil {
			return Balance{}, errorx.New(errorx.BadRequest, "Invalid reward %d: %v", i+1, err)
		}

		if err := applier.apply(&result); err != nil {
			return Balance{}, err
		}
	}

	return result, nil
}

func addQuantity(current, delta int64) (int64, error) {
	if delta > 0 && current > math.MaxInt64-delta {
		return 0, errorx.New(errorx.Internal, "The balance overflows")
	}

	return current + delta, nil
}
