package eventclaim

import (
	"context"
	"fmt"

	"github.com/fatih/structs"
	"github.com/mitchellh/mapstructure"
	"github.com/questx-lab/eventreward/internal/entity"
	"github.com/questx-lab/eventreward/internal/model"
	"github.com/questx-lab/eventreward/pkg/enum"
	"github.com/questx-lab/eventreward/pkg/errorx"
	"github.com/questx-lab/eventreward/pkg/xcontext"
	"golang.org/x/exp/slices"
)

// rewardApplier is the typed form of one reward variant.
type rewardApplier interface {
	apply(balance *Balance) error
	validate() error
}

// Coin reward
type coinReward struct {
	Quantity int64 `mapstructure:"quantity" structs:"quantity"`
}

func (r coinReward) apply(balance *Balance) error {
	coins, err := addQuantity(balance.Coins, r.Quantity)
	if err != nil {
		return err
	}

	balance.Coins = coins
	return nil
}

func (r coinReward) validate() error {
	return validateQuantity(r.Quantity)
}

// Cash reward
type cashReward struct {
	Quantity int64 `mapstructure:"quantity" structs:"quantity"`
}

func (r cashReward) apply(balance *Balance) error {
	cash, err := addQuantity(balance.Cash, r.Quantity)
	if err != nil {
		return err
	}

	balance.Cash = cash
	return nil
}

func (r cashReward) validate() error {
	return validateQuantity(r.Quantity)
}

// Item reward
type itemReward struct {
	ItemType string `mapstructure:"item_type" structs:"item_type"`
	ItemID   string `mapstructure:"item_id" structs:"item_id"`
	Quantity int64  `mapstructure:"quantity" structs:"quantity"`
}

func (r itemReward) apply(balance *Balance) error {
	for i := range balance.Inventory {
		if balance.Inventory[i].ItemID == r.ItemID {
			quantity, err := addQuantity(balance.Inventory[i].Quantity, r.Quantity)
			if err != nil {
				return err
			}

			balance.Inventory[i].Quantity = quantity
			return nil
		}
	}

	itemType, err := itemTypeOf(r.ItemID)
	if err != nil {
		return err
	}

	balance.Inventory = append(balance.Inventory, entity.InventoryItem{
		ItemID:   r.ItemID,
		ItemType: itemType,
		Quantity: r.Quantity,
	})

	return nil
}

func (r itemReward) validate() error {
	itemType, err := itemTypeOf(r.ItemID)
	if err != nil {
		return err
	}

	if r.ItemType != "" && r.ItemType != string(itemType) {
		return fmt.Errorf("item %s is not a %s", r.ItemID, r.ItemType)
	}

	return validateQuantity(r.Quantity)
}

// Coupon reward
type couponReward struct {
	CouponID string `mapstructure:"coupon_id" structs:"coupon_id"`
	Quantity int64  `mapstructure:"quantity" structs:"quantity"`
}

func (r couponReward) apply(balance *Balance) error {
	for i := range balance.Coupons {
		if balance.Coupons[i].CouponID == r.CouponID {
			quantity, err := addQuantity(balance.Coupons[i].Quantity, r.Quantity)
			if err != nil {
				return err
			}

			balance.Coupons[i].Quantity = quantity
			return nil
		}
	}

	balance.Coupons = append(balance.Coupons, entity.Coupon{
		CouponID: r.CouponID,
		Quantity: r.Quantity,
	})

	return nil
}

func (r couponReward) validate() error {
	if r.CouponID == "" {
		return fmt.Errorf("coupon id must not be empty")
	}

	return validateQuantity(r.Quantity)
}

func newRewardApplier(reward entity.Reward) (rewardApplier, error) {
	// The quantity is 1 if it is omitted.
	var applier rewardApplier
	switch reward.Type {
	case entity.CoinReward:
		applier = &coinReward{Quantity: 1}
	case entity.CashReward:
		applier = &cashReward{Quantity: 1}
	case entity.ItemReward:
		applier = &itemReward{Quantity: 1}
	case entity.CouponReward:
		applier = &couponReward{Quantity: 1}
	default:
		return nil, fmt.Errorf("unknown reward type %s", reward.Type)
	}

	if err := mapstructure.Decode(reward.Data, applier); err != nil {
		return nil, err
	}

	if err := applier.validate(); err != nil {
		return nil, err
	}

	return applier, nil
}

// ParseRewards validates the rewards received from clients and returns their
// normalized forms.
func ParseRewards(ctx context.Context, rewards []model.Reward) ([]entity.Reward, error) {
	result := []entity.Reward{}
	for i, r := range rewards {
		rewardType, err := enum.ToEnum[entity.RewardType](r.Type)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid reward type: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid type of reward %d", i+1)
		}

		applier, err := newRewardApplier(entity.Reward{Type: rewardType, Data: r.Data})
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid reward %d: %v", i+1, err)
		}

		// Item type is derived from the item id.
		if item, ok := applier.(*itemReward); ok {
			itemType, _ := itemTypeOf(item.ItemID)
			item.ItemType = string(itemType)
		}

		result = append(result, entity.Reward{Type: rewardType, Data: structs.Map(applier)})
	}

	return result, nil
}

func itemTypeOf(itemID string) (entity.ItemType, error) {
	for itemType, ids := range entity.Items {
		if slices.Contains(ids, itemID) {
			return itemType, nil
		}
	}

	return "", fmt.Errorf("unknown item %s", itemID)
}

func validateQuantity(quantity int64) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be a positive number")
	}

	return nil
}
