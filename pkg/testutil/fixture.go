package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/questx-lab/eventreward/internal/entity"
	"github.com/questx-lab/eventreward/pkg/xcontext"
)

var (
	User1 = &entity.User{
		Base:                  entity.Base{ID: "user1"},
		Name:                  "user1",
		Role:                  entity.UserRoleUser,
		Cash:                  50,
		ConsecutiveLoginCount: 3,
		LastLoginAt:           sql.NullTime{Valid: true, Time: time.Now().Add(-10 * 24 * time.Hour)},
	}

	User2 = &entity.User{
		Base: entity.Base{ID: "user2"},
		Name: "user2",
		Role: entity.UserRoleUser,
		Inventory: entity.Array[entity.InventoryItem]{
			{ItemID: "sword1", ItemType: entity.WeaponItem, Quantity: 1},
		},
	}

	Admin = &entity.User{
		Base: entity.Base{ID: "admin1"},
		Name: "admin1",
		Role: entity.UserRoleAdmin,
	}

	// PublicEvent is open, unlimited and gives 5 coins without challenge.
	PublicEvent = &entity.Event{
		Base:      entity.Base{ID: "public_event"},
		CreatorID: Admin.ID,
		StartTime: time.Now().Add(-time.Hour),
		EndTime:   time.Now().Add(time.Hour),
		IsPublic:  true,
		Rewards: entity.Array[entity.Reward]{
			{Type: entity.CoinReward, Data: entity.Map{"quantity": 5}},
		},
	}

	// LimitedEvent gives 10 cash to the first two claimers.
	LimitedEvent = &entity.Event{
		Base:        entity.Base{ID: "limited_event"},
		CreatorID:   Admin.ID,
		StartTime:   time.Now().Add(-time.Hour),
		EndTime:     time.Now().Add(time.Hour),
		IsPublic:    true,
		RewardLimit: sql.NullInt64{Valid: true, Int64: 2},
		Rewards: entity.Array[entity.Reward]{
			{Type: entity.CashReward, Data: entity.Map{"quantity": 10}},
		},
	}

	PrivateEvent = &entity.Event{
		Base:      entity.Base{ID: "private_event"},
		CreatorID: Admin.ID,
		StartTime: time.Now().Add(-time.Hour),
		EndTime:   time.Now().Add(time.Hour),
		IsPublic:  false,
		Rewards: entity.Array[entity.Reward]{
			{Type: entity.CoinReward, Data: entity.Map{"quantity": 1}},
		},
	}

	EndedEvent = &entity.Event{
		Base:      entity.Base{ID: "ended_event"},
		CreatorID: Admin.ID,
		StartTime: time.Now().Add(-2 * time.Hour),
		EndTime:   time.Now().Add(-time.Hour),
		IsPublic:  true,
		Rewards: entity.Array[entity.Reward]{
			{Type: entity.CoinReward, Data: entity.Map{"quantity": 1}},
		},
	}

	// CashChallengeEvent needs at least 100 cash and gives a sword.
	CashChallengeEvent = &entity.Event{
		Base:      entity.Base{ID: "cash_challenge_event"},
		CreatorID: Admin.ID,
		StartTime: time.Now().Add(-time.Hour),
		EndTime:   time.Now().Add(time.Hour),
		IsPublic:  true,
		Challenge: entity.Challenge{
			Type: entity.CashGreaterThanOrEqualChallenge,
			Data: entity.Map{"cash": 100},
		},
		Rewards: entity.Array[entity.Reward]{
			{Type: entity.ItemReward, Data: entity.Map{"item_type": "weapon", "item_id": "sword1", "quantity": 1}},
		},
	}

	Users  = []*entity.User{User1, User2, Admin}
	Events = []*entity.Event{PublicEvent, LimitedEvent, PrivateEvent, EndedEvent, CashChallengeEvent}
)

// CreateFixtureDb inserts copies of the fixture users and events, so tests can
// modify rows without affecting each other.
func CreateFixtureDb(ctx context.Context) {
	db := xcontext.DB(ctx)
	for _, user := range Users {
		u := *user
		if err := db.Create(&u).Error; err != nil {
			panic(err)
		}
	}

	for _, event := range Events {
		e := *event
		if err := db.Create(&e).Error; err != nil {
			panic(err)
		}
	}
}
