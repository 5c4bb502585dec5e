package eventclaim

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/structs"
	"github.com/mitchellh/mapstructure"
	"github.com/questx-lab/eventreward/internal/entity"
	"github.com/questx-lab/eventreward/internal/model"
	"github.com/questx-lab/eventreward/pkg/dateutil"
	"github.com/questx-lab/eventreward/pkg/enum"
	"github.com/questx-lab/eventreward/pkg/errorx"
	"github.com/questx-lab/eventreward/pkg/xcontext"
)

// challengeChecker is the typed form of one challenge variant.
type challengeChecker interface {
	Check(now time.Time, user model.UserSnapshot) bool
	validate() error
}

// Continuous login count
type continuousLoginCountChallenge struct {
	LoginCount int `mapstructure:"login_count" structs:"login_count"`
}

func (c continuousLoginCountChallenge) Check(now time.Time, user model.UserSnapshot) bool {
	return user.ConsecutiveLoginCount >= c.LoginCount
}

func (c continuousLoginCountChallenge) validate() error {
	if c.LoginCount <= 0 {
		return fmt.Errorf("login count must be a positive number")
	}

	return nil
}

// Return user
type returnUserChallenge struct {
	DaysSinceLastLogin int `mapstructure:"days_since_last_login" structs:"days_since_last_login"`
}

func (c returnUserChallenge) Check(now time.Time, user model.UserSnapshot) bool {
	if user.LastLoginAt == nil {
		return false
	}

	return dateutil.FullDaysSince(now, *user.LastLoginAt) >= c.DaysSinceLastLogin
}

func (c returnUserChallenge) validate() error {
	if c.DaysSinceLastLogin <= 0 {
		return fmt.Errorf("days since last login must be a positive number")
	}

	return nil
}

// Cash and coin thresholds
type cashChallenge struct {
	Cash int64 `mapstructure:"cash" structs:"cash"`

	atMost bool
}

func (c cashChallenge) Check(now time.Time, user model.UserSnapshot) bool {
	if c.atMost {
		return user.Cash <= c.Cash
	}

	return user.Cash >= c.Cash
}

func (c cashChallenge) validate() error {
	if c.Cash < 0 {
		return fmt.Errorf("cash must not be negative")
	}

	return nil
}

type coinChallenge struct {
	Coin int64 `mapstructure:"coin" structs:"coin"`

	atMost bool
}

func (c coinChallenge) Check(now time.Time, user model.UserSnapshot) bool {
	if c.atMost {
		return user.Coins <= c.Coin
	}

	return user.Coins >= c.Coin
}

func (c coinChallenge) validate() error {
	if c.Coin < 0 {
		return fmt.Errorf("coin must not be negative")
	}

	return nil
}

// All item count
type allItemCountChallenge struct {
	Count int `mapstructure:"count" structs:"count"`
}

func (c allItemCountChallenge) Check(now time.Time, user model.UserSnapshot) bool {
	return len(user.Inventory) >= c.Count
}

func (c allItemCountChallenge) validate() error {
	if c.Count <= 0 {
		return fmt.Errorf("count must be a positive number")
	}

	return nil
}

// Specific item count
type specificItemCountChallenge struct {
	ItemID string `mapstructure:"item_id" structs:"item_id"`
	Count  int64  `mapstructure:"count" structs:"count"`
}

func (c specificItemCountChallenge) Check(now time.Time, user model.UserSnapshot) bool {
	for _, item := range user.Inventory {
		if item.ItemID == c.ItemID {
			return item.Quantity >= c.Count
		}
	}

	return false
}

func (c specificItemCountChallenge) validate() error {
	if _, err := itemTypeOf(c.ItemID); err != nil {
		return err
	}

	if c.Count <= 0 {
		return fmt.Errorf("count must be a positive number")
	}

	return nil
}

func newChallengeChecker(challenge entity.Challenge) (challengeChecker, error) {
	var checker challengeChecker
	switch challenge.Type {
	case entity.ContinuousLoginCountChallenge:
		checker = &continuousLoginCountChallenge{}
	case entity.ReturnUserChallenge:
		checker = &returnUserChallenge{}
	case entity.CashGreaterThanOrEqualChallenge:
		checker = &cashChallenge{}
	case entity.CashLessThanOrEqualChallenge:
		checker = &cashChallenge{atMost: true}
	case entity.CoinGreaterThanOrEqualChallenge:
		checker = &coinChallenge{}
	case entity.CoinLessThanOrEqualChallenge:
		checker = &coinChallenge{atMost: true}
	case entity.AllItemCountChallenge:
		checker = &allItemCountChallenge{}
	case entity.SpecificItemCountChallenge:
		checker = &specificItemCountChallenge{}
	default:
		return nil, fmt.Errorf("unknown challenge type %s", challenge.Type)
	}

	if err := mapstructure.Decode(challenge.Data, checker); err != nil {
		return nil, err
	}

	return checker, nil
}

// IsEligible reports whether the user satisfies the challenge at now. An absent
// challenge is always satisfied, a challenge which cannot be decoded never is.
func IsEligible(now time.Time, user model.UserSnapshot, challenge entity.Challenge) bool {
	if challenge.IsZero() {
		return true
	}

	checker, err := newChallengeChecker(challenge)
	if err != nil {
		return false
	}

	return checker.Check(now, user)
}

// ParseChallenge validates the challenge received from clients and returns its
// normalized form. A nil challenge is parsed to an absent challenge.
func ParseChallenge(ctx context.Context, challenge *model.Challenge) (entity.Challenge, error) {
	if challenge == nil {
		return entity.Challenge{}, nil
	}

	challengeType, err := enum.ToEnum[entity.ChallengeType](challenge.Type)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid challenge type: %v", err)
		return entity.Challenge{}, errorx.New(errorx.BadRequest, "Invalid challenge type %s", challenge.Type)
	}

	checker, err := newChallengeChecker(entity.Challenge{Type: challengeType, Data: challenge.Data})
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot decode challenge data: %v", err)
		return entity.Challenge{}, errorx.New(errorx.BadRequest, "Invalid challenge data")
	}

	if err := checker.validate(); err != nil {
		return entity.Challenge{}, errorx.New(errorx.BadRequest, "Invalid challenge: %v", err)
	}

	return entity.Challenge{Type: challengeType, Data: structs.Map(checker)}, nil
}
