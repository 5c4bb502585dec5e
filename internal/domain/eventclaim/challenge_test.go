package eventclaim

import (
	"context"
	"testing"
	"time"

	"github.com/questx-lab/eventreward/internal/entity"
	"github.com/questx-lab/eventreward/internal/model"
	"github.com/questx-lab/eventreward/pkg/dateutil"
	"github.com/questx-lab/eventreward/pkg/errorx"
	"github.com/questx-lab/eventreward/pkg/logger"
	"github.com/questx-lab/eventreward/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func TestIsEligible(t *testing.T) {
	now := time.Now()
	fiveDaysAgo := now.Add(-5*dateutil.Day - time.Minute)
	user := model.UserSnapshot{
		ID:                    "user1",
		ConsecutiveLoginCount: 3,
		LastLoginAt:           &fiveDaysAgo,
		Balance: model.Balance{
			Cash:  100,
			Coins: 20,
			Inventory: []model.InventoryItem{
				{ItemID: "sword1", ItemType: "weapon", Quantity: 2},
				{ItemID: "hat1", ItemType: "armor", Quantity: 1},
			},
		},
	}

	tests := []struct {
		name      string
		challenge entity.Challenge
		want      bool
	}{
		{
			name:      "absent challenge",
			challenge: entity.Challenge{},
			want:      true,
		},
		{
			name: "continuous login count reached",
			challenge: entity.Challenge{
				Type: entity.ContinuousLoginCountChallenge,
				Data: entity.Map{"login_count": 3},
			},
			want: true,
		},
		{
			name: "continuous login count not reached",
			challenge: entity.Challenge{
				Type: entity.ContinuousLoginCountChallenge,
				Data: entity.Map{"login_count": 4},
			},
			want: false,
		},
		{
			name: "return user",
			challenge: entity.Challenge{
				Type: entity.ReturnUserChallenge,
				Data: entity.Map{"days_since_last_login": 5},
			},
			want: true,
		},
		{
			name: "return user too early",
			challenge: entity.Challenge{
				Type: entity.ReturnUserChallenge,
				Data: entity.Map{"days_since_last_login": 6},
			},
			want: false,
		},
		{
			name: "cash greater than or equal",
			challenge: entity.Challenge{
				Type: entity.CashGreaterThanOrEqualChallenge,
				Data: entity.Map{"cash": 100},
			},
			want: true,
		},
		{
			name: "cash less than or equal",
			challenge: entity.Challenge{
				Type: entity.CashLessThanOrEqualChallenge,
				Data: entity.Map{"cash": 99},
			},
			want: false,
		},
		{
			name: "coin greater than or equal",
			challenge: entity.Challenge{
				Type: entity.CoinGreaterThanOrEqualChallenge,
				Data: entity.Map{"coin": 21},
			},
			want: false,
		},
		{
			name: "coin less than or equal",
			challenge: entity.Challenge{
				Type: entity.CoinLessThanOrEqualChallenge,
				Data: entity.Map{"coin": 20},
			},
			want: true,
		},
		{
			name: "all item count",
			challenge: entity.Challenge{
				Type: entity.AllItemCountChallenge,
				Data: entity.Map{"count": 2},
			},
			want: true,
		},
		{
			name: "specific item count",
			challenge: entity.Challenge{
				Type: entity.SpecificItemCountChallenge,
				Data: entity.Map{"item_id": "sword1", "count": 2},
			},
			want: true,
		},
		{
			name: "specific item is absent",
			challenge: entity.Challenge{
				Type: entity.SpecificItemCountChallenge,
				Data: entity.Map{"item_id": "bow1", "count": 1},
			},
			want: false,
		},
		{
			name: "numbers decoded from json",
			challenge: entity.Challenge{
				Type: entity.CashGreaterThanOrEqualChallenge,
				Data: entity.Map{"cash": float64(100)},
			},
			want: true,
		},
		{
			name: "unknown type",
			challenge: entity.Challenge{
				Type: entity.ChallengeType("unknown"),
				Data: entity.Map{"cash": 0},
			},
			want: false,
		},
		{
			name: "malformed data",
			challenge: entity.Challenge{
				Type: entity.CashGreaterThanOrEqualChallenge,
				Data: entity.Map{"cash": "a lot"},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsEligible(now, user, tt.challenge))
		})
	}
}

func TestIsEligible_ReturnUserNeverLoggedIn(t *testing.T) {
	challenge := entity.Challenge{
		Type: entity.ReturnUserChallenge,
		Data: entity.Map{"days_since_last_login": 1},
	}

	require.False(t, IsEligible(time.Now(), model.UserSnapshot{ID: "user1"}, challenge))
}

func TestParseChallenge(t *testing.T) {
	ctx := xcontext.WithLogger(context.Background(), logger.NewNopLogger())

	tests := []struct {
		name      string
		challenge *model.Challenge
		want      entity.Challenge
		wantErr   bool
	}{
		{
			name:      "nil challenge",
			challenge: nil,
			want:      entity.Challenge{},
		},
		{
			name: "normalized data",
			challenge: &model.Challenge{
				Type: "specificItemCount",
				Data: map[string]any{"item_id": "sword1", "count": float64(2), "unused": true},
			},
			want: entity.Challenge{
				Type: entity.SpecificItemCountChallenge,
				Data: entity.Map{"item_id": "sword1", "count": int64(2)},
			},
		},
		{
			name: "unknown type",
			challenge: &model.Challenge{
				Type: "richUser",
				Data: map[string]any{"cash": 1},
			},
			wantErr: true,
		},
		{
			name: "invalid data",
			challenge: &model.Challenge{
				Type: "cashGreaterThanOrEqual",
				Data: map[string]any{"cash": "many"},
			},
			wantErr: true,
		},
		{
			name: "negative threshold",
			challenge: &model.Challenge{
				Type: "coinLessThanOrEqual",
				Data: map[string]any{"coin": -1},
			},
			wantErr: true,
		},
		{
			name: "unknown item",
			challenge: &model.Challenge{
				Type: "specificItemCount",
				Data: map[string]any{"item_id": "laser1", "count": 1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseChallenge(ctx, tt.challenge)
			if tt.wantErr {
				require.True(t, errorx.Is(err, errorx.BadRequest), "got %v", err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
