package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/questx-lab/eventreward/internal/model"
	"github.com/questx-lab/eventreward/pkg/errorx"
	"github.com/questx-lab/eventreward/pkg/xcontext"
)

type UserCaller interface {
	GetSnapshot(ctx context.Context, userID string) (*model.UserSnapshot, error)
	GiveRewards(ctx context.Context, userID string, rewards []model.Reward) (*model.Balance, error)
	Close()
}

type userCaller struct {
	client *rpc.Client
}

func NewUserCaller(client *rpc.Client) *userCaller {
	return &userCaller{client: client}
}

func (c *userCaller) GetSnapshot(ctx context.Context, userID string) (*model.UserSnapshot, error) {
	var result model.UserSnapshot
	if err := c.client.CallContext(ctx, &result, c.fname(ctx, "getSnapshot"), userID); err != nil {
		return nil, convertError(err)
	}

	return &result, nil
}

func (c *userCaller) GiveRewards(
	ctx context.Context, userID string, rewards []model.Reward,
) (*model.Balance, error) {
	var result model.Balance
	req := model.GiveRewardsRequest{UserID: userID, Rewards: rewards}
	if err := c.client.CallContext(ctx, &result, c.fname(ctx, "giveRewards"), req); err != nil {
		return nil, convertError(err)
	}

	return &result, nil
}

func (c *userCaller) Close() {
	c.client.Close()
}

func (c *userCaller) fname(ctx context.Context, funcName string) string {
	return fmt.Sprintf("%s_%s", xcontext.Configs(ctx).UserServer.RPCName, funcName)
}

// convertError rebuilds the errorx.Error sent by the server. Other errors,
// such as transport failures, are returned as they are.
func convertError(err error) error {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		code := errorx.Code(rpcErr.ErrorCode())
		if code >= errorx.Unknown.Code && code <= errorx.Gone {
			return errorx.Error{Code: code, Message: rpcErr.Error()}
		}
	}

	return err
}
