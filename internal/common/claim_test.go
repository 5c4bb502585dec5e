package common

import (
	"errors"
	"testing"

	"github.com/questx-lab/eventreward/pkg/errorx"
	"github.com/stretchr/testify/require"
)

func TestClaimResult(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: "success"},
		{err: errorx.New(errorx.NotFound, "Not found event"), want: "not_found"},
		{err: errorx.New(errorx.PermissionDenied, "The event has ended"), want: "forbidden"},
		{err: errorx.New(errorx.AlreadyExists, "Rewards have already been claimed"), want: "conflict"},
		{err: errorx.New(errorx.Gone, "The event rewards are exhausted"), want: "exhausted"},
		{err: errorx.New(errorx.BadRequest, "Not allow empty event id"), want: "validation"},
		{err: errorx.New(errorx.Internal, "Cannot get event"), want: "internal"},
		{err: errors.New("connection refused"), want: "internal"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, ClaimResult(tt.err))
	}
}

func TestClaimLockKey(t *testing.T) {
	require.Equal(t, "event1:user1", ClaimLockKey("event1", "user1"))
	require.Equal(t, "claim_lock:event1:user1", RedisKeyClaimLock("event1", "user1"))
}
