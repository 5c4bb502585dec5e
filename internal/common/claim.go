package common

import (
	"fmt"

	"github.com/questx-lab/eventreward/pkg/errorx"
)

const (
	ClaimResultSuccess = "success"
)

// ClaimLockKey is the key of the lock serializing claims of a user on an
// event.
func ClaimLockKey(eventID, userID string) string {
	return fmt.Sprintf("%s:%s", eventID, userID)
}

// RedisKeyClaimLock is the redis key of ClaimLockKey.
func RedisKeyClaimLock(eventID, userID string) string {
	return fmt.Sprintf("claim_lock:%s", ClaimLockKey(eventID, userID))
}

// ClaimResult is the label of a claim outcome used by metrics.
func ClaimResult(err error) string {
	if err == nil {
		return ClaimResultSuccess
	}

	switch {
	case errorx.Is(err, errorx.NotFound):
		return "not_found"
	case errorx.Is(err, errorx.PermissionDenied):
		return "forbidden"
	case errorx.Is(err, errorx.AlreadyExists):
		return "conflict"
	case errorx.Is(err, errorx.Gone):
		return "exhausted"
	case errorx.Is(err, errorx.BadRequest):
		return "validation"
	default:
		return "internal"
	}
}

// IncreaseClaimCounter counts a claim outcome.
func IncreaseClaimCounter(err error) {
	PromCounters[EventClaimTotal].WithLabelValues(ClaimResult(err)).Inc()
}
