package eventclaim

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/questx-lab/eventreward/internal/common"
	"github.com/questx-lab/eventreward/internal/entity"
	"github.com/questx-lab/eventreward/internal/repository"
	"github.com/questx-lab/eventreward/pkg/xredis"
)

const mysqlDuplicateEntry = 1062

var ErrLockHeld = errors.New("the claim lock is held by another request")

type Lock interface {
	Release(ctx context.Context) error
}

// Locker serializes claims of the same user on the same event. A lock lives
// at most for its ttl, so a crashed claimer cannot block the key forever.
type Locker interface {
	Acquire(ctx context.Context, eventID, userID string) (Lock, error)
}

type databaseLocker struct {
	lockRepo repository.ClaimLockRepository
	ttl      time.Duration
}

func NewDatabaseLocker(lockRepo repository.ClaimLockRepository, ttl time.Duration) *databaseLocker {
	return &databaseLocker{lockRepo: lockRepo, ttl: ttl}
}

func (l *databaseLocker) Acquire(ctx context.Context, eventID, userID string) (Lock, error) {
	lock := &entity.ClaimLock{
		LockKey:   common.ClaimLockKey(eventID, userID),
		Owner:     uuid.NewString(),
		CreatedAt: time.Now(),
	}

	ok, err := l.lockRepo.TryInsert(ctx, lock, l.ttl)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrLockHeld
		}

		return nil, err
	}

	if !ok {
		return nil, ErrLockHeld
	}

	return &databaseLock{lockRepo: l.lockRepo, key: lock.LockKey, owner: lock.Owner}, nil
}

type databaseLock struct {
	lockRepo repository.ClaimLockRepository
	key      string
	owner    string
}

func (l *databaseLock) Release(ctx context.Context) error {
	return l.lockRepo.Delete(ctx, l.key, l.owner)
}

type redisLocker struct {
	redisClient xredis.Client
	ttl         time.Duration
}

func NewRedisLocker(redisClient xredis.Client, ttl time.Duration) *redisLocker {
	return &redisLocker{redisClient: redisClient, ttl: ttl}
}

func (l *redisLocker) Acquire(ctx context.Context, eventID, userID string) (Lock, error) {
	key := common.RedisKeyClaimLock(eventID, userID)
	owner := uuid.NewString()
	ok, err := l.redisClient.SetNX(ctx, key, owner, l.ttl)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrLockHeld
	}

	return &redisLock{redisClient: l.redisClient, key: key, owner: owner}, nil
}

type redisLock struct {
	redisClient xredis.Client
	key         string
	owner       string
}

func (l *redisLock) Release(ctx context.Context) error {
	return l.redisClient.DelIfEqual(ctx, l.key, l.owner)
}

// isDuplicateKey reports whether err is a violation of a unique constraint,
// which happens when two claimers insert the same lock at the same time.
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
