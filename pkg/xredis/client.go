package xredis

import (
	"context"
	"time"

	"github.com/questx-lab/eventreward/pkg/xcontext"
	"github.com/redis/go-redis/v9"
)

type Client interface {
	Ping(ctx context.Context) error

	// SetNX sets the key only if it does not exist. It reports whether the
	// key was set.
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)

	// DelIfEqual deletes the key only if its value equals to value.
	DelIfEqual(ctx context.Context, key, value string) error
}

var delIfEqualScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type client struct {
	redisClient *redis.Client
}

func NewClient(ctx context.Context) (*client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:            xcontext.Configs(ctx).Redis.Addr,
		MaxRetries:      5,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		PoolFIFO:        false,
		PoolSize:        5,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &client{redisClient: redisClient}, nil
}

func (c *client) Ping(ctx context.Context) error {
	return c.redisClient.Ping(ctx).Err()
}

func (c *client) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return c.redisClient.SetNX(ctx, key, value, ttl).Result()
}

func (c *client) DelIfEqual(ctx context.Context, key, value string) error {
	err := delIfEqualScript.Run(ctx, c.redisClient, []string{key}, value).Err()
	if err == nil || err == redis.Nil {
		return nil
	}

	return err
}
