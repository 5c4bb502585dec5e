package testutil

import (
	"context"
	"time"
)

type MockRedisClient struct {
	SetNXFunc func(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	DelIfFunc func(ctx context.Context, key, value string) error
	PingFunc  func(ctx context.Context) error
}

func (m *MockRedisClient) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if m.SetNXFunc != nil {
		return m.SetNXFunc(ctx, key, value, ttl)
	}

	return true, nil
}

func (m *MockRedisClient) DelIfEqual(ctx context.Context, key, value string) error {
	if m.DelIfFunc != nil {
		return m.DelIfFunc(ctx, key, value)
	}

	return nil
}

func (m *MockRedisClient) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}

	return nil
}
