package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is what the noop cache returns from Get. Redis-backed reads
// surface redis.Nil instead; callers only care that the error is non-nil.
var ErrCacheMiss = errors.New("cache miss")

// Service is the cache surface the repositories and services share.
// Implementations must treat failures as soft; a cache miss or a redis
// hiccup never fails the request.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Increment(ctx context.Context, key string) (int64, error)
	SetExpire(ctx context.Context, key string, expiration time.Duration) error
	Publish(ctx context.Context, channel string, message interface{}) error
}

// noop backs deployments without redis and the service tests.
type noop struct{}

func NewNoop() Service { return noop{} }

func (noop) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}
func (noop) Get(ctx context.Context, key string, dest interface{}) error { return ErrCacheMiss }
func (noop) Delete(ctx context.Context, keys ...string) error            { return nil }
func (noop) Exists(ctx context.Context, key string) (bool, error)        { return false, nil }
func (noop) Increment(ctx context.Context, key string) (int64, error)    { return 0, nil }
func (noop) SetExpire(ctx context.Context, key string, expiration time.Duration) error {
	return nil
}
func (noop) Publish(ctx context.Context, channel string, message interface{}) error { return nil }
