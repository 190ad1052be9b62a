package cache

import (
	"context"
	"time"
)

// Cache is the key/value contract backing the search-result cache and the
// booking session store. Hash operations map one session to one hash key so a
// single field can be rewritten without touching its siblings.
type Cache interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error

	HSet(ctx context.Context, key, field, value string) error
	HGet(ctx context.Context, key, field string) (string, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

// ErrNotFound is returned by Get/HGet when the key or field is absent.
var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "cache: not found" }
