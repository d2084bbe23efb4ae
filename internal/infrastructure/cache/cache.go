package cache

import (
	"context"
	"time"
)

// Store is a small key-value cache used for room token resolution. Both the
// Redis-backed client and the in-memory fallback implement it.
type Store interface {
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, bool)
	Delete(ctx context.Context, key string) error
}
