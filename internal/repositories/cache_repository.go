package repositories

import (
	"context"
	"time"
)

// CacheRepositoryInterface - key/value хранилище с TTL.
// Get отдаёт apperrors.ErrNotFound, если ключа нет.
type CacheRepositoryInterface interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key ...string) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}
