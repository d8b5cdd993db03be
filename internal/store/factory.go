package store

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// StoreType represents the type of store.
type StoreType string

const (
	StoreTypeSQLite StoreType = "sqlite"
	StoreTypeMemory StoreType = "memory"
	StoreTypeRedis  StoreType = "redis"
)

// NewStore opens a Store of the given type.
// sqlite requires WithPath, redis requires WithRedisClient or WithRedisAddr.
func NewStore(ctx context.Context, storeType StoreType, opts ...StoreOption) (Store, error) {
	config := &storeConfig{}

	for _, opt := range opts {
		opt(config)
	}

	switch storeType {
	case StoreTypeSQLite:
		s, err := OpenSQLite(ctx, config.path)
		if err != nil {
			return nil, err
		}
		return s, nil

	case StoreTypeMemory:
		return NewMemoryStore(), nil

	case StoreTypeRedis:
		client := config.redisClient
		if client == nil {
			if config.redisAddr == "" {
				return nil, storageErr(storeType, "open", ErrInvalidConfig)
			}
			client = redis.NewClient(&redis.Options{Addr: config.redisAddr})
		}
		s, err := OpenRedis(ctx, client, config.redisPrefix)
		if err != nil {
			return nil, err
		}
		return s, nil

	default:
		return nil, storageErr(storeType, "open", ErrInvalidStoreType)
	}
}
