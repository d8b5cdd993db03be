package store

import (
	"github.com/redis/go-redis/v9"
)

// StoreOption is a functional option for configuring a store.
type StoreOption func(*storeConfig)

type storeConfig struct {
	path        string
	redisClient *redis.Client
	redisAddr   string
	redisPrefix string
}

// WithPath sets the database file of the sqlite store.
func WithPath(path string) StoreOption {
	return func(c *storeConfig) {
		c.path = path
	}
}

// WithRedisClient sets the Redis client for the Redis store.
func WithRedisClient(client *redis.Client) StoreOption {
	return func(c *storeConfig) {
		c.redisClient = client
	}
}

// WithRedisAddr makes the Redis store dial addr when no client is given.
func WithRedisAddr(addr string) StoreOption {
	return func(c *storeConfig) {
		c.redisAddr = addr
	}
}

// WithRedisPrefix sets the key prefix of the Redis store.
func WithRedisPrefix(prefix string) StoreOption {
	return func(c *storeConfig) {
		c.redisPrefix = prefix
	}
}
