package store

import (
	"context"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/badele/textanalyzer/internal/types"
)

const defaultRedisPrefix = "textanalyzer:"

// RedisStore implements Store on Redis hashes.
//
// Keys, relative to the prefix:
//
//	texts:seq, tokens:seq   id sequences
//	text:<id>               hash {content}
//	text:<id>:tokens        list of token ids in position order
//	token:<id>              hash {text_id, token, position}
//	stats:<text_id>         hash {token_count, avg_len, max_len, min_len}
type RedisStore struct {
	client    *redis.Client
	prefix    string
	closeOnce sync.Once
	closeErr  error
}

// OpenRedis checks the connection and returns a store using client.
func OpenRedis(ctx context.Context, client *redis.Client, prefix string) (*RedisStore, error) {
	if client == nil {
		return nil, storageErr(StoreTypeRedis, "open", ErrInvalidConfig)
	}
	if prefix == "" {
		prefix = defaultRedisPrefix
	}

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, storageErr(StoreTypeRedis, "open", err)
	}

	return &RedisStore{client: client, prefix: prefix}, nil
}

func (s *RedisStore) key(parts ...string) string {
	k := s.prefix
	for i, p := range parts {
		if i > 0 {
			k += ":"
		}
		k += p
	}
	return k
}

func (s *RedisStore) textKey(id int64) string {
	return s.key("text", strconv.FormatInt(id, 10))
}

func (s *RedisStore) textExists(ctx context.Context, c redis.Cmdable, id int64) (bool, error) {
	n, err := c.Exists(ctx, s.textKey(id)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// InsertText implements Store.
func (s *RedisStore) InsertText(ctx context.Context, content string) (int64, error) {
	id, err := s.client.Incr(ctx, s.key("texts", "seq")).Result()
	if err != nil {
		return 0, storageErr(StoreTypeRedis, "insert_text", err)
	}

	if err := s.client.HSet(ctx, s.textKey(id), "content", content).Err(); err != nil {
		return 0, storageErr(StoreTypeRedis, "insert_text", err)
	}

	return id, nil
}

// InsertToken implements Store.
func (s *RedisStore) InsertToken(ctx context.Context, textID int64, value string, position int) (int64, error) {
	ok, err := s.textExists(ctx, s.client, textID)
	if err != nil {
		return 0, storageErr(StoreTypeRedis, "insert_token", err)
	}
	if !ok {
		return 0, storageErr(StoreTypeRedis, "insert_token", ErrTextNotFound)
	}

	id, err := s.client.Incr(ctx, s.key("tokens", "seq")).Result()
	if err != nil {
		return 0, storageErr(StoreTypeRedis, "insert_token", err)
	}

	tokenID := strconv.FormatInt(id, 10)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.key("token", tokenID),
			"text_id", textID,
			"token", value,
			"position", position,
		)
		pipe.RPush(ctx, s.textKey(textID)+":tokens", tokenID)
		return nil
	})
	if err != nil {
		return 0, storageErr(StoreTypeRedis, "insert_token", err)
	}

	return id, nil
}

// InsertStats implements Store.
// Uses WATCH/MULTI/EXEC so that a concurrent writer cannot record stats twice.
func (s *RedisStore) InsertStats(ctx context.Context, textID int64, stats types.Stats) error {
	key := s.key("stats", strconv.FormatInt(textID, 10))

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		ok, err := s.textExists(ctx, tx, textID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrTextNotFound
		}

		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrDuplicateStats
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key,
				"token_count", stats.TokenCount,
				"avg_len", stats.AvgLen,
				"max_len", stats.MaxLen,
				"min_len", stats.MinLen,
			)
			return nil
		})
		return err
	}, key)
	if err != nil {
		return storageErr(StoreTypeRedis, "insert_stats", err)
	}

	return nil
}

// Close implements Store.
func (s *RedisStore) Close() error {
	s.closeOnce.Do(func() {
		if err := s.client.Close(); err != nil {
			s.closeErr = storageErr(StoreTypeRedis, "close", err)
		}
	})
	return s.closeErr
}

var _ Store = (*RedisStore)(nil)
