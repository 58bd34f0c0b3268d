package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	redisGlobalsKey = "relay:globals"
	redisGuildsKey  = "relay:guilds"
)

// RedisStore keeps relay state in Redis hashes: one hash for global keys, one
// hash per guild, plus a set indexing known guild ids. It is the backend for
// multi-replica deployments where the snapshot must survive pod churn.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the Redis instance at addr.
func NewRedisStore(addr string) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisStore{client: rdb}
}

// Ping verifies the connection. Used by the readiness probe.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the client's connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func guildHashKey(guildID string) string {
	return "relay:guild:" + guildID
}

// Get returns the value for a global key.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.HGet(ctx, redisGlobalsKey, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

// Put stores a global key.
func (s *RedisStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.HSet(ctx, redisGlobalsKey, key, value).Err(); err != nil {
		return fmt.Errorf("redis put %s: %w", key, err)
	}
	return nil
}

// GetGuild returns a per-guild value.
func (s *RedisStore) GetGuild(ctx context.Context, guildID, key string) ([]byte, error) {
	value, err := s.client.HGet(ctx, guildHashKey(guildID), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get guild %s/%s: %w", guildID, key, err)
	}
	return value, nil
}

// PutGuild stores a per-guild value and records the guild in the index set.
func (s *RedisStore) PutGuild(ctx context.Context, guildID, key string, value []byte) error {
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, guildHashKey(guildID), key, value)
	pipe.SAdd(ctx, redisGuildsKey, guildID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis put guild %s/%s: %w", guildID, key, err)
	}
	return nil
}

// DeleteGuild removes all state for a guild.
func (s *RedisStore) DeleteGuild(ctx context.Context, guildID string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, guildHashKey(guildID))
	pipe.SRem(ctx, redisGuildsKey, guildID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis delete guild %s: %w", guildID, err)
	}
	return nil
}

// ListGuilds returns the ids of guilds in the index set.
func (s *RedisStore) ListGuilds(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, redisGuildsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list guilds: %w", err)
	}
	return ids, nil
}
