package escalate

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each window as a sorted set scored by unix-nano timestamp,
// so pruning is a single ZREMRANGEBYSCORE. Deployments that must not lose
// escalation counters across restarts point the tracker here.
type RedisStore struct {
	client *redis.Client
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Add(ctx context.Context, event, guildID, userID string, at time.Time, window time.Duration) (int, error) {
	key := storeKey(event, guildID, userID)
	cutoff := at.Add(-window).UnixNano()

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "-inf", fmt.Sprintf("%d", cutoff))
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(at.UnixNano()),
		Member: fmt.Sprintf("%d", at.UnixNano()),
	})
	count := pipe.ZCard(ctx, key)
	// keys self-expire one window after the last write
	pipe.Expire(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("redis window update failed: %w", err)
	}
	return int(count.Val()), nil
}

func (s *RedisStore) Reset(ctx context.Context, event, guildID, userID string) error {
	return s.client.Del(ctx, storeKey(event, guildID, userID)).Err()
}

func (s *RedisStore) Count(ctx context.Context, event, guildID, userID string, at time.Time, window time.Duration) (int, error) {
	key := storeKey(event, guildID, userID)
	cutoff := at.Add(-window).UnixNano()

	n, err := s.client.ZCount(ctx, key, fmt.Sprintf("%d", cutoff), "+inf").Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
