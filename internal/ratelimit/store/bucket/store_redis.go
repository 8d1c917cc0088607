package bucket

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/illustspace/gsr/internal/ratelimit/models"
)

// RedisBucketStore keeps each window as a sorted set of request timestamps so
// every replica draws from the same budget.
type RedisBucketStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisBucketStore(client *redis.Client) *RedisBucketStore {
	return &RedisBucketStore{client: client, now: time.Now}
}

func (s *RedisBucketStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error) {
	return s.AllowN(ctx, key, 1, limit, window)
}

// AllowN counts the live part of the window and, when there is room, trims
// expired entries and records cost new ones in one MULTI. Reads must not write
// the watched key or EXEC would always abort.
func (s *RedisBucketStore) AllowN(ctx context.Context, key string, cost int, limit int, window time.Duration) (*models.RateLimitResult, error) {
	var result *models.RateLimitResult
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		now := s.now()
		cutoff := strconv.FormatInt(now.Add(-window).UnixMicro(), 10)
		live := &redis.ZRangeBy{Min: "(" + cutoff, Max: "+inf", Count: 1}

		count, err := tx.ZCount(ctx, key, live.Min, live.Max).Result()
		if err != nil {
			return err
		}
		entries, err := tx.ZRangeByScoreWithScores(ctx, key, live).Result()
		if err != nil {
			return err
		}

		oldest := now
		if len(entries) > 0 {
			oldest = time.UnixMicro(int64(entries[0].Score))
		}
		if int(count)+cost > limit {
			result = models.Denied(limit, now, oldest.Add(window))
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			members := make([]redis.Z, 0, cost)
			for range cost {
				members = append(members, redis.Z{Score: float64(now.UnixMicro()), Member: uuid.NewString()})
			}
			pipe.ZRemRangeByScore(ctx, key, "-inf", cutoff)
			pipe.ZAdd(ctx, key, members...)
			pipe.PExpire(ctx, key, window)
			return nil
		})
		if err != nil {
			return err
		}
		result = &models.RateLimitResult{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit - int(count) - cost,
			ResetAt:   oldest.Add(window),
		}
		return nil
	}, key)
	if err != nil {
		return nil, fmt.Errorf("rate limit %s: %w", key, err)
	}
	return result, nil
}

func (s *RedisBucketStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
