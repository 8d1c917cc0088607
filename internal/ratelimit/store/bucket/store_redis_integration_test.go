//go:build integration

package bucket_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/illustspace/gsr/internal/ratelimit/store/bucket"
	"github.com/illustspace/gsr/pkg/testutil/containers"
)

type RedisBucketStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *bucket.RedisBucketStore
}

func TestRedisBucketStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisBucketStoreSuite))
}

func (s *RedisBucketStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = bucket.NewRedisBucketStore(s.redis.Client)
}

func (s *RedisBucketStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisBucketStoreSuite) TestLimitIsShared() {
	ctx := context.Background()
	other := bucket.NewRedisBucketStore(s.redis.Client)

	for i := range 4 {
		store := s.store
		if i%2 == 1 {
			store = other
		}
		result, err := store.Allow(ctx, "ratelimit:mint:tz1", 4, time.Minute)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(4-i-1, result.Remaining)
	}

	result, err := s.store.Allow(ctx, "ratelimit:mint:tz1", 4, time.Minute)
	s.Require().NoError(err)
	s.False(result.Allowed)
	s.Positive(result.RetryAfter)

	ttl, err := s.redis.Client.PTTL(ctx, "ratelimit:mint:tz1").Result()
	s.Require().NoError(err)
	s.Positive(ttl)
}

func (s *RedisBucketStoreSuite) TestReset() {
	ctx := context.Background()
	_, err := s.store.AllowN(ctx, "ratelimit:mint:tz2", 3, 3, time.Minute)
	s.Require().NoError(err)

	s.Require().NoError(s.store.Reset(ctx, "ratelimit:mint:tz2"))
	result, err := s.store.Allow(ctx, "ratelimit:mint:tz2", 3, time.Minute)
	s.Require().NoError(err)
	s.True(result.Allowed)
}
