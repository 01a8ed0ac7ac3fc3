//go:build integration

package redis_test

import (
	"context"
	"testing"
	"time"

	"funntour/internal/infra/cache/redis"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

type ResetTokenStoreSuite struct {
	suite.Suite
	container *tcredis.RedisContainer
	client    *goredis.Client
	store     *redis.ResetTokenStore
}

func TestResetTokenStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ResetTokenStoreSuite))
}

func (s *ResetTokenStoreSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	s.Require().NoError(err)
	s.container = container

	uri, err := container.ConnectionString(ctx)
	s.Require().NoError(err)

	opts, err := goredis.ParseURL(uri)
	s.Require().NoError(err)
	s.client = goredis.NewClient(opts)
	s.store = redis.NewResetTokenStore(s.client)
}

func (s *ResetTokenStoreSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *ResetTokenStoreSuite) SetupTest() {
	s.Require().NoError(s.client.FlushAll(context.Background()).Err())
}

func (s *ResetTokenStoreSuite) TestConsumeIsSingleUse() {
	ctx := context.Background()
	expires := time.Now().Add(10 * time.Minute)

	ok, err := s.store.Consume(ctx, "jti-1", 7, expires)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.store.Consume(ctx, "jti-1", 7, expires)
	s.Require().NoError(err)
	s.False(ok)

	consumed, err := s.store.IsConsumed(ctx, "jti-1")
	s.Require().NoError(err)
	s.True(consumed)
}

func (s *ResetTokenStoreSuite) TestUnknownTokenIsNotConsumed() {
	consumed, err := s.store.IsConsumed(context.Background(), "missing")
	s.Require().NoError(err)
	s.False(consumed)
}

func (s *ResetTokenStoreSuite) TestMarkerExpiresWithToken() {
	ctx := context.Background()

	ok, err := s.store.Consume(ctx, "jti-ttl", 1, time.Now().Add(time.Minute))
	s.Require().NoError(err)
	s.True(ok)

	ttl, err := s.client.TTL(ctx, "funntour:reset:jti:jti-ttl").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, time.Minute)
}
