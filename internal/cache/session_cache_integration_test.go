//go:build integration

package cache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"mentorsurvey/internal/cache"
	"mentorsurvey/internal/model"
	"mentorsurvey/internal/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *cache.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = cache.NewRedisStore(s.redis.Client, 20*time.Minute)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func newRedisSession(id string) *model.Session {
	return &model.Session{
		ID:        id,
		Status:    model.SessionInProgress,
		Plan:      []model.Instance{{InstanceID: "intro__1", Kind: model.BlockIntro}},
		Answers:   map[string]model.Answers{},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func (s *RedisStoreSuite) TestRoundTripAndTTL() {
	ctx := context.Background()
	s.Require().NoError(s.store.Put(ctx, newRedisSession("abc")))

	got, err := s.store.Get(ctx, "abc")
	s.Require().NoError(err)
	s.Equal("intro__1", got.Plan[0].InstanceID)

	ttl, err := s.redis.Client.TTL(ctx, "survey:session:abc").Result()
	s.Require().NoError(err)
	s.Greater(ttl, 19*time.Minute)

	s.Require().NoError(s.store.Delete(ctx, "abc"))
	_, err = s.store.Get(ctx, "abc")
	s.ErrorIs(err, cache.ErrSessionNotFound)
}

func (s *RedisStoreSuite) TestAddKeepsLiveSession() {
	ctx := context.Background()
	first := newRedisSession("abc")
	first.Cursor = 2

	_, added, err := s.store.Add(ctx, first)
	s.Require().NoError(err)
	s.True(added)

	stored, added, err := s.store.Add(ctx, newRedisSession("abc"))
	s.Require().NoError(err)
	s.False(added)
	s.Equal(2, stored.Cursor)

	ttl, err := s.redis.Client.TTL(ctx, "survey:session:abc").Result()
	s.Require().NoError(err)
	s.Greater(ttl, 19*time.Minute)
}

func (s *RedisStoreSuite) TestUpdateMissing() {
	_, err := s.store.Update(context.Background(), "missing", func(*model.Session) error { return nil })
	s.ErrorIs(err, cache.ErrSessionNotFound)
}

func (s *RedisStoreSuite) TestConcurrentUpdatesDoNotLoseWrites() {
	ctx := context.Background()
	s.Require().NoError(s.store.Put(ctx, newRedisSession("abc")))

	const writers = 4
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.Update(ctx, "abc", func(sess *model.Session) error {
				sess.Cursor++
				return nil
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		s.ErrorIs(err, cache.ErrConflict)
	}

	got, err := s.store.Get(ctx, "abc")
	s.Require().NoError(err)
	s.Equal(succeeded, got.Cursor)
}
