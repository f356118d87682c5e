package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mentorsurvey/internal/model"
)

const defaultUpdateRetries = 5

// RedisStore keeps sessions as JSON strings with a sliding TTL. Update runs an
// optimistic WATCH/MULTI transaction and retries when the key changed
// underneath it.
type RedisStore struct {
	client  *redis.Client
	ttl     time.Duration
	retries int
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client:  client,
		ttl:     ttl,
		retries: defaultUpdateRetries,
	}
}

func (c *RedisStore) key(id string) string {
	return fmt.Sprintf("survey:session:%s", id)
}

func (c *RedisStore) Get(ctx context.Context, id string) (*model.Session, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return decodeSession(data)
}

func (c *RedisStore) Put(ctx context.Context, s *model.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(s.ID), data, c.ttl).Err()
}

// Add uses SETNX. When the key exists but expires before it can be read, the
// insert is attempted again.
func (c *RedisStore) Add(ctx context.Context, s *model.Session) (*model.Session, bool, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, false, err
	}
	for i := 0; i < c.retries; i++ {
		ok, err := c.client.SetNX(ctx, c.key(s.ID), data, c.ttl).Result()
		if err != nil {
			return nil, false, err
		}
		if ok {
			return s, true, nil
		}
		existing, err := c.Get(ctx, s.ID)
		if errors.Is(err, ErrSessionNotFound) {
			continue
		}
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	return nil, false, fmt.Errorf("%w: %s", ErrConflict, s.ID)
}

func (c *RedisStore) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *RedisStore) Update(ctx context.Context, id string, fn UpdateFunc) (*model.Session, error) {
	key := c.key(id)
	var updated *model.Session

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
		}
		if err != nil {
			return err
		}
		s, err := decodeSession(data)
		if err != nil {
			return err
		}
		if err := fn(s); err != nil {
			return err
		}
		out, err := json.Marshal(s)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, c.ttl)
			return nil
		})
		if err == nil {
			updated = s
		}
		return err
	}

	for i := 0; i < c.retries; i++ {
		err := c.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("%w: %s", ErrConflict, id)
}

func decodeSession(data []byte) (*model.Session, error) {
	var s model.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.Answers == nil {
		s.Answers = map[string]model.Answers{}
	}
	return &s, nil
}
