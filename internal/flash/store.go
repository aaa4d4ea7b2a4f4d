// Package flash carries one request outcome across a redirect. The outcome
// lives in Redis under a random key that the browser holds in a cookie.
package flash

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/tutor-helpdesk/internal/domain"
)

const keyPrefix = "flash:"

// Store persists a pending flash until it is read once.
type Store interface {
	Put(ctx context.Context, flash domain.Flash) (string, error)
	Take(ctx context.Context, id string) (*domain.Flash, error)
}

// RedisStore is a Store backed by go-redis.
type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisStore builds a store whose entries expire after ttl.
func NewRedisStore(client redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Put saves the flash and returns its id.
func (s *RedisStore) Put(ctx context.Context, flash domain.Flash) (string, error) {
	body, err := json.Marshal(flash)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	if err := s.client.Set(ctx, keyPrefix+id, body, s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// Take returns the flash and deletes it. A missing or expired id yields nil.
func (s *RedisStore) Take(ctx context.Context, id string) (*domain.Flash, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	body, err := s.client.GetDel(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var flash domain.Flash
	if err := json.Unmarshal(body, &flash); err != nil {
		return nil, err
	}
	return &flash, nil
}
