// Package session implements the server-side session store. A session
// is a Redis record keyed by a random id and holding the authenticated
// user's id; expiry is governed entirely by the store's TTL.
package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNoSession reports a missing or expired session id.
var ErrNoSession = errors.New("session not found")

// Store creates, resolves and destroys sessions.
type Store interface {
	Create(ctx context.Context, userID uint64) (string, error)
	Get(ctx context.Context, sid string) (uint64, error)
	Destroy(ctx context.Context, sid string) error
}

// RedisStore keeps sessions under "sess:<uuid>" with a fixed TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, userID uint64) (string, error) {
	sid := uuid.NewString()
	if err := s.client.Set(ctx, key(sid), strconv.FormatUint(userID, 10), s.ttl).Err(); err != nil {
		return "", err
	}
	return sid, nil
}

func (s *RedisStore) Get(ctx context.Context, sid string) (uint64, error) {
	v, err := s.client.Get(ctx, key(sid)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNoSession
		}
		return 0, err
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrNoSession
	}
	return id, nil
}

func (s *RedisStore) Destroy(ctx context.Context, sid string) error {
	return s.client.Del(ctx, key(sid)).Err()
}

func key(sid string) string { return "sess:" + sid }
