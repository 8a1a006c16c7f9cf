package common

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"kras-kickers/volunteers/internal/auth"
	"kras-kickers/volunteers/internal/constants"
)

// RedisSessionStore keeps sessions in Redis under session:<id>
type RedisSessionStore struct {
	redis *redis.Client
}

var _ SessionStore = (*RedisSessionStore)(nil)

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{redis: client}
}

func (s *RedisSessionStore) key(id string) string {
	return "session:" + id
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*auth.Session, error) {
	val, err := s.redis.Get(ctx, s.key(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session auth.Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		// an unreadable session is treated as no session
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, session *auth.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.redis.Set(ctx, s.key(session.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx).Err()
}

// MemorySessionStore keeps sessions in an in-process go-cache, for single
// instance deployments without Redis. Sessions are stored encoded so
// concurrent requests never share one *auth.Session.
type MemorySessionStore struct {
	cache *cache.Cache
}

var _ SessionStore = (*MemorySessionStore)(nil)

// NewMemorySessionStore sweeps expired sessions every cleanupInterval.
func NewMemorySessionStore(cleanupInterval time.Duration) *MemorySessionStore {
	return &MemorySessionStore{cache: cache.New(cache.NoExpiration, cleanupInterval)}
}

// Len returns the number of stored sessions, expired ones included until the next sweep.
func (s *MemorySessionStore) Len() int {
	return s.cache.ItemCount()
}

func (s *MemorySessionStore) key(id string) string {
	return string(constants.CachePrefixSession) + id
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (*auth.Session, error) {
	val, found := s.cache.Get(s.key(id))
	if !found {
		return nil, ErrSessionNotFound
	}
	data, ok := val.([]byte)
	if !ok {
		return nil, ErrSessionNotFound
	}
	var session auth.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (s *MemorySessionStore) Set(_ context.Context, session *auth.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	s.cache.Set(s.key(session.ID), data, ttl)
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.cache.Delete(s.key(id))
	return nil
}

func (s *MemorySessionStore) Ping(context.Context) error { return nil }
