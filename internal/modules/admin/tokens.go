package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func NewToken() string { return uuid.NewString() }

type memEntry struct {
	state   State
	expires time.Time
}

// MemoryStore keeps token state in process. Entries expire after ttl.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, entries: map[string]memEntry{}}
}

func (s *MemoryStore) Begin(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.prune(now)
	if e, ok := s.entries[token]; ok {
		if e.state == StateDone {
			return ErrAlreadySubmitted
		}
		return ErrSubmissionInFlight
	}
	s.entries[token] = memEntry{state: StateSubmitting, expires: now.Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Complete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memEntry{state: StateDone, expires: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Release(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}

func (s *MemoryStore) prune(now time.Time) {
	for k, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, k)
		}
	}
}

// RedisStore shares token state between storefront replicas.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client redis.Cmdable, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(token string) string { return s.prefix + token }

func (s *RedisStore) Begin(ctx context.Context, token string) error {
	ok, err := s.client.SetNX(ctx, s.key(token), string(StateSubmitting), s.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	if ok {
		return nil
	}

	v, err := s.client.Get(ctx, s.key(token)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		// expired between the two calls; still treat it as taken
		return ErrSubmissionInFlight
	case err != nil:
		return fmt.Errorf("redis get: %w", err)
	case State(v) == StateDone:
		return ErrAlreadySubmitted
	default:
		return ErrSubmissionInFlight
	}
}

func (s *RedisStore) Complete(ctx context.Context, token string) error {
	return s.client.Set(ctx, s.key(token), string(StateDone), s.ttl).Err()
}

func (s *RedisStore) Release(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}
