package admin

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against REDIS_ADDR, or localhost:6379; skipped when neither answers.
func setupRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DialTimeout: 500 * time.Millisecond})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("Redis not available at %s: %v", addr, err)
	}

	prefix := "test:submission:" + NewToken() + ":"
	t.Cleanup(func() {
		iter := client.Scan(ctx, 0, prefix+"*", 100).Iterator()
		for iter.Next(ctx) {
			client.Del(ctx, iter.Val())
		}
		_ = client.Close()
	})
	return NewRedisStore(client, prefix, time.Minute)
}

func TestRedisStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := setupRedisStore(t)
	tok := NewToken()

	require.NoError(t, s.Begin(ctx, tok))
	assert.ErrorIs(t, s.Begin(ctx, tok), ErrSubmissionInFlight)

	require.NoError(t, s.Release(ctx, tok))
	require.NoError(t, s.Begin(ctx, tok))
	require.NoError(t, s.Complete(ctx, tok))
	assert.ErrorIs(t, s.Begin(ctx, tok), ErrAlreadySubmitted)

	v, err := s.client.Get(ctx, s.key(tok)).Result()
	require.NoError(t, err)
	assert.Equal(t, string(StateDone), v)
}

func TestMemoryStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)
	tok := NewToken()

	require.NoError(t, s.Begin(ctx, tok))
	assert.ErrorIs(t, s.Begin(ctx, tok), ErrSubmissionInFlight)
	require.NoError(t, s.Release(ctx, tok))

	require.NoError(t, s.Begin(ctx, tok))
	require.NoError(t, s.Complete(ctx, tok))
	assert.ErrorIs(t, s.Begin(ctx, tok), ErrAlreadySubmitted)
}
