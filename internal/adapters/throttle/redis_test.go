package throttle

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisThrottle(t *testing.T) (*RedisThrottle, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisThrottle(client, 1*time.Second), mr
}

func TestRedisThrottleRejectsWithinWindow(t *testing.T) {
	th, _ := newRedisThrottle(t)

	ok, err := th.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = th.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisThrottleAllowsAfterWindow(t *testing.T) {
	th, mr := newRedisThrottle(t)

	ok, _ := th.Allow(context.Background(), "10.0.0.1")
	require.True(t, ok)

	mr.FastForward(1 * time.Second)

	ok, err := th.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisThrottleIsPerClient(t *testing.T) {
	th, _ := newRedisThrottle(t)

	ok, _ := th.Allow(context.Background(), "10.0.0.1")
	assert.True(t, ok)

	ok, _ = th.Allow(context.Background(), "10.0.0.2")
	assert.True(t, ok)
}

func TestRedisThrottleFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	th := NewRedisThrottle(client, 1*time.Second)

	mr.Close()

	// A broken limiter must never block the proxy.
	ok, err := th.Allow(context.Background(), "10.0.0.1")
	assert.True(t, ok)
	assert.Error(t, err)
}
