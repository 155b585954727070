package throttle

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisThrottle shares the per-client window across processes using a
// SET NX key with a TTL equal to the window: the request that manages to
// create the key is the one that is allowed.
type RedisThrottle struct {
	client *redis.Client
	window time.Duration
	prefix string
}

func NewRedisThrottle(client *redis.Client, window time.Duration) *RedisThrottle {
	return &RedisThrottle{
		client: client,
		window: window,
		prefix: "geo_throttle:",
	}
}

// Allow reports whether clientID may make a request now. A Redis failure
// counts as allowed so that a broken limiter never blocks the proxy.
func (r *RedisThrottle) Allow(ctx context.Context, clientID string) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.prefix+clientID, 1, r.window).Result()
	if err != nil {
		return true, fmt.Errorf("throttle: redis setnx for %q: %w", clientID, err)
	}

	return ok, nil
}
