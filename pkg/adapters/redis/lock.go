package redis

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/stepedge/concierge/pkg/ports"
)

// Locker implements ports.DistributedLocker using Redis SET NX PX, so turns
// for one session stay serialized even across replicas.
type Locker struct {
	client *backend.Client
	prefix string
}

// NewLocker creates a Redis locker.
func NewLocker(client *backend.Client, prefix string) *Locker {
	return &Locker{
		client: client,
		prefix: prefix,
	}
}

// Lock acquires a distributed lock for the given key, polling with backoff
// until acquired or the context ends. The unlock function checks the stored
// value before deleting, so an expired lock taken over by another holder is
// never released by the old one.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	lockKey := l.prefix + "lock:" + key
	val := fmt.Sprintf("%d", time.Now().UnixNano())

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			success, err := l.client.SetNX(ctx, lockKey, val, ttl).Result()
			if err != nil {
				return nil, fmt.Errorf("redis error acquiring lock: %w", err)
			}
			if !success {
				continue
			}
			return func(ctx context.Context) error {
				script := `
					if redis.call("get", KEYS[1]) == ARGV[1] then
						return redis.call("del", KEYS[1])
					else
						return 0
					end
				`
				return l.client.Eval(ctx, script, []string{lockKey}, val).Err()
			}, nil
		}
	}
}
