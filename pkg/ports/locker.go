package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker coordinates session access across replicas. A single
// process relies on the session manager's local mutexes alone; multiple
// replicas additionally need a shared lock so no two turns for the same
// session run concurrently anywhere.
type DistributedLocker interface {
	// Lock blocks until the lock for key is acquired, the context is
	// canceled, or the TTL expires (implementation specific). The returned
	// UnlockFunc MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
