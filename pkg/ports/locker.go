package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock taken by DistributedLocker.Lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker serializes snapshot read-modify-write cycles of one game
// across processes sharing a store. session.Manager takes it after its
// in-process lock.
type DistributedLocker interface {
	// Lock blocks until key (the session id) is held, ctx is done or the
	// implementation gives up. The lock expires after ttl if never released.
	// The returned UnlockFunc must be called once the snapshot is saved.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
