package lock

import (
	"context"
	"time"
)

// Lease is a short-TTL mutual-exclusion token. The check runner acquires
// one per monitor so overlapping scheduler ticks or manual triggers skip
// instead of racing the check-then-write window.
type Lease interface {
	// TryAcquire returns false when the key is already held. It never blocks.
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
