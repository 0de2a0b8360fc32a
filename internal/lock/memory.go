package lock

import (
	"context"
	"sync"
	"time"
)

// Memory is a process-local Lease for single-instance deployments.
type Memory struct {
	mu   sync.Mutex
	held map[string]time.Time // key -> expiry
}

func NewMemory() *Memory {
	return &Memory{held: make(map[string]time.Time)}
}

func (m *Memory) TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	if exp, ok := m.held[key]; ok && exp.After(now) {
		return false, nil
	}
	m.held[key] = now.Add(ttl)
	return true, nil
}

func (m *Memory) Release(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, key)
	return nil
}
