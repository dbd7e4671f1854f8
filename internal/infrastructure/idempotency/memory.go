package idempotency

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"inn_ledger/internal/port"
)

// Memory is used when no Redis address is configured. Keys do not survive a
// restart and are not shared between replicas.
type Memory struct {
	cache *cache.Cache
}

var _ port.IdempotencyStore = (*Memory)(nil)

func NewMemory(cleanupInterval time.Duration) *Memory {
	return &Memory{cache: cache.New(cache.NoExpiration, cleanupInterval)}
}

func (m *Memory) Reserve(_ context.Context, key string, ttl time.Duration) (bool, error) {
	// Add fails when an unexpired item exists.
	if err := m.cache.Add(key, struct{}{}, ttl); err != nil {
		return false, nil //nolint:nilerr
	}

	return true, nil
}

func (m *Memory) Release(_ context.Context, key string) error {
	m.cache.Delete(key)

	return nil
}
