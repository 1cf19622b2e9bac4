package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is the in-memory Store used when Redis is unavailable or the
// deployment runs without a cache container.
type MemoryStore struct {
	cache *gocache.Cache
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an in-memory store with the given default expiration
// and cleanup interval.
func NewMemoryStore(defaultExpiration, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{cache: gocache.New(defaultExpiration, cleanupInterval)}
}

func (m *MemoryStore) Set(key string, value interface{}, duration time.Duration) {
	m.cache.Set(key, value, duration)
}

func (m *MemoryStore) Get(key string) (interface{}, bool) {
	return m.cache.Get(key)
}

func (m *MemoryStore) Delete(key string) {
	m.cache.Delete(key)
}

func (m *MemoryStore) GetOrSet(
	key string,
	duration time.Duration,
	loader func() (any, error),
) (interface{}, error) {
	if val, found := m.Get(key); found {
		return val, nil
	}

	val, err := loader()
	if err != nil {
		return nil, err
	}

	m.Set(key, val, duration)
	return val, nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
