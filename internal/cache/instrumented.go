package cache

import (
	"strings"
	"time"

	"stackpad/backend/internal/metrics"
)

// InstrumentedStore wraps a Store and counts hits and misses. Keys are
// reduced to their prefix before the first colon so metric cardinality stays
// bounded ("notes:all" counts under "notes").
type InstrumentedStore struct {
	inner Store
	reg   *metrics.Registry
}

var _ Store = (*InstrumentedStore)(nil)

// NewInstrumentedStore wraps the given store with hit/miss counters.
func NewInstrumentedStore(inner Store, reg *metrics.Registry) *InstrumentedStore {
	return &InstrumentedStore{inner: inner, reg: reg}
}

func keyPattern(key string) string {
	if prefix, _, ok := strings.Cut(key, ":"); ok {
		return prefix
	}
	return key
}

func (s *InstrumentedStore) Set(key string, value interface{}, duration time.Duration) {
	s.inner.Set(key, value, duration)
}

func (s *InstrumentedStore) Get(key string) (interface{}, bool) {
	val, found := s.inner.Get(key)
	if found {
		s.reg.CacheHitsTotal.WithLabelValues(keyPattern(key)).Inc()
	} else {
		s.reg.CacheMissesTotal.WithLabelValues(keyPattern(key)).Inc()
	}
	return val, found
}

func (s *InstrumentedStore) Delete(key string) {
	s.inner.Delete(key)
}

// GetOrSet goes through the instrumented Get so the hit/miss counters see
// every lookup, then stores loaded values through the wrapped store.
func (s *InstrumentedStore) GetOrSet(
	key string,
	duration time.Duration,
	loader func() (any, error),
) (interface{}, error) {
	if val, found := s.Get(key); found {
		return val, nil
	}

	val, err := loader()
	if err != nil {
		return nil, err
	}

	s.inner.Set(key, val, duration)
	return val, nil
}

func (s *InstrumentedStore) Close() error {
	return s.inner.Close()
}
