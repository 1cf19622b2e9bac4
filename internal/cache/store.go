package cache

import "time"

// Store defines the contract for cache implementations.
type Store interface {
	// Set stores a value with the given key and duration
	Set(key string, value interface{}, duration time.Duration)

	// Get retrieves a value by key
	// Returns the value and true if found, nil and false otherwise
	Get(key string) (interface{}, bool)

	// Delete removes a value by key
	Delete(key string)

	// GetOrSet retrieves a value, or loads and stores it if not found
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)

	// Close closes any underlying connections (for Redis, etc.)
	Close() error
}
