package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"stackpad/backend/internal/config"
	"stackpad/backend/internal/logging"
)

const (
	dialTimeout  = 5 * time.Second
	readTimeout  = 3 * time.Second
	writeTimeout = 3 * time.Second
)

// Client owns the process-wide Redis connection. It is constructed once at
// startup and injected wherever Redis access is needed.
type Client struct {
	rdb       *redis.Client
	connected bool
}

// NewClient builds the Redis client and pings it once. The client is returned
// even when the ping fails so the pool can reconnect later; the ping outcome
// is recorded and reported through Connected.
func NewClient(cfg config.RedisConfig) *Client {
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = config.DefaultRedisPoolSize
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		PoolSize:     poolSize,
	})

	c := &Client{rdb: rdb}

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logging.Warn("Redis ping failed, continuing without cache connection",
			"addr", cfg.Addr(),
			"error", err.Error(),
		)
		return c
	}

	c.connected = true
	logging.Info("Connected to Redis", "addr", cfg.Addr())
	return c
}

// Connected reports the outcome of the startup ping. The flag is never
// refreshed, so a connection dropped after startup still reads true until
// the process restarts. Callers that need a live signal should use Ping.
func (c *Client) Connected() bool {
	return c.connected
}

// Ping issues a live round-trip against Redis.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Redis exposes the underlying go-redis client.
func (c *Client) Redis() *redis.Client {
	return c.rdb
}

// Close closes the underlying connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}
