package health

import (
	"context"
	"fmt"
	"time"
)

const defaultProbeTimeout = 2 * time.Second

// Prober answers, for one backing service, "is this reachable and responsive
// right now?". A nil error means healthy. Implementations must return
// failures as errors rather than panicking, and must bound their own attempt
// with a timeout.
type Prober interface {
	Name() string
	Probe(ctx context.Context) error
}

// rowQuerier is the slice of sqlx.DB the database probe needs.
type rowQuerier interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// DatabaseProbe checks Postgres liveness with a no-op query. Success requires
// the query to complete and return exactly one row scanning to 1; anything
// else, including a timeout, is a failure.
type DatabaseProbe struct {
	db      rowQuerier
	timeout time.Duration
}

// NewDatabaseProbe builds a probe over the injected connection handle.
func NewDatabaseProbe(db rowQuerier) *DatabaseProbe {
	return &DatabaseProbe{db: db, timeout: defaultProbeTimeout}
}

func (p *DatabaseProbe) Name() string { return "database" }

func (p *DatabaseProbe) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var got int
	if err := p.db.GetContext(ctx, &got, "SELECT 1"); err != nil {
		return fmt.Errorf("database probe: %w", err)
	}
	if got != 1 {
		return fmt.Errorf("database probe: unexpected result %d", got)
	}
	return nil
}

// ConnectionStater reports whether a cache connection was established.
type ConnectionStater interface {
	Connected() bool
}

// CacheProbe reports the cache client's recorded connection flag instead of
// issuing a round-trip command. This is a weaker liveness signal: a dropped
// but not-yet-detected connection still reads healthy. Callers that need a
// fresh answer should ping the client directly.
type CacheProbe struct {
	conn ConnectionStater
}

// NewCacheProbe builds a probe over the injected cache client.
func NewCacheProbe(conn ConnectionStater) *CacheProbe {
	return &CacheProbe{conn: conn}
}

func (p *CacheProbe) Name() string { return "redis" }

func (p *CacheProbe) Probe(ctx context.Context) error {
	if !p.conn.Connected() {
		return fmt.Errorf("cache probe: redis connection not established")
	}
	return nil
}
