package api

import (
	"time"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"stackpad/backend/internal/cache"
	"stackpad/backend/internal/health"
	"stackpad/backend/internal/metrics"
	"stackpad/backend/internal/notes"
)

const (
	memoryCacheExpiration = time.Minute
	memoryCacheCleanup    = 10 * time.Minute
)

// Dependencies wires the injected resources into the services and probes the
// handlers consume. Everything is owned here or above; no package holds a
// global connection handle.
type Dependencies struct {
	Aggregator *health.Aggregator
	DBProbe    health.Prober
	CacheProbe health.Prober

	Store cache.Store
	Notes *notes.Service
}

// InitDependencies builds the dependency graph from the injected handles.
// When cacheClient has no established connection the notes cache degrades to
// the in-memory store; the cache probe still reports against the real client.
// A nil registry skips cache instrumentation, which keeps tests free of
// global metric registration.
func InitDependencies(sqlxDB *sqlx.DB, gormDB *gorm.DB, cacheClient *cache.Client, reg *metrics.Registry) *Dependencies {
	dbProbe := health.NewDatabaseProbe(sqlxDB)
	cacheProbe := health.NewCacheProbe(cacheClient)

	var store cache.Store
	if cacheClient.Connected() {
		store = cache.NewRedisStore(cacheClient)
	} else {
		store = cache.NewMemoryStore(memoryCacheExpiration, memoryCacheCleanup)
	}
	if reg != nil {
		store = cache.NewInstrumentedStore(store, reg)
	}

	notesRepo := notes.NewRepository(gormDB)

	return &Dependencies{
		Aggregator: health.NewAggregator(dbProbe, cacheProbe),
		DBProbe:    dbProbe,
		CacheProbe: cacheProbe,
		Store:      store,
		Notes:      notes.NewService(notesRepo, store),
	}
}
