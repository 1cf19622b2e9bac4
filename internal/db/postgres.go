package db

import (
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"stackpad/backend/internal/config"
	"stackpad/backend/internal/logging"
)

const (
	connectAttempts = 10
	connectBackoff  = 500 * time.Millisecond
)

// Connect opens a sqlx connection to Postgres, retrying while the database
// container is still coming up. The returned handle is owned by the caller
// and injected into whatever needs it; there is no package-level singleton.
func Connect(cfg config.PostgresConfig) (*sqlx.DB, error) {
	var (
		conn *sqlx.DB
		err  error
	)

	for i := 0; i < connectAttempts; i++ {
		conn, err = sqlx.Connect("postgres", cfg.DSN())
		if err == nil {
			return conn, nil
		}
		logging.Warn("Postgres not ready, retrying",
			"attempt", i+1,
			"error", err.Error(),
		)
		time.Sleep(connectBackoff)
	}
	return nil, err
}
