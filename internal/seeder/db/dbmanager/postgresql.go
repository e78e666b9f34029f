// Package dbmanager manages the PostgreSQL connection pool used by the
// seeder. Staging databases are routinely scaled to zero between runs, so the
// initial ping is retried with backoff before giving up.
package dbmanager

import (
	"context"
	"database/sql"
	"time"

	retry "github.com/avast/retry-go/v4"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/rs/zerolog/log"

	"github.com/pedigreehq/seedstock/internal/seeder/config"
)

type Pool struct {
	db *sql.DB
}

// NewPostgresqlDb opens the pool against the configured DSN and verifies
// connectivity.
func NewPostgresqlDb(ctx context.Context) (*Pool, error) {
	dsn := config.Dsn()

	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to open db")
		return nil, err
	}

	err = retry.Do(
		func() error { return sqlDB.PingContext(ctx) },
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Warn().Uint("attempt", n+1).Err(err).Msg("db ping failed, retrying")
		}),
	)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to ping db")
		sqlDB.Close()
		return nil, err
	}

	return &Pool{db: sqlDB}, nil
}

func (p *Pool) DB() *sql.DB {
	return p.db
}

func (p *Pool) Close() error {
	return p.db.Close()
}
