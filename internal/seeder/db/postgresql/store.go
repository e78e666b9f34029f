// Package postgresql implements the db.Store repository against PostgreSQL
// using the pgx stdlib driver. Each creator uses INSERT .. ON CONFLICT DO
// NOTHING RETURNING so that a concurrent or repeated run can never duplicate
// a natural key; multi-record creates share one transaction.
package postgresql

import (
	"context"
	"database/sql"
	_ "embed"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"

	"github.com/pedigreehq/seedstock/internal/common/apperrors"
	"github.com/pedigreehq/seedstock/internal/seeder/db/dberror"
	"github.com/pedigreehq/seedstock/internal/seeder/db/dbmanager"
)

//go:embed schema.sql
var schemaSQL string

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type store struct {
	pool *dbmanager.Pool
}

// New wraps a connection pool in the repository implementation.
func New(pool *dbmanager.Pool) *store {
	return &store{pool: pool}
}

func (s *store) db() *sql.DB {
	return s.pool.DB()
}

// EnsureSchema applies the embedded baseline schema. Every statement is
// IF NOT EXISTS, so this is safe against an already-provisioned store.
func (s *store) EnsureSchema(ctx context.Context) apperrors.Error {
	if _, err := s.db().ExecContext(ctx, schemaSQL); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to apply schema")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

func (s *store) Close(ctx context.Context) {
	if err := s.pool.Close(); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to close db pool")
	}
}

// begin opens a transaction for a multi-record atomic group.
func (s *store) begin(ctx context.Context) (*sql.Tx, apperrors.Error) {
	tx, err := s.db().BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to start transaction")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return tx, nil
}

func rollback(ctx context.Context, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
		log.Ctx(ctx).Error().Err(err).Msg("failed to rollback transaction")
	}
}

func commit(ctx context.Context, tx *sql.Tx) apperrors.Error {
	if err := tx.Commit(); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to commit transaction")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}
