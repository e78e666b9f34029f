// Package builders creates one entity kind per builder from its fixture
// definition. Builders are pure functions of (tenant scope, environment,
// fixture, resolver view): side effects go through the store only, every
// lookup switches explicitly on Found/Absent, and each builder registers the
// id it produced with the resolver for later builders.
package builders

import (
	"time"

	"github.com/google/uuid"

	"github.com/pedigreehq/seedstock/internal/common/apperrors"
	"github.com/pedigreehq/seedstock/internal/seeder/db"
	"github.com/pedigreehq/seedstock/internal/seeder/db/dberror"
	"github.com/pedigreehq/seedstock/internal/seeder/envqual"
	"github.com/pedigreehq/seedstock/internal/seeder/resolver"
)

// Outcome is what happened to one record during a pass.
type Outcome int

const (
	OutcomeCreated Outcome = iota
	OutcomeExisted
	// OutcomeSkipped means a required reference did not resolve; the record
	// was not created and a warning was logged.
	OutcomeSkipped
)

// Context carries the per-tenant scope every builder needs. Now is fixed at
// run start so that relative fixture timestamps are computed consistently
// across the whole run.
type Context struct {
	TenantID uuid.UUID
	Env      envqual.Environment
	Store    db.Store
	Resolver *resolver.Resolver
	Now      time.Time
}

// requireTenant guards tenant-scoped builders against being called with the
// global pre-pass context. Only title definitions and shoppers are
// tenant-independent.
func (bc *Context) requireTenant() apperrors.Error {
	if bc.TenantID == uuid.Nil {
		return dberror.ErrMissingTenant
	}
	return nil
}
