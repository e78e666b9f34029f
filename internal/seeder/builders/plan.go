package builders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pedigreehq/seedstock/internal/common/apperrors"
	"github.com/pedigreehq/seedstock/internal/seeder/db/dberror"
	"github.com/pedigreehq/seedstock/internal/seeder/db/models"
	"github.com/pedigreehq/seedstock/internal/seeder/envqual"
	"github.com/pedigreehq/seedstock/internal/seeder/fixtures"
	"github.com/pedigreehq/seedstock/internal/seeder/resolver"
)

// BreedingPlan upserts a plan by (tenant, name). Dam and sire are required
// references: an unresolved one skips the plan with a warning and the run
// continues. A COMMITTED plan is stamped with the commit time at creation.
func BreedingPlan(ctx context.Context, bc *Context, def fixtures.BreedingPlanDef) (uuid.UUID, Outcome, apperrors.Error) {
	if err := bc.requireTenant(); err != nil {
		return uuid.Nil, OutcomeSkipped, err
	}
	name := envqual.Name(def.Name, bc.Env)

	existing, err := bc.Store.GetBreedingPlanByName(ctx, bc.TenantID, name)
	switch {
	case err == nil:
		log.Ctx(ctx).Info().Str("name", name).Msg("breeding plan exists")
		bc.Resolver.Register(bc.TenantID, resolver.KindPlan, name, existing.PlanID)
		return existing.PlanID, OutcomeExisted, nil
	case errors.Is(err, dberror.ErrNotFound):
		// fall through to create
	default:
		return uuid.Nil, OutcomeSkipped, err
	}

	damID, rerr := bc.Resolver.Resolve(ctx, bc.TenantID, resolver.KindAnimal, envqual.Name(def.Dam, bc.Env))
	if rerr != nil {
		log.Ctx(ctx).Warn().Str("name", name).Str("dam", def.Dam).Msg("dam not resolved, skipping breeding plan")
		return uuid.Nil, OutcomeSkipped, rerr
	}
	sireID, rerr := bc.Resolver.Resolve(ctx, bc.TenantID, resolver.KindAnimal, envqual.Name(def.Sire, bc.Env))
	if rerr != nil {
		log.Ctx(ctx).Warn().Str("name", name).Str("sire", def.Sire).Msg("sire not resolved, skipping breeding plan")
		return uuid.Nil, OutcomeSkipped, rerr
	}

	plan := models.BreedingPlan{
		TenantID: bc.TenantID,
		Name:     name,
		DamID:    damID,
		SireID:   sireID,
		Status:   models.PlanStatus(def.Status),
	}
	if plan.Status == models.PlanCommitted {
		now := bc.Now
		plan.CommittedAt = &now
	}
	if cerr := bc.Store.CreateBreedingPlan(ctx, &plan); cerr != nil {
		return uuid.Nil, OutcomeSkipped, cerr
	}
	log.Ctx(ctx).Info().Str("name", name).Str("status", def.Status).Msg("breeding plan created")
	bc.Resolver.Register(bc.TenantID, resolver.KindPlan, name, plan.PlanID)
	return plan.PlanID, OutcomeCreated, nil
}
