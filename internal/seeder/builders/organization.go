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

// Organization upserts the organization (with its owning party) and registers
// both the entity and the party under the qualified email and the fixture
// index.
func Organization(ctx context.Context, bc *Context, def fixtures.OrganizationDef, index int) (uuid.UUID, Outcome, apperrors.Error) {
	if err := bc.requireTenant(); err != nil {
		return uuid.Nil, OutcomeSkipped, err
	}
	email := envqual.Email(def.Email, bc.Env)

	register := func(org *models.Organization) {
		bc.Resolver.Register(bc.TenantID, resolver.KindOrganization, email, org.OrgID)
		bc.Resolver.RegisterIndex(bc.TenantID, resolver.KindOrganization, index, org.OrgID)
		if org.PartyID.Valid {
			bc.Resolver.Register(bc.TenantID, resolver.KindOrgParty, email, org.PartyID.UUID)
			bc.Resolver.RegisterIndex(bc.TenantID, resolver.KindOrgParty, index, org.PartyID.UUID)
		}
	}

	existing, err := bc.Store.GetOrganizationByEmail(ctx, bc.TenantID, email)
	switch {
	case err == nil:
		log.Ctx(ctx).Info().Str("email", email).Msg("organization exists")
		register(existing)
		return existing.OrgID, OutcomeExisted, nil
	case errors.Is(err, dberror.ErrNotFound):
		org := models.Organization{
			TenantID: bc.TenantID,
			Name:     envqual.Name(def.Name, bc.Env),
			Email:    email,
		}
		if cerr := bc.Store.CreateOrganization(ctx, &org); cerr != nil {
			return uuid.Nil, OutcomeSkipped, cerr
		}
		log.Ctx(ctx).Info().Str("email", email).Msg("organization created")
		register(&org)
		return org.OrgID, OutcomeCreated, nil
	default:
		return uuid.Nil, OutcomeSkipped, err
	}
}
