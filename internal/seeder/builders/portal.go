package builders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"

	"github.com/pedigreehq/seedstock/internal/common/apperrors"
	"github.com/pedigreehq/seedstock/internal/seeder/db/dberror"
	"github.com/pedigreehq/seedstock/internal/seeder/db/models"
	"github.com/pedigreehq/seedstock/internal/seeder/envqual"
	"github.com/pedigreehq/seedstock/internal/seeder/fixtures"
	"github.com/pedigreehq/seedstock/internal/seeder/resolver"
)

// PortalOutcomes tallies portal access records and the users backing them.
type PortalOutcomes struct {
	Created int
	Existed int
	Skipped int
}

// ensurePortalAccess converges a single party to the target state: a user
// with a CLIENT membership, and a portal access row pointing at both. Three
// starting states are handled: nothing exists, access exists without a user
// (backfilled), everything exists.
func ensurePortalAccess(ctx context.Context, bc *Context, partyID uuid.UUID, email, name, password string) (Outcome, apperrors.Error) {
	userID, _, uerr := upsertUser(ctx, bc, email, name, password, false)
	if uerr != nil {
		return OutcomeSkipped, uerr
	}
	if _, merr := ensureMembership(ctx, bc, userID, models.RoleClient); merr != nil {
		return OutcomeSkipped, merr
	}

	existing, err := bc.Store.GetPortalAccessByParty(ctx, partyID)
	switch {
	case err == nil:
		if existing.UserID.Valid {
			return OutcomeExisted, nil
		}
		// Access predates the user record: backfill the link.
		if uerr := bc.Store.UpdatePortalAccessUser(ctx, existing.AccessID, userID); uerr != nil {
			return OutcomeSkipped, uerr
		}
		log.Ctx(ctx).Info().Str("email", email).Msg("portal access linked to user")
		return OutcomeExisted, nil
	case errors.Is(err, dberror.ErrNotFound):
		token, terr := gonanoid.New()
		if terr != nil {
			return OutcomeSkipped, dberror.ErrDatabase.MsgErr("failed to generate invite token", terr)
		}
		access := models.PortalAccess{
			TenantID:    bc.TenantID,
			PartyID:     partyID,
			Status:      models.PortalActive,
			UserID:      uuid.NullUUID{UUID: userID, Valid: true},
			InviteToken: token,
		}
		if cerr := bc.Store.CreatePortalAccess(ctx, &access); cerr != nil {
			return OutcomeSkipped, cerr
		}
		log.Ctx(ctx).Info().Str("email", email).Msg("portal access created")
		return OutcomeCreated, nil
	default:
		return OutcomeSkipped, err
	}
}

// Portal enables portal access for the tenant's first contact and first
// organization. A tenant without contacts or organizations gets only the
// halves that exist.
func Portal(ctx context.Context, bc *Context, def fixtures.PortalDef, contacts []fixtures.ContactDef, orgs []fixtures.OrganizationDef) (PortalOutcomes, apperrors.Error) {
	var out PortalOutcomes
	if err := bc.requireTenant(); err != nil {
		return out, err
	}

	record := func(o Outcome, err apperrors.Error) apperrors.Error {
		switch o {
		case OutcomeCreated:
			out.Created++
		case OutcomeExisted:
			out.Existed++
		default:
			out.Skipped++
		}
		return err
	}

	if len(contacts) > 0 {
		partyID, err := bc.Resolver.ResolveIndex(ctx, bc.TenantID, resolver.KindContactParty, 0)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("portal contact party not resolved, skipping")
			out.Skipped++
		} else {
			c := contacts[0]
			if err := record(ensurePortalAccess(ctx, bc, partyID, envqual.Email(c.Email, bc.Env), c.Name, def.Password)); err != nil {
				return out, err
			}
		}
	}

	if len(orgs) > 0 {
		partyID, err := bc.Resolver.ResolveIndex(ctx, bc.TenantID, resolver.KindOrgParty, 0)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("portal organization party not resolved, skipping")
			out.Skipped++
		} else {
			o := orgs[0]
			if err := record(ensurePortalAccess(ctx, bc, partyID, envqual.Email(o.Email, bc.Env), o.Name, def.Password)); err != nil {
				return out, err
			}
		}
	}

	return out, nil
}
