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

// Contact upserts the contact (with its owning party) and registers handles
// for both. A pre-existing contact missing its party link gets the link
// backfilled, which is one of the three documented update paths.
func Contact(ctx context.Context, bc *Context, def fixtures.ContactDef, index int) (uuid.UUID, Outcome, apperrors.Error) {
	if err := bc.requireTenant(); err != nil {
		return uuid.Nil, OutcomeSkipped, err
	}
	email := envqual.Email(def.Email, bc.Env)

	register := func(c *models.Contact) {
		bc.Resolver.Register(bc.TenantID, resolver.KindContact, email, c.ContactID)
		bc.Resolver.RegisterIndex(bc.TenantID, resolver.KindContact, index, c.ContactID)
		if c.PartyID.Valid {
			bc.Resolver.Register(bc.TenantID, resolver.KindContactParty, email, c.PartyID.UUID)
			bc.Resolver.RegisterIndex(bc.TenantID, resolver.KindContactParty, index, c.PartyID.UUID)
		}
	}

	existing, err := bc.Store.GetContactByEmail(ctx, bc.TenantID, email)
	switch {
	case err == nil:
		if !existing.PartyID.Valid {
			partyID, berr := bc.Store.BackfillContactParty(ctx, bc.TenantID, existing.ContactID)
			if berr != nil {
				return existing.ContactID, OutcomeExisted, berr
			}
			existing.PartyID = uuid.NullUUID{UUID: partyID, Valid: true}
			log.Ctx(ctx).Info().Str("email", email).Msg("contact exists, party link backfilled")
		} else {
			log.Ctx(ctx).Info().Str("email", email).Msg("contact exists")
		}
		register(existing)
		return existing.ContactID, OutcomeExisted, nil
	case errors.Is(err, dberror.ErrNotFound):
		contact := models.Contact{
			TenantID: bc.TenantID,
			Name:     envqual.Name(def.Name, bc.Env),
			Email:    email,
		}
		if cerr := bc.Store.CreateContact(ctx, &contact); cerr != nil {
			return uuid.Nil, OutcomeSkipped, cerr
		}
		log.Ctx(ctx).Info().Str("email", email).Msg("contact created")
		register(&contact)
		return contact.ContactID, OutcomeCreated, nil
	default:
		return uuid.Nil, OutcomeSkipped, err
	}
}
