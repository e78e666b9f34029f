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

// Draft upserts an unsent message draft by (tenant, subject). The recipient
// is optional; an unresolvable recipient downgrades the draft to unaddressed
// rather than skipping it.
func Draft(ctx context.Context, bc *Context, def fixtures.DraftDef) (uuid.UUID, Outcome, apperrors.Error) {
	if err := bc.requireTenant(); err != nil {
		return uuid.Nil, OutcomeSkipped, err
	}
	subject := envqual.Subject(def.Subject, bc.Env)

	existing, err := bc.Store.GetDraftBySubject(ctx, bc.TenantID, subject)
	switch {
	case err == nil:
		log.Ctx(ctx).Info().Str("subject", subject).Msg("draft exists")
		return existing.DraftID, OutcomeExisted, nil
	case errors.Is(err, dberror.ErrNotFound):
		draft := models.Draft{
			TenantID: bc.TenantID,
			Channel:  models.DraftChannel(def.Channel),
			Subject:  subject,
			Body:     def.Body,
		}
		if def.To != "" {
			partyID, rerr := bc.Resolver.Resolve(ctx, bc.TenantID, resolver.KindContactParty, envqual.Email(def.To, bc.Env))
			if rerr != nil {
				log.Ctx(ctx).Warn().Err(rerr).Str("subject", subject).Str("to", def.To).Msg("draft recipient not resolved, creating unaddressed")
			} else {
				draft.RecipientPartyID = uuid.NullUUID{UUID: partyID, Valid: true}
			}
		}
		if cerr := bc.Store.CreateDraft(ctx, &draft); cerr != nil {
			return uuid.Nil, OutcomeSkipped, cerr
		}
		log.Ctx(ctx).Info().Str("subject", subject).Msg("draft created")
		return draft.DraftID, OutcomeCreated, nil
	default:
		return uuid.Nil, OutcomeSkipped, err
	}
}
