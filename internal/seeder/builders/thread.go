package builders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pedigreehq/seedstock/internal/common/apperrors"
	"github.com/pedigreehq/seedstock/internal/seeder/db/dberror"
	"github.com/pedigreehq/seedstock/internal/seeder/db/models"
	"github.com/pedigreehq/seedstock/internal/seeder/envqual"
	"github.com/pedigreehq/seedstock/internal/seeder/fixtures"
	"github.com/pedigreehq/seedstock/internal/seeder/resolver"
)

// shopperParty returns the tenant-scoped party behind a marketplace shopper,
// creating it on first reference. Shopper parties have no natural key in the
// store, so the resolver carries them for the rest of the run.
func shopperParty(ctx context.Context, bc *Context, email string) (uuid.UUID, apperrors.Error) {
	if id, err := bc.Resolver.Resolve(ctx, bc.TenantID, resolver.KindShopperParty, email); err == nil {
		return id, nil
	}
	party := models.Party{TenantID: bc.TenantID, Kind: models.PartyShopper}
	if cerr := bc.Store.CreateParty(ctx, &party); cerr != nil {
		return uuid.Nil, cerr
	}
	bc.Resolver.Register(bc.TenantID, resolver.KindShopperParty, email, party.PartyID)
	log.Ctx(ctx).Info().Str("shopper", email).Msg("shopper party created")
	return party.PartyID, nil
}

// clientParty resolves the external side of a thread: a shopper party
// (created lazily) or an existing contact party.
func clientParty(ctx context.Context, bc *Context, from fixtures.FromDef) (uuid.UUID, apperrors.Error) {
	if from.Shopper != "" {
		return shopperParty(ctx, bc, envqual.Email(from.Shopper, bc.Env))
	}
	return bc.Resolver.Resolve(ctx, bc.TenantID, resolver.KindContactParty, envqual.Email(from.Contact, bc.Env))
}

// Thread upserts a message thread by (tenant, subject). The thread, both
// participants, and all messages are created in one transaction; message
// timestamps are computed backwards from the run start so the inbox reads the
// same on any seeding day.
func Thread(ctx context.Context, bc *Context, def fixtures.ThreadDef) (uuid.UUID, Outcome, apperrors.Error) {
	if err := bc.requireTenant(); err != nil {
		return uuid.Nil, OutcomeSkipped, err
	}
	subject := envqual.Subject(def.Subject, bc.Env)

	existing, err := bc.Store.GetThreadBySubject(ctx, bc.TenantID, subject)
	switch {
	case err == nil:
		log.Ctx(ctx).Info().Str("subject", subject).Msg("thread exists")
		return existing.ThreadID, OutcomeExisted, nil
	case errors.Is(err, dberror.ErrNotFound):
		// fall through to create
	default:
		return uuid.Nil, OutcomeSkipped, err
	}

	orgPartyID, rerr := bc.Resolver.ResolveIndex(ctx, bc.TenantID, resolver.KindOrgParty, 0)
	if rerr != nil {
		log.Ctx(ctx).Warn().Err(rerr).Str("subject", subject).Msg("organization party not resolved, skipping thread")
		return uuid.Nil, OutcomeSkipped, rerr
	}
	clientPartyID, rerr := clientParty(ctx, bc, def.From)
	if rerr != nil {
		log.Ctx(ctx).Warn().Err(rerr).Str("subject", subject).Msg("client party not resolved, skipping thread")
		return uuid.Nil, OutcomeSkipped, rerr
	}

	thread := models.MessageThread{
		TenantID:    bc.TenantID,
		Subject:     subject,
		InquiryType: def.InquiryType,
		Flagged:     def.Flagged,
		Archived:    def.Archived,
	}

	messages := make([]models.Message, 0, len(def.Messages))
	for _, m := range def.Messages {
		sender := orgPartyID
		if models.MessageDirection(m.Direction) == models.DirectionInbound {
			sender = clientPartyID
		}
		sentAt := bc.Now.Add(-time.Duration(m.DaysAgo)*24*time.Hour - time.Duration(m.HoursAgo)*time.Hour)
		if sentAt.After(thread.LastMessageAt) {
			thread.LastMessageAt = sentAt
		}
		messages = append(messages, models.Message{
			SenderPartyID: sender,
			Body:          m.Body,
			SentAt:        sentAt,
		})
	}

	participants := []models.ThreadParticipant{
		{PartyID: orgPartyID},
		{PartyID: clientPartyID},
	}

	if cerr := bc.Store.CreateThread(ctx, &thread, participants, messages); cerr != nil {
		return uuid.Nil, OutcomeSkipped, cerr
	}
	log.Ctx(ctx).Info().Str("subject", subject).Int("messages", len(messages)).Msg("thread created")
	return thread.ThreadID, OutcomeCreated, nil
}
