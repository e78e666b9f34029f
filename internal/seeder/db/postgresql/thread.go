package postgresql

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pedigreehq/seedstock/internal/common/apperrors"
	"github.com/pedigreehq/seedstock/internal/seeder/db/dberror"
	"github.com/pedigreehq/seedstock/internal/seeder/db/models"
)

// CreateThread creates the thread, both participants and every message in
// one transaction. Messages are never appended to an existing thread: thread
// idempotence is at the thread level, keyed by (tenant, subject).
func (s *store) CreateThread(ctx context.Context, t *models.MessageThread, participants []models.ThreadParticipant, messages []models.Message) (err apperrors.Error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			rollback(ctx, tx)
		}
	}()

	if t.ThreadID == uuid.Nil {
		t.ThreadID = uuid.New()
	}
	query := `
		INSERT INTO message_threads (thread_id, tenant_id, subject, inquiry_type, flagged, archived, last_message_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tenant_id, subject) DO NOTHING
		RETURNING thread_id;
	`
	var insertedID uuid.UUID
	errDb := tx.QueryRowContext(ctx, query,
		t.ThreadID, t.TenantID, t.Subject, t.InquiryType, t.Flagged, t.Archived, t.LastMessageAt).Scan(&insertedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			err = dberror.ErrAlreadyExists.Msg("thread already exists")
			return err
		}
		log.Ctx(ctx).Error().Err(errDb).Str("subject", t.Subject).Msg("failed to insert thread")
		err = dberror.ErrDatabase.Err(errDb)
		return err
	}
	t.ThreadID = insertedID

	for i := range participants {
		p := &participants[i]
		if p.ParticipantID == uuid.Nil {
			p.ParticipantID = uuid.New()
		}
		p.ThreadID = t.ThreadID
		if _, errDb = tx.ExecContext(ctx,
			`INSERT INTO thread_participants (participant_id, thread_id, party_id) VALUES ($1, $2, $3);`,
			p.ParticipantID, p.ThreadID, p.PartyID); errDb != nil {
			log.Ctx(ctx).Error().Err(errDb).Str("subject", t.Subject).Msg("failed to insert thread participant")
			err = dberror.ErrDatabase.Err(errDb)
			return err
		}
	}

	for i := range messages {
		m := &messages[i]
		if m.MessageID == uuid.Nil {
			m.MessageID = uuid.New()
		}
		m.ThreadID = t.ThreadID
		if _, errDb = tx.ExecContext(ctx,
			`INSERT INTO messages (message_id, thread_id, sender_party_id, body, sent_at) VALUES ($1, $2, $3, $4, $5);`,
			m.MessageID, m.ThreadID, m.SenderPartyID, m.Body, m.SentAt); errDb != nil {
			log.Ctx(ctx).Error().Err(errDb).Str("subject", t.Subject).Msg("failed to insert message")
			err = dberror.ErrDatabase.Err(errDb)
			return err
		}
	}

	return commit(ctx, tx)
}

func (s *store) GetThreadBySubject(ctx context.Context, tenantID uuid.UUID, subject string) (*models.MessageThread, apperrors.Error) {
	query := `
		SELECT thread_id, tenant_id, subject, inquiry_type, flagged, archived, last_message_at
		FROM message_threads
		WHERE tenant_id = $1 AND subject = $2;
	`
	var t models.MessageThread
	errDb := s.db().QueryRowContext(ctx, query, tenantID, subject).Scan(
		&t.ThreadID, &t.TenantID, &t.Subject, &t.InquiryType, &t.Flagged, &t.Archived, &t.LastMessageAt)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("thread not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("subject", subject).Msg("failed to retrieve thread")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return &t, nil
}

func (s *store) CreateDraft(ctx context.Context, d *models.Draft) apperrors.Error {
	if d.DraftID == uuid.Nil {
		d.DraftID = uuid.New()
	}
	query := `
		INSERT INTO drafts (draft_id, tenant_id, recipient_party_id, channel, subject, body)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (tenant_id, subject) DO NOTHING
		RETURNING draft_id;
	`
	var insertedID uuid.UUID
	errDb := s.db().QueryRowContext(ctx, query,
		d.DraftID, d.TenantID, d.RecipientPartyID, d.Channel, d.Subject, d.Body).Scan(&insertedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return dberror.ErrAlreadyExists.Msg("draft already exists")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("subject", d.Subject).Msg("failed to insert draft")
		return dberror.ErrDatabase.Err(errDb)
	}
	d.DraftID = insertedID
	return nil
}

func (s *store) GetDraftBySubject(ctx context.Context, tenantID uuid.UUID, subject string) (*models.Draft, apperrors.Error) {
	query := `
		SELECT draft_id, tenant_id, recipient_party_id, channel, subject, body
		FROM drafts
		WHERE tenant_id = $1 AND subject = $2;
	`
	var d models.Draft
	errDb := s.db().QueryRowContext(ctx, query, tenantID, subject).Scan(
		&d.DraftID, &d.TenantID, &d.RecipientPartyID, &d.Channel, &d.Subject, &d.Body)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("draft not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("subject", subject).Msg("failed to retrieve draft")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return &d, nil
}
