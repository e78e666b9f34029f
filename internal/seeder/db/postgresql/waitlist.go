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

func (s *store) CreateWaitlistEntry(ctx context.Context, e *models.WaitlistEntry) apperrors.Error {
	if e.EntryID == uuid.Nil {
		e.EntryID = uuid.New()
	}
	query := `
		INSERT INTO waitlist_entries (entry_id, tenant_id, party_id, plan_id, position, status, deposit_cents, deposit_paid_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (tenant_id, party_id, plan_id) DO NOTHING
		RETURNING entry_id;
	`
	var insertedID uuid.UUID
	errDb := s.db().QueryRowContext(ctx, query,
		e.EntryID, e.TenantID, e.PartyID, e.PlanID, e.Position, e.Status,
		e.DepositCents, e.DepositPaidCents).Scan(&insertedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return dberror.ErrAlreadyExists.Msg("waitlist entry already exists")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("party_id", e.PartyID.String()).Msg("failed to insert waitlist entry")
		return dberror.ErrDatabase.Err(errDb)
	}
	e.EntryID = insertedID
	return nil
}

func (s *store) GetWaitlistEntry(ctx context.Context, tenantID, partyID, planID uuid.UUID) (*models.WaitlistEntry, apperrors.Error) {
	query := `
		SELECT entry_id, tenant_id, party_id, plan_id, position, status, deposit_cents, deposit_paid_cents
		FROM waitlist_entries
		WHERE tenant_id = $1 AND party_id = $2 AND plan_id = $3;
	`
	var e models.WaitlistEntry
	errDb := s.db().QueryRowContext(ctx, query, tenantID, partyID, planID).Scan(
		&e.EntryID, &e.TenantID, &e.PartyID, &e.PlanID, &e.Position, &e.Status,
		&e.DepositCents, &e.DepositPaidCents)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("waitlist entry not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("party_id", partyID.String()).Msg("failed to retrieve waitlist entry")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return &e, nil
}

func (s *store) CreateInvoice(ctx context.Context, inv *models.Invoice) apperrors.Error {
	if inv.InvoiceID == uuid.Nil {
		inv.InvoiceID = uuid.New()
	}
	query := `
		INSERT INTO invoices (invoice_id, tenant_id, party_id, category, status, amount_cents, issued_at, due_at, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (tenant_id, party_id, category) DO NOTHING
		RETURNING invoice_id;
	`
	var insertedID uuid.UUID
	errDb := s.db().QueryRowContext(ctx, query,
		inv.InvoiceID, inv.TenantID, inv.PartyID, inv.Category, inv.Status,
		inv.AmountCents, inv.IssuedAt, inv.DueAt, inv.PaidAt).Scan(&insertedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return dberror.ErrAlreadyExists.Msg("invoice already exists")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("category", string(inv.Category)).Msg("failed to insert invoice")
		return dberror.ErrDatabase.Err(errDb)
	}
	inv.InvoiceID = insertedID
	return nil
}

func (s *store) GetInvoice(ctx context.Context, tenantID, partyID uuid.UUID, category models.InvoiceCategory) (*models.Invoice, apperrors.Error) {
	query := `
		SELECT invoice_id, tenant_id, party_id, category, status, amount_cents, issued_at, due_at, paid_at
		FROM invoices
		WHERE tenant_id = $1 AND party_id = $2 AND category = $3;
	`
	var inv models.Invoice
	var dueAt, paidAt sql.NullTime
	errDb := s.db().QueryRowContext(ctx, query, tenantID, partyID, category).Scan(
		&inv.InvoiceID, &inv.TenantID, &inv.PartyID, &inv.Category, &inv.Status,
		&inv.AmountCents, &inv.IssuedAt, &dueAt, &paidAt)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("invoice not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("category", string(category)).Msg("failed to retrieve invoice")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	if dueAt.Valid {
		t := dueAt.Time
		inv.DueAt = &t
	}
	if paidAt.Valid {
		t := paidAt.Time
		inv.PaidAt = &t
	}
	return &inv, nil
}
