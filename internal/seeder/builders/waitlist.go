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

// WaitlistOutcomes tallies waitlist entries and the invoices derived from
// them.
type WaitlistOutcomes struct {
	Created int
	Existed int
	Skipped int
}

// ensureInvoice upserts an invoice by (tenant, party, category). At most one
// DEPOSIT and one GOODS invoice exist per contact no matter how many runs or
// fixture events point at it.
func ensureInvoice(ctx context.Context, bc *Context, partyID uuid.UUID, category models.InvoiceCategory, amountCents int64, paid bool) (Outcome, apperrors.Error) {
	_, err := bc.Store.GetInvoice(ctx, bc.TenantID, partyID, category)
	switch {
	case err == nil:
		return OutcomeExisted, nil
	case errors.Is(err, dberror.ErrNotFound):
		inv := models.Invoice{
			TenantID:    bc.TenantID,
			PartyID:     partyID,
			Category:    category,
			Status:      models.InvoiceUnpaid,
			AmountCents: amountCents,
			IssuedAt:    bc.Now,
		}
		if paid {
			inv.Status = models.InvoicePaid
			paidAt := bc.Now
			inv.PaidAt = &paidAt
		} else {
			dueAt := bc.Now.AddDate(0, 0, 30)
			inv.DueAt = &dueAt
		}
		if cerr := bc.Store.CreateInvoice(ctx, &inv); cerr != nil {
			return OutcomeSkipped, cerr
		}
		log.Ctx(ctx).Info().Str("category", string(category)).Int64("amount_cents", amountCents).Msg("invoice created")
		return OutcomeCreated, nil
	default:
		return OutcomeSkipped, err
	}
}

// WaitlistAndInvoices builds a contact's waitlist entry, the DEPOSIT invoice
// implied by a paid deposit, and the GOODS invoice implied by purchase
// history. Contacts without a waitlist or purchase produce nothing.
func WaitlistAndInvoices(ctx context.Context, bc *Context, def fixtures.ContactDef) (WaitlistOutcomes, apperrors.Error) {
	var out WaitlistOutcomes
	if err := bc.requireTenant(); err != nil {
		return out, err
	}
	record := func(o Outcome) {
		switch o {
		case OutcomeCreated:
			out.Created++
		case OutcomeExisted:
			out.Existed++
		default:
			out.Skipped++
		}
	}

	partyID, perr := bc.Resolver.Resolve(ctx, bc.TenantID, resolver.KindContactParty, envqual.Email(def.Email, bc.Env))
	if perr != nil {
		log.Ctx(ctx).Warn().Err(perr).Str("contact", def.Email).Msg("contact party not resolved, skipping waitlist and invoices")
		out.Skipped++
		return out, nil
	}

	if wl := def.Waitlist; wl != nil {
		planID, rerr := bc.Resolver.Resolve(ctx, bc.TenantID, resolver.KindPlan, envqual.Name(wl.Plan, bc.Env))
		if rerr != nil {
			log.Ctx(ctx).Warn().Err(rerr).Str("contact", def.Email).Str("plan", wl.Plan).Msg("plan not resolved, skipping waitlist entry")
			out.Skipped++
		} else {
			_, err := bc.Store.GetWaitlistEntry(ctx, bc.TenantID, partyID, planID)
			switch {
			case err == nil:
				out.Existed++
			case errors.Is(err, dberror.ErrNotFound):
				entry := models.WaitlistEntry{
					TenantID:         bc.TenantID,
					PartyID:          partyID,
					PlanID:           planID,
					Position:         wl.Position,
					Status:           models.WaitlistStatus(wl.Status),
					DepositCents:     wl.DepositCents,
					DepositPaidCents: wl.DepositPaidCents,
				}
				if cerr := bc.Store.CreateWaitlistEntry(ctx, &entry); cerr != nil {
					return out, cerr
				}
				log.Ctx(ctx).Info().Str("contact", def.Email).Str("status", wl.Status).Msg("waitlist entry created")
				out.Created++
			default:
				return out, err
			}

			if wl.DepositCents > 0 {
				o, ierr := ensureInvoice(ctx, bc, partyID, models.InvoiceDeposit, wl.DepositCents, wl.DepositPaidCents >= wl.DepositCents)
				record(o)
				if ierr != nil {
					return out, ierr
				}
			}
		}
	}

	if def.Purchase != nil {
		o, ierr := ensureInvoice(ctx, bc, partyID, models.InvoiceGoods, def.Purchase.AmountCents, true)
		record(o)
		if ierr != nil {
			return out, ierr
		}
	}

	return out, nil
}
