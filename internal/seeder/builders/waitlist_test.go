package builders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedigreehq/seedstock/internal/seeder/db/models"
	"github.com/pedigreehq/seedstock/internal/seeder/envqual"
	"github.com/pedigreehq/seedstock/internal/seeder/fixtures"
	"github.com/pedigreehq/seedstock/internal/seeder/resolver"
)

// seedPlanFixture builds the dam, sire and plan a waitlist entry points at.
func seedPlanFixture(t *testing.T, ctx context.Context, bc *Context, planName string) {
	t.Helper()
	_, _, err := Animal(ctx, bc, fixtures.AnimalDef{Name: "Dam A", Species: "dog", Sex: "female", BirthYear: 2019}, models.VisibilityPolicy{})
	require.Nil(t, err)
	_, _, err = Animal(ctx, bc, fixtures.AnimalDef{Name: "Sire A", Species: "dog", Sex: "male", BirthYear: 2018}, models.VisibilityPolicy{})
	require.Nil(t, err)
	_, _, err = BreedingPlan(ctx, bc, fixtures.BreedingPlanDef{
		Name: planName, Dam: "Dam A", Sire: "Sire A", Status: "COMMITTED",
	})
	require.Nil(t, err)
}

func TestWaitlistDepositPaidCreatesPaidInvoice(t *testing.T) {
	ctx := context.Background()
	bc, store := newTestContext(t)
	seedPlanFixture(t, ctx, bc, "Spring Pairing")

	def := fixtures.ContactDef{
		Name:  "Avery Chen",
		Email: "avery@example.com",
		Waitlist: &fixtures.WaitlistDef{
			Plan:             "Spring Pairing",
			Status:           "DEPOSIT_PAID",
			Position:         2,
			DepositCents:     50000,
			DepositPaidCents: 50000,
		},
	}
	contactID, _, cerr := Contact(ctx, bc, def, 0)
	require.Nil(t, cerr)
	require.NotEqual(t, uuid.Nil, contactID)

	out, werr := WaitlistAndInvoices(ctx, bc, def)
	require.Nil(t, werr)
	assert.Equal(t, 2, out.Created, "waitlist entry plus deposit invoice")

	partyID, rerr := bc.Resolver.Resolve(ctx, bc.TenantID, resolver.KindContactParty, envqual.Email(def.Email, bc.Env))
	require.Nil(t, rerr)

	inv, ierr := store.GetInvoice(ctx, bc.TenantID, partyID, models.InvoiceDeposit)
	require.Nil(t, ierr)
	assert.Equal(t, models.InvoicePaid, inv.Status)
	assert.Equal(t, int64(50000), inv.AmountCents)
	require.NotNil(t, inv.PaidAt)
	assert.Equal(t, bc.Now, *inv.PaidAt)
	assert.Nil(t, inv.DueAt)
}

func TestWaitlistUnpaidDepositInvoiceHasDueDate(t *testing.T) {
	ctx := context.Background()
	bc, store := newTestContext(t)
	seedPlanFixture(t, ctx, bc, "Autumn Pairing")

	def := fixtures.ContactDef{
		Name:  "Noah Reyes",
		Email: "noah@example.com",
		Waitlist: &fixtures.WaitlistDef{
			Plan:         "Autumn Pairing",
			Status:       "APPROVED",
			Position:     1,
			DepositCents: 30000,
		},
	}
	_, _, cerr := Contact(ctx, bc, def, 0)
	require.Nil(t, cerr)

	_, werr := WaitlistAndInvoices(ctx, bc, def)
	require.Nil(t, werr)

	partyID, rerr := bc.Resolver.Resolve(ctx, bc.TenantID, resolver.KindContactParty, envqual.Email(def.Email, bc.Env))
	require.Nil(t, rerr)

	inv, ierr := store.GetInvoice(ctx, bc.TenantID, partyID, models.InvoiceDeposit)
	require.Nil(t, ierr)
	assert.Equal(t, models.InvoiceUnpaid, inv.Status)
	require.NotNil(t, inv.DueAt)
	assert.Nil(t, inv.PaidAt)
}

func TestPurchaseHistoryCreatesOneGoodsInvoice(t *testing.T) {
	ctx := context.Background()
	bc, store := newTestContext(t)

	def := fixtures.ContactDef{
		Name:     "Ira Walsh",
		Email:    "ira@example.com",
		Purchase: &fixtures.PurchaseDef{AmountCents: 250000},
	}
	_, _, cerr := Contact(ctx, bc, def, 0)
	require.Nil(t, cerr)

	_, werr := WaitlistAndInvoices(ctx, bc, def)
	require.Nil(t, werr)
	// Second pass converges without a second invoice.
	out, werr := WaitlistAndInvoices(ctx, bc, def)
	require.Nil(t, werr)
	assert.Zero(t, out.Created)
	assert.Equal(t, 1, store.Counts()["invoice"])
}

func TestWaitlistUnresolvedPlanIsSkippedNotFatal(t *testing.T) {
	ctx := context.Background()
	bc, _ := newTestContext(t)

	def := fixtures.ContactDef{
		Name:  "Sasha Ito",
		Email: "sasha@example.com",
		Waitlist: &fixtures.WaitlistDef{
			Plan: "No Such Plan", Status: "INQUIRY",
		},
	}
	_, _, cerr := Contact(ctx, bc, def, 0)
	require.Nil(t, cerr)

	out, werr := WaitlistAndInvoices(ctx, bc, def)
	require.Nil(t, werr)
	assert.Equal(t, 1, out.Skipped)
	assert.Zero(t, out.Created)
}
