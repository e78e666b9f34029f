package builders

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedigreehq/seedstock/internal/seeder/db/dberror"
	"github.com/pedigreehq/seedstock/internal/seeder/db/models"
	"github.com/pedigreehq/seedstock/internal/seeder/envqual"
	"github.com/pedigreehq/seedstock/internal/seeder/fixtures"
)

func TestContactBackfillsLegacyPartyLink(t *testing.T) {
	ctx := context.Background()
	bc, store := newTestContext(t)

	// Legacy-shaped row: contact exists, no party.
	legacy := models.Contact{
		TenantID: bc.TenantID,
		Name:     "Avery Chen (dev)",
		Email:    envqual.Email("avery@example.com", bc.Env),
	}
	store.PutContact(&legacy)

	def := fixtures.ContactDef{Name: "Avery Chen", Email: "avery@example.com"}
	id, out, err := Contact(ctx, bc, def, 0)
	require.Nil(t, err)
	assert.Equal(t, OutcomeExisted, out)
	assert.Equal(t, legacy.ContactID, id)

	got, gerr := store.GetContactByEmail(ctx, bc.TenantID, legacy.Email)
	require.Nil(t, gerr)
	assert.True(t, got.PartyID.Valid, "party link backfilled")
	assert.Equal(t, 1, store.Counts()["party"])
}

func TestContactBackfillIsAtomic(t *testing.T) {
	ctx := context.Background()
	bc, store := newTestContext(t)

	legacy := models.Contact{
		TenantID: bc.TenantID,
		Name:     "Noah Reyes (dev)",
		Email:    envqual.Email("noah@example.com", bc.Env),
	}
	store.PutContact(&legacy)

	def := fixtures.ContactDef{Name: "Noah Reyes", Email: "noah@example.com"}

	// First pass: the backfill fails mid-way. No orphaned party may remain.
	store.ArmFailpoint("contact.backfill", 1)
	_, _, err := Contact(ctx, bc, def, 0)
	require.NotNil(t, err)
	assert.Zero(t, store.Counts()["party"], "failed backfill must not leave a party behind")

	got, gerr := store.GetContactByEmail(ctx, bc.TenantID, legacy.Email)
	require.Nil(t, gerr)
	assert.False(t, got.PartyID.Valid)

	// Second pass converges with exactly one party.
	_, out, err := Contact(ctx, bc, def, 0)
	require.Nil(t, err)
	assert.Equal(t, OutcomeExisted, out)
	assert.Equal(t, 1, store.Counts()["party"])
}

func TestTenantScopedBuildersRejectGlobalContext(t *testing.T) {
	ctx := context.Background()
	bc, _ := newTestContext(t)
	bc.TenantID = uuid.Nil

	_, out, err := Animal(ctx, bc, fixtures.AnimalDef{
		Name: "Ripple", Species: "dog", Sex: "female", BirthYear: 2020,
	}, models.VisibilityPolicy{})
	assert.Equal(t, OutcomeSkipped, out)
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, dberror.ErrMissingTenant))

	_, _, err = Thread(ctx, bc, fixtures.ThreadDef{
		Subject: "Hello", InquiryType: "listing",
		From:     fixtures.FromDef{Shopper: "jordan@example.com"},
		Messages: []fixtures.MessageDef{{Direction: "inbound", Body: "Hi"}},
	})
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, dberror.ErrMissingTenant))
}
