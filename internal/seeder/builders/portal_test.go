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

func TestPortalCreatesAccessForFirstContactAndOrg(t *testing.T) {
	ctx := context.Background()
	bc, store := newTestContext(t)

	contacts := []fixtures.ContactDef{
		{Name: "Avery Chen", Email: "avery@example.com"},
		{Name: "Noah Reyes", Email: "noah@example.com"},
	}
	orgs := []fixtures.OrganizationDef{
		{Name: "Sun Hollow Kennel", Email: "hello@sunhollow.example.com"},
	}
	for i, c := range contacts {
		_, _, err := Contact(ctx, bc, c, i)
		require.Nil(t, err)
	}
	for i, o := range orgs {
		_, _, err := Organization(ctx, bc, o, i)
		require.Nil(t, err)
	}

	out, err := Portal(ctx, bc, fixtures.PortalDef{Password: "portal-pass"}, contacts, orgs)
	require.Nil(t, err)
	assert.Equal(t, 2, out.Created)

	// Only the first contact gets access.
	firstParty, rerr := bc.Resolver.Resolve(ctx, bc.TenantID, resolver.KindContactParty, envqual.Email("avery@example.com", bc.Env))
	require.Nil(t, rerr)
	access, aerr := store.GetPortalAccessByParty(ctx, firstParty)
	require.Nil(t, aerr)
	assert.True(t, access.UserID.Valid)
	assert.NotEmpty(t, access.InviteToken)

	// Portal users carry a CLIENT membership.
	user, uerr := store.GetUserByEmail(ctx, envqual.Email("avery@example.com", bc.Env))
	require.Nil(t, uerr)
	m, merr := store.GetMembership(ctx, user.UserID, bc.TenantID)
	require.Nil(t, merr)
	assert.Equal(t, models.RoleClient, m.Role)
}

func TestPortalRerunConverges(t *testing.T) {
	ctx := context.Background()
	bc, store := newTestContext(t)

	contacts := []fixtures.ContactDef{{Name: "Avery Chen", Email: "avery@example.com"}}
	_, _, err := Contact(ctx, bc, contacts[0], 0)
	require.Nil(t, err)

	def := fixtures.PortalDef{Password: "portal-pass"}
	_, perr := Portal(ctx, bc, def, contacts, nil)
	require.Nil(t, perr)

	created := store.TotalCreated()
	out, perr := Portal(ctx, bc, def, contacts, nil)
	require.Nil(t, perr)
	assert.Zero(t, out.Created)
	assert.Equal(t, created, store.TotalCreated(), "re-run must create nothing")
}

func TestPortalAdoptsExistingUser(t *testing.T) {
	ctx := context.Background()
	bc, store := newTestContext(t)

	contacts := []fixtures.ContactDef{{Name: "Avery Chen", Email: "avery@example.com"}}
	_, _, err := Contact(ctx, bc, contacts[0], 0)
	require.Nil(t, err)

	// The user was seeded before the contact ever got portal access.
	email := envqual.Email("avery@example.com", bc.Env)
	userID, _, uerr := upsertUser(ctx, bc, email, "Avery Chen", "portal-pass", false)
	require.Nil(t, uerr)
	require.Equal(t, 1, store.Counts()["user"])

	out, perr := Portal(ctx, bc, fixtures.PortalDef{Password: "portal-pass"}, contacts, nil)
	require.Nil(t, perr)
	assert.Equal(t, 1, out.Created)

	partyID, rerr := bc.Resolver.Resolve(ctx, bc.TenantID, resolver.KindContactParty, email)
	require.Nil(t, rerr)
	access, aerr := store.GetPortalAccessByParty(ctx, partyID)
	require.Nil(t, aerr)
	require.True(t, access.UserID.Valid)
	assert.Equal(t, userID, access.UserID.UUID)

	// The existing user is reused, not duplicated, and gains CLIENT membership.
	assert.Equal(t, 1, store.Counts()["user"])
	m, merr := store.GetMembership(ctx, userID, bc.TenantID)
	require.Nil(t, merr)
	assert.Equal(t, models.RoleClient, m.Role)
	assert.Equal(t, 1, store.Counts()["membership"])
}

func TestPortalBackfillsMissingUserLink(t *testing.T) {
	ctx := context.Background()
	bc, store := newTestContext(t)

	contacts := []fixtures.ContactDef{{Name: "Avery Chen", Email: "avery@example.com"}}
	_, _, err := Contact(ctx, bc, contacts[0], 0)
	require.Nil(t, err)

	partyID, rerr := bc.Resolver.Resolve(ctx, bc.TenantID, resolver.KindContactParty, envqual.Email("avery@example.com", bc.Env))
	require.Nil(t, rerr)

	// Access exists from an earlier, partially-converged state: no user link.
	access := models.PortalAccess{
		TenantID:    bc.TenantID,
		PartyID:     partyID,
		Status:      models.PortalInvited,
		InviteToken: "legacy-token",
	}
	require.Nil(t, store.CreatePortalAccess(ctx, &access))

	_, perr := Portal(ctx, bc, fixtures.PortalDef{Password: "portal-pass"}, contacts, nil)
	require.Nil(t, perr)

	got, aerr := store.GetPortalAccessByParty(ctx, partyID)
	require.Nil(t, aerr)
	require.True(t, got.UserID.Valid)
	assert.NotEqual(t, uuid.Nil, got.UserID.UUID)

	user, uerr := store.GetUserByEmail(ctx, envqual.Email("avery@example.com", bc.Env))
	require.Nil(t, uerr)
	assert.Equal(t, user.UserID, got.UserID.UUID)
}
