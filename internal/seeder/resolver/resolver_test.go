package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedigreehq/seedstock/internal/seeder/db/memory"
	"github.com/pedigreehq/seedstock/internal/seeder/db/models"
)

func TestResolveRegisteredHandle(t *testing.T) {
	r := New(memory.New())
	tenantID := uuid.New()
	id := uuid.New()

	r.Register(tenantID, KindAnimal, "Ripple (dev)", id)

	got, err := r.Resolve(context.Background(), tenantID, KindAnimal, "Ripple (dev)")
	require.Nil(t, err)
	assert.Equal(t, id, got)
}

func TestResolveIsTenantScoped(t *testing.T) {
	r := New(memory.New())
	tenantA := uuid.New()
	tenantB := uuid.New()
	r.Register(tenantA, KindAnimal, "Ripple", uuid.New())

	_, err := r.Resolve(context.Background(), tenantB, KindAnimal, "Ripple")
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrUnresolved))
}

func TestResolveFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	tenant := models.Tenant{Slug: "t", DisplayName: "T"}
	require.Nil(t, store.CreateTenant(ctx, &tenant))

	animal := models.Animal{TenantID: tenant.TenantID, Name: "Drift", Species: "dog"}
	require.Nil(t, store.CreateAnimal(ctx, &animal, &models.AnimalGenetics{}, &models.AnimalPrivacy{}))

	// Fresh resolver simulating a re-run: nothing registered in-run.
	r := New(store)
	got, err := r.Resolve(ctx, tenant.TenantID, KindAnimal, "Drift")
	require.Nil(t, err)
	assert.Equal(t, animal.AnimalID, got)
}

func TestResolveUnknownHandle(t *testing.T) {
	r := New(memory.New())
	_, err := r.Resolve(context.Background(), uuid.New(), KindPlan, "No Such Plan")
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrUnresolved))
}

func TestResolveIndexHasNoStoreFallback(t *testing.T) {
	r := New(memory.New())
	tenantID := uuid.New()

	_, err := r.ResolveIndex(context.Background(), tenantID, KindOrgParty, 0)
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrUnresolved))

	id := uuid.New()
	r.RegisterIndex(tenantID, KindOrgParty, 0, id)
	got, rerr := r.ResolveIndex(context.Background(), tenantID, KindOrgParty, 0)
	require.Nil(t, rerr)
	assert.Equal(t, id, got)
}

func TestShopperPartyResolvesInRunOnly(t *testing.T) {
	r := New(memory.New())
	tenantID := uuid.New()

	_, err := r.Resolve(context.Background(), tenantID, KindShopperParty, "shopper+dev@example.com")
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrUnresolved))
}
