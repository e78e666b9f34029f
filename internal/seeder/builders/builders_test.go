package builders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pedigreehq/seedstock/internal/seeder/db/memory"
	"github.com/pedigreehq/seedstock/internal/seeder/db/models"
	"github.com/pedigreehq/seedstock/internal/seeder/envqual"
	"github.com/pedigreehq/seedstock/internal/seeder/resolver"
)

func newTestContext(t *testing.T) (*Context, *memory.Store) {
	t.Helper()
	store := memory.New()
	tenant := models.Tenant{Slug: "kennel-dev", DisplayName: "Kennel"}
	require.Nil(t, store.CreateTenant(context.Background(), &tenant))
	return &Context{
		TenantID: tenant.TenantID,
		Env:      envqual.Dev,
		Store:    store,
		Resolver: resolver.New(store),
		Now:      time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC),
	}, store
}
