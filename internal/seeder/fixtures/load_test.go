package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedCatalogue(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, cat.Tenants)
	assert.NotEmpty(t, cat.TitleDefinitions)
	assert.NotEmpty(t, cat.Shoppers)
}

func TestEmbeddedCatalogueReferencesResolve(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	for _, tenant := range cat.Tenants {
		animals := map[string]bool{}
		for _, a := range tenant.Animals {
			animals[a.Name] = true
		}
		plans := map[string]bool{}
		for _, p := range tenant.BreedingPlans {
			plans[p.Name] = true
			assert.True(t, animals[p.Dam], "tenant %s plan %s: dam %q not in catalogue", tenant.Slug, p.Name, p.Dam)
			assert.True(t, animals[p.Sire], "tenant %s plan %s: sire %q not in catalogue", tenant.Slug, p.Name, p.Sire)
		}
		for _, a := range tenant.Animals {
			if a.Sire != "" {
				assert.True(t, animals[a.Sire], "tenant %s animal %s: sire %q not in catalogue", tenant.Slug, a.Name, a.Sire)
			}
			if a.Dam != "" {
				assert.True(t, animals[a.Dam], "tenant %s animal %s: dam %q not in catalogue", tenant.Slug, a.Name, a.Dam)
			}
		}
		for _, c := range tenant.Contacts {
			if c.Waitlist != nil {
				assert.True(t, plans[c.Waitlist.Plan], "tenant %s contact %s: plan %q not in catalogue", tenant.Slug, c.Email, c.Waitlist.Plan)
			}
		}
		for _, th := range tenant.Threads {
			if th.From.Shopper != "" {
				assert.NotNil(t, cat.Shopper(th.From.Shopper), "tenant %s thread %q: shopper %q not in catalogue", tenant.Slug, th.Subject, th.From.Shopper)
			}
		}
	}
}

func TestEmbeddedCatalogueGenerationsIncrease(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	for _, tenant := range cat.Tenants {
		gen := map[string]int{}
		for _, a := range tenant.Animals {
			gen[a.Name] = a.Generation
		}
		for _, a := range tenant.Animals {
			if a.Sire != "" {
				assert.Greater(t, a.Generation, gen[a.Sire], "tenant %s animal %s must outrank sire", tenant.Slug, a.Name)
			}
			if a.Dam != "" {
				assert.Greater(t, a.Generation, gen[a.Dam], "tenant %s animal %s must outrank dam", tenant.Slug, a.Name)
			}
		}
	}
}

func TestParseRejectsInvalidCatalogue(t *testing.T) {
	// Tenant without a slug fails structural validation.
	_, err := Parse([]byte("tenants:\n  - displayName: No Slug\n"))
	require.Error(t, err)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("tenants: [unclosed"))
	require.Error(t, err)
}

func TestCatalogueLookups(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	first := cat.Tenants[0]
	assert.NotNil(t, cat.Tenant(first.Slug))
	assert.Nil(t, cat.Tenant("no-such-tenant"))

	shopper := cat.Shoppers[0]
	assert.NotNil(t, cat.Shopper(shopper.Email))
	assert.Nil(t, cat.Shopper("absent@example.com"))
}
