package builders

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedigreehq/seedstock/internal/seeder/db/models"
	"github.com/pedigreehq/seedstock/internal/seeder/fixtures"
	"github.com/pedigreehq/seedstock/internal/seeder/resolver"
)

func TestMergeVisibilityOverrideWinsPerField(t *testing.T) {
	defaults := models.VisibilityPolicy{
		ShowLineage:       true,
		ShowHealthResults: true,
		ShowGenetics:      false,
		ShowBreeder:       false,
	}
	overrides := map[string]bool{
		"showLineage":  false,
		"showGenetics": true,
	}
	merged := mergeVisibility(defaults, overrides)
	assert.False(t, merged.ShowLineage, "override false beats default true")
	assert.True(t, merged.ShowGenetics, "override true beats default false")
	assert.True(t, merged.ShowHealthResults, "untouched field keeps default")
	assert.False(t, merged.ShowBreeder, "untouched field keeps default")
}

func TestMergeVisibilityNoOverrides(t *testing.T) {
	defaults := models.VisibilityPolicy{ShowLineage: true}
	assert.Equal(t, defaults, mergeVisibility(defaults, nil))
}

func TestBirthDateFromYear(t *testing.T) {
	d := birthDateFromYear(2021)
	assert.Equal(t, 2021, d.Year())
	assert.Equal(t, 182, d.YearDay())
}

func TestAnimalCreateThenRerun(t *testing.T) {
	ctx := context.Background()
	bc, store := newTestContext(t)
	def := fixtures.AnimalDef{
		Name:      "Ripple",
		Species:   "dog",
		Sex:       "female",
		BirthYear: 2020,
		Genetics:  fixtures.GeneticsDef{CoatColor: map[string]string{"B": "Bb"}},
		Privacy:   map[string]bool{"showGenetics": false},
	}
	defaults := models.VisibilityPolicy{ShowGenetics: true, ShowLineage: true}

	id, out, err := Animal(ctx, bc, def, defaults)
	require.Nil(t, err)
	assert.Equal(t, OutcomeCreated, out)

	privacy, perr := store.GetAnimalPrivacy(ctx, id)
	require.Nil(t, perr)
	assert.False(t, privacy.Policy.ShowGenetics)
	assert.True(t, privacy.Policy.ShowLineage)

	genetics, ok := store.GetAnimalGenetics(id)
	require.True(t, ok)
	assert.Equal(t, "Bb", genetics.Profile.CoatColor["B"])

	created := store.TotalCreated()
	id2, out2, err2 := Animal(ctx, bc, def, defaults)
	require.Nil(t, err2)
	assert.Equal(t, OutcomeExisted, out2)
	assert.Equal(t, id, id2)
	assert.Equal(t, created, store.TotalCreated(), "re-run must create nothing")
}

func TestAnimalResolvesParentsByQualifiedName(t *testing.T) {
	ctx := context.Background()
	bc, store := newTestContext(t)
	defaults := models.VisibilityPolicy{}

	sireID, _, err := Animal(ctx, bc, fixtures.AnimalDef{Name: "Drift", Species: "dog", Sex: "male", BirthYear: 2018}, defaults)
	require.Nil(t, err)
	damID, _, err := Animal(ctx, bc, fixtures.AnimalDef{Name: "Mist", Species: "dog", Sex: "female", BirthYear: 2019}, defaults)
	require.Nil(t, err)

	childID, out, err := Animal(ctx, bc, fixtures.AnimalDef{
		Name: "Pebble", Species: "dog", Sex: "male", BirthYear: 2022,
		Generation: 1, Sire: "Drift", Dam: "Mist",
	}, defaults)
	require.Nil(t, err)
	require.Equal(t, OutcomeCreated, out)

	child, gerr := store.GetAnimalByNaturalKey(ctx, bc.TenantID, "Pebble (dev)", "dog")
	require.Nil(t, gerr)
	assert.Equal(t, childID, child.AnimalID)
	require.True(t, child.SireID.Valid)
	require.True(t, child.DamID.Valid)
	assert.Equal(t, sireID, child.SireID.UUID)
	assert.Equal(t, damID, child.DamID.UUID)
}

func TestAnimalSkipsOnUnresolvedParent(t *testing.T) {
	ctx := context.Background()
	bc, store := newTestContext(t)

	_, out, err := Animal(ctx, bc, fixtures.AnimalDef{
		Name: "Orphan", Species: "dog", Sex: "male", BirthYear: 2023,
		Generation: 1, Sire: "Never Declared",
	}, models.VisibilityPolicy{})
	assert.Equal(t, OutcomeSkipped, out)
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, resolver.ErrUnresolved))
	assert.Zero(t, store.Counts()["animal"], "skipped animal must not be created")
}
