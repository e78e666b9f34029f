package builders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedigreehq/seedstock/internal/seeder/db/models"
	"github.com/pedigreehq/seedstock/internal/seeder/fixtures"
)

func TestTagAssignsPartyForContactModule(t *testing.T) {
	ctx := context.Background()
	bc, store := newTestContext(t)

	_, _, err := Contact(ctx, bc, fixtures.ContactDef{Name: "Avery Chen", Email: "avery@example.com"}, 0)
	require.Nil(t, err)

	out, terr := TagWithAssignments(ctx, bc, fixtures.TagDef{
		Module:  "contact",
		Name:    "vip",
		Targets: []string{"avery@example.com"},
	})
	require.Nil(t, terr)
	assert.Equal(t, 2, out.Created, "tag and one assignment")

	tag, gerr := store.GetTag(ctx, bc.TenantID, models.ModuleContact, "vip (dev)")
	require.Nil(t, gerr)
	assert.Equal(t, models.ModuleContact, tag.Module)
}

func TestTagAssignsEntityForAnimalModule(t *testing.T) {
	ctx := context.Background()
	bc, store := newTestContext(t)

	animalID, _, err := Animal(ctx, bc, fixtures.AnimalDef{
		Name: "Ripple", Species: "dog", Sex: "female", BirthYear: 2020,
	}, models.VisibilityPolicy{})
	require.Nil(t, err)

	out, terr := TagWithAssignments(ctx, bc, fixtures.TagDef{
		Module:  "animal",
		Name:    "foundation",
		Targets: []string{"Ripple"},
	})
	require.Nil(t, terr)
	assert.Equal(t, 2, out.Created)

	tag, gerr := store.GetTag(ctx, bc.TenantID, models.ModuleAnimal, "foundation (dev)")
	require.Nil(t, gerr)
	a, aerr := store.GetTagAssignment(ctx, tag.TagID, models.TagTarget{Kind: models.TargetEntity, ID: animalID})
	require.Nil(t, aerr)
	assert.Equal(t, tag.TagID, a.TagID)
}

func TestTagUnresolvedTargetSkipsAssignmentOnly(t *testing.T) {
	ctx := context.Background()
	bc, _ := newTestContext(t)

	out, terr := TagWithAssignments(ctx, bc, fixtures.TagDef{
		Module:  "animal",
		Name:    "retired",
		Targets: []string{"No Such Animal"},
	})
	require.Nil(t, terr, "unresolved target must not fail the tag")
	assert.Equal(t, 1, out.Created, "tag itself is still created")
	assert.Equal(t, 1, out.Skipped)
}
