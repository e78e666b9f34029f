package builders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedigreehq/seedstock/internal/seeder/db/models"
	"github.com/pedigreehq/seedstock/internal/seeder/fixtures"
)

func TestAnimalTitlesMissingDefinitionIsTolerated(t *testing.T) {
	ctx := context.Background()
	bc, store := newTestContext(t)

	_, _, err := TitleDefinition(ctx, bc, fixtures.TitleDefinitionDef{
		Species: "dog", Abbreviation: "CH", Name: "Champion",
	})
	require.Nil(t, err)

	animalID, _, err := Animal(ctx, bc, fixtures.AnimalDef{
		Name: "Ember", Species: "dog", Sex: "female", BirthYear: 2019,
	}, models.VisibilityPolicy{})
	require.Nil(t, err)

	out, terr := AnimalTitles(ctx, bc, animalID, fixtures.AnimalDef{
		Name:    "Ember",
		Species: "dog",
		Titles: []fixtures.TitleAwardDef{
			{Abbreviation: "CH", Year: 2022},
			{Abbreviation: "NOPE", Year: 2023},
		},
	})
	require.Nil(t, terr, "a missing definition must not fail the pass")
	assert.Equal(t, 1, out.Created)
	assert.Equal(t, 1, out.Skipped)
	assert.Equal(t, 1, store.Counts()["animal_title"])
}

func TestAnimalTitlesEarnedAtYearEnd(t *testing.T) {
	ctx := context.Background()
	bc, store := newTestContext(t)

	defID, _, err := TitleDefinition(ctx, bc, fixtures.TitleDefinitionDef{
		Species: "dog", Abbreviation: "GCH", Name: "Grand Champion",
	})
	require.Nil(t, err)

	animalID, _, err := Animal(ctx, bc, fixtures.AnimalDef{
		Name: "Wren", Species: "dog", Sex: "female", BirthYear: 2018,
	}, models.VisibilityPolicy{})
	require.Nil(t, err)

	_, terr := AnimalTitles(ctx, bc, animalID, fixtures.AnimalDef{
		Name: "Wren", Species: "dog",
		Titles: []fixtures.TitleAwardDef{{Abbreviation: "GCH", Year: 2021}},
	})
	require.Nil(t, terr)

	title, gerr := store.GetAnimalTitle(ctx, animalID, defID)
	require.Nil(t, gerr)
	assert.Equal(t, time.Date(2021, time.December, 31, 0, 0, 0, 0, time.UTC), title.EarnedAt)
}

func TestAnimalTitlesRerunCreatesNothing(t *testing.T) {
	ctx := context.Background()
	bc, store := newTestContext(t)

	_, _, err := TitleDefinition(ctx, bc, fixtures.TitleDefinitionDef{
		Species: "cat", Abbreviation: "SC", Name: "Supreme Champion",
	})
	require.Nil(t, err)

	animalID, _, err := Animal(ctx, bc, fixtures.AnimalDef{
		Name: "Moss", Species: "cat", Sex: "male", BirthYear: 2020,
	}, models.VisibilityPolicy{})
	require.Nil(t, err)

	def := fixtures.AnimalDef{
		Name: "Moss", Species: "cat",
		Titles:       []fixtures.TitleAwardDef{{Abbreviation: "SC", Year: 2023}},
		Competitions: []fixtures.CompetitionDef{{Event: "Regional Show", Placement: "1st", Year: 2023}},
	}
	_, terr := AnimalTitles(ctx, bc, animalID, def)
	require.Nil(t, terr)

	created := store.TotalCreated()
	out, terr := AnimalTitles(ctx, bc, animalID, def)
	require.Nil(t, terr)
	assert.Zero(t, out.Created)
	assert.Equal(t, 2, out.Existed)
	assert.Equal(t, created, store.TotalCreated())
}
