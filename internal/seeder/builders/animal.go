package builders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pedigreehq/seedstock/internal/common/apperrors"
	"github.com/pedigreehq/seedstock/internal/seeder/db/dberror"
	"github.com/pedigreehq/seedstock/internal/seeder/db/models"
	"github.com/pedigreehq/seedstock/internal/seeder/envqual"
	"github.com/pedigreehq/seedstock/internal/seeder/fixtures"
	"github.com/pedigreehq/seedstock/internal/seeder/resolver"
)

// birthDay is the fixed day-of-year used to turn a fixture birth year into a
// date. July 1 is arbitrary; the fixtures only carry year precision.
const birthDay = 182

func birthDateFromYear(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, birthDay-1)
}

// mergeVisibility applies per-animal overrides field-by-field onto the tenant
// default policy. A key present in the override map wins regardless of value.
func mergeVisibility(defaults models.VisibilityPolicy, overrides map[string]bool) models.VisibilityPolicy {
	merged := defaults
	for field, value := range overrides {
		switch field {
		case "showLineage":
			merged.ShowLineage = value
		case "showHealthResults":
			merged.ShowHealthResults = value
		case "showGenetics":
			merged.ShowGenetics = value
		case "showBreeder":
			merged.ShowBreeder = value
		}
	}
	return merged
}

func geneticsFromDef(def fixtures.GeneticsDef) models.GeneticsProfile {
	return models.GeneticsProfile{
		CoatColor: def.CoatColor,
		CoatType:  def.CoatType,
		Physical:  def.Physical,
		EyeColor:  def.EyeColor,
		Health:    def.Health,
	}
}

// Animal upserts the animal with its genetics and privacy records. Callers
// must feed animals in generation order; by the time this runs, a declared
// sire or dam that fails to resolve is a fixture-data bug and is surfaced as
// an error-level skip, never silently dropped.
func Animal(ctx context.Context, bc *Context, def fixtures.AnimalDef, tenantDefaults models.VisibilityPolicy) (uuid.UUID, Outcome, apperrors.Error) {
	if err := bc.requireTenant(); err != nil {
		return uuid.Nil, OutcomeSkipped, err
	}
	name := envqual.Name(def.Name, bc.Env)

	existing, err := bc.Store.GetAnimalByNaturalKey(ctx, bc.TenantID, name, def.Species)
	switch {
	case err == nil:
		log.Ctx(ctx).Info().Str("name", name).Msg("animal exists")
		bc.Resolver.Register(bc.TenantID, resolver.KindAnimal, name, existing.AnimalID)
		return existing.AnimalID, OutcomeExisted, nil
	case errors.Is(err, dberror.ErrNotFound):
		// fall through to create
	default:
		return uuid.Nil, OutcomeSkipped, err
	}

	var sireID, damID uuid.NullUUID
	if def.Sire != "" {
		id, rerr := bc.Resolver.Resolve(ctx, bc.TenantID, resolver.KindAnimal, envqual.Name(def.Sire, bc.Env))
		if rerr != nil {
			log.Ctx(ctx).Error().Str("name", name).Str("sire", def.Sire).Msg("sire not resolved after generation ordering; fixture data bug, skipping animal")
			return uuid.Nil, OutcomeSkipped, rerr
		}
		sireID = uuid.NullUUID{UUID: id, Valid: true}
	}
	if def.Dam != "" {
		id, rerr := bc.Resolver.Resolve(ctx, bc.TenantID, resolver.KindAnimal, envqual.Name(def.Dam, bc.Env))
		if rerr != nil {
			log.Ctx(ctx).Error().Str("name", name).Str("dam", def.Dam).Msg("dam not resolved after generation ordering; fixture data bug, skipping animal")
			return uuid.Nil, OutcomeSkipped, rerr
		}
		damID = uuid.NullUUID{UUID: id, Valid: true}
	}

	status := def.Status
	if status == "" {
		status = "active"
	}
	animal := models.Animal{
		TenantID:  bc.TenantID,
		Name:      name,
		Species:   def.Species,
		Sex:       def.Sex,
		Breed:     def.Breed,
		BirthDate: birthDateFromYear(def.BirthYear),
		Notes:     def.Notes,
		Status:    status,
		SireID:    sireID,
		DamID:     damID,
	}
	genetics := models.AnimalGenetics{Profile: geneticsFromDef(def.Genetics)}
	privacy := models.AnimalPrivacy{Policy: mergeVisibility(tenantDefaults, def.Privacy)}

	if cerr := bc.Store.CreateAnimal(ctx, &animal, &genetics, &privacy); cerr != nil {
		return uuid.Nil, OutcomeSkipped, cerr
	}
	log.Ctx(ctx).Info().Str("name", name).Int("generation", def.Generation).Msg("animal created")
	bc.Resolver.Register(bc.TenantID, resolver.KindAnimal, name, animal.AnimalID)
	return animal.AnimalID, OutcomeCreated, nil
}
