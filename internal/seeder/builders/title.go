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
	"github.com/pedigreehq/seedstock/internal/seeder/fixtures"
)

// TitleDefinition seeds one global (tenant-independent) title definition.
// Runs in the global pre-pass.
func TitleDefinition(ctx context.Context, bc *Context, def fixtures.TitleDefinitionDef) (uuid.UUID, Outcome, apperrors.Error) {
	existing, err := bc.Store.GetTitleDefinition(ctx, def.Species, def.Abbreviation)
	switch {
	case err == nil:
		return existing.DefinitionID, OutcomeExisted, nil
	case errors.Is(err, dberror.ErrNotFound):
		d := models.TitleDefinition{
			Species:      def.Species,
			Abbreviation: def.Abbreviation,
			Name:         def.Name,
		}
		if cerr := bc.Store.CreateTitleDefinition(ctx, &d); cerr != nil {
			return uuid.Nil, OutcomeSkipped, cerr
		}
		log.Ctx(ctx).Info().Str("species", def.Species).Str("abbreviation", def.Abbreviation).Msg("title definition created")
		return d.DefinitionID, OutcomeCreated, nil
	default:
		return uuid.Nil, OutcomeSkipped, err
	}
}

// TitleOutcomes tallies one animal's titles-and-competitions pass.
type TitleOutcomes struct {
	Created int
	Existed int
	Skipped int
}

// AnimalTitles attaches declared titles and competition entries to an already
// created animal. Titles are enrichment: a missing global definition logs a
// warning and moves on, it never fails the pass.
func AnimalTitles(ctx context.Context, bc *Context, animalID uuid.UUID, def fixtures.AnimalDef) (TitleOutcomes, apperrors.Error) {
	var out TitleOutcomes

	for _, award := range def.Titles {
		titleDef, err := bc.Store.GetTitleDefinition(ctx, def.Species, award.Abbreviation)
		if err != nil {
			if errors.Is(err, dberror.ErrNotFound) {
				log.Ctx(ctx).Warn().Str("animal", def.Name).Str("species", def.Species).Str("abbreviation", award.Abbreviation).Msg("title definition missing, skipping title")
				out.Skipped++
				continue
			}
			return out, err
		}
		_, err = bc.Store.GetAnimalTitle(ctx, animalID, titleDef.DefinitionID)
		switch {
		case err == nil:
			out.Existed++
		case errors.Is(err, dberror.ErrNotFound):
			title := models.AnimalTitle{
				AnimalID:     animalID,
				DefinitionID: titleDef.DefinitionID,
				EarnedAt:     time.Date(award.Year, time.December, 31, 0, 0, 0, 0, time.UTC),
			}
			if cerr := bc.Store.CreateAnimalTitle(ctx, &title); cerr != nil {
				return out, cerr
			}
			log.Ctx(ctx).Info().Str("animal", def.Name).Str("abbreviation", award.Abbreviation).Msg("animal title created")
			out.Created++
		default:
			return out, err
		}
	}

	for _, comp := range def.Competitions {
		_, err := bc.Store.GetCompetitionEntry(ctx, animalID, comp.Event)
		switch {
		case err == nil:
			out.Existed++
		case errors.Is(err, dberror.ErrNotFound):
			entry := models.CompetitionEntry{
				AnimalID:  animalID,
				Event:     comp.Event,
				Placement: comp.Placement,
				EnteredAt: time.Date(comp.Year, time.December, 31, 0, 0, 0, 0, time.UTC),
			}
			if cerr := bc.Store.CreateCompetitionEntry(ctx, &entry); cerr != nil {
				return out, cerr
			}
			out.Created++
		default:
			return out, err
		}
	}

	return out, nil
}
