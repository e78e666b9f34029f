package postgresql

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pedigreehq/seedstock/internal/common/apperrors"
	"github.com/pedigreehq/seedstock/internal/seeder/db/dberror"
	"github.com/pedigreehq/seedstock/internal/seeder/db/models"
)

// Title definitions are tenant-independent: seeded once in the global
// pre-pass and only looked up afterwards.

func (s *store) CreateTitleDefinition(ctx context.Context, d *models.TitleDefinition) apperrors.Error {
	if d.DefinitionID == uuid.Nil {
		d.DefinitionID = uuid.New()
	}
	query := `
		INSERT INTO title_definitions (definition_id, species, abbreviation, name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (species, abbreviation) DO NOTHING
		RETURNING definition_id;
	`
	var insertedID uuid.UUID
	errDb := s.db().QueryRowContext(ctx, query, d.DefinitionID, d.Species, d.Abbreviation, d.Name).Scan(&insertedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return dberror.ErrAlreadyExists.Msg("title definition already exists")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("abbreviation", d.Abbreviation).Msg("failed to insert title definition")
		return dberror.ErrDatabase.Err(errDb)
	}
	d.DefinitionID = insertedID
	return nil
}

func (s *store) GetTitleDefinition(ctx context.Context, species, abbreviation string) (*models.TitleDefinition, apperrors.Error) {
	query := `
		SELECT definition_id, species, abbreviation, name
		FROM title_definitions
		WHERE species = $1 AND abbreviation = $2;
	`
	var d models.TitleDefinition
	errDb := s.db().QueryRowContext(ctx, query, species, abbreviation).Scan(&d.DefinitionID, &d.Species, &d.Abbreviation, &d.Name)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("title definition not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("abbreviation", abbreviation).Msg("failed to retrieve title definition")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return &d, nil
}

func (s *store) CreateAnimalTitle(ctx context.Context, t *models.AnimalTitle) apperrors.Error {
	if t.TitleID == uuid.Nil {
		t.TitleID = uuid.New()
	}
	query := `
		INSERT INTO animal_titles (title_id, animal_id, definition_id, earned_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (animal_id, definition_id) DO NOTHING
		RETURNING title_id;
	`
	var insertedID uuid.UUID
	errDb := s.db().QueryRowContext(ctx, query, t.TitleID, t.AnimalID, t.DefinitionID, t.EarnedAt).Scan(&insertedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return dberror.ErrAlreadyExists.Msg("animal title already exists")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("animal_id", t.AnimalID.String()).Msg("failed to insert animal title")
		return dberror.ErrDatabase.Err(errDb)
	}
	t.TitleID = insertedID
	return nil
}

func (s *store) GetAnimalTitle(ctx context.Context, animalID, definitionID uuid.UUID) (*models.AnimalTitle, apperrors.Error) {
	query := `
		SELECT title_id, animal_id, definition_id, earned_at
		FROM animal_titles
		WHERE animal_id = $1 AND definition_id = $2;
	`
	var t models.AnimalTitle
	errDb := s.db().QueryRowContext(ctx, query, animalID, definitionID).Scan(&t.TitleID, &t.AnimalID, &t.DefinitionID, &t.EarnedAt)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("animal title not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("animal_id", animalID.String()).Msg("failed to retrieve animal title")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return &t, nil
}

func (s *store) CreateCompetitionEntry(ctx context.Context, e *models.CompetitionEntry) apperrors.Error {
	if e.EntryID == uuid.Nil {
		e.EntryID = uuid.New()
	}
	query := `
		INSERT INTO competition_entries (entry_id, animal_id, event, placement, entered_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (animal_id, event) DO NOTHING
		RETURNING entry_id;
	`
	var insertedID uuid.UUID
	errDb := s.db().QueryRowContext(ctx, query, e.EntryID, e.AnimalID, e.Event, e.Placement, e.EnteredAt).Scan(&insertedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return dberror.ErrAlreadyExists.Msg("competition entry already exists")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("event", e.Event).Msg("failed to insert competition entry")
		return dberror.ErrDatabase.Err(errDb)
	}
	e.EntryID = insertedID
	return nil
}

func (s *store) GetCompetitionEntry(ctx context.Context, animalID uuid.UUID, event string) (*models.CompetitionEntry, apperrors.Error) {
	query := `
		SELECT entry_id, animal_id, event, placement, entered_at
		FROM competition_entries
		WHERE animal_id = $1 AND event = $2;
	`
	var e models.CompetitionEntry
	errDb := s.db().QueryRowContext(ctx, query, animalID, event).Scan(&e.EntryID, &e.AnimalID, &e.Event, &e.Placement, &e.EnteredAt)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("competition entry not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("event", event).Msg("failed to retrieve competition entry")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return &e, nil
}
