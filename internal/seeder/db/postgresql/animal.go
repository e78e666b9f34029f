package postgresql

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgtype"
	"github.com/rs/zerolog/log"

	"github.com/pedigreehq/seedstock/internal/common/apperrors"
	"github.com/pedigreehq/seedstock/internal/seeder/db/dberror"
	"github.com/pedigreehq/seedstock/internal/seeder/db/models"
)

// CreateAnimal creates the animal together with its genetics and privacy
// records in one transaction. A partially-created animal without genetics or
// privacy would corrupt every later builder, so the three inserts stand or
// fall together.
func (s *store) CreateAnimal(ctx context.Context, a *models.Animal, g *models.AnimalGenetics, p *models.AnimalPrivacy) (err apperrors.Error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			rollback(ctx, tx)
		}
	}()

	if a.AnimalID == uuid.Nil {
		a.AnimalID = uuid.New()
	}
	query := `
		INSERT INTO animals (animal_id, tenant_id, name, species, sex, breed, birth_date, notes, status, sire_id, dam_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (tenant_id, name, species) DO NOTHING
		RETURNING animal_id;
	`
	var insertedID uuid.UUID
	errDb := tx.QueryRowContext(ctx, query,
		a.AnimalID, a.TenantID, a.Name, a.Species, a.Sex, a.Breed,
		a.BirthDate, a.Notes, a.Status, a.SireID, a.DamID).Scan(&insertedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			err = dberror.ErrAlreadyExists.Msg("animal already exists")
			return err
		}
		log.Ctx(ctx).Error().Err(errDb).Str("name", a.Name).Msg("failed to insert animal")
		err = dberror.ErrDatabase.Err(errDb)
		return err
	}
	a.AnimalID = insertedID

	profile, err := toJSONB(g.Profile)
	if err != nil {
		return err
	}
	if g.GeneticsID == uuid.Nil {
		g.GeneticsID = uuid.New()
	}
	g.AnimalID = a.AnimalID
	if _, errDb = tx.ExecContext(ctx,
		`INSERT INTO animal_genetics (genetics_id, animal_id, profile) VALUES ($1, $2, $3);`,
		g.GeneticsID, g.AnimalID, profile); errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Str("name", a.Name).Msg("failed to insert animal genetics")
		err = dberror.ErrDatabase.Err(errDb)
		return err
	}

	policy, err := toJSONB(p.Policy)
	if err != nil {
		return err
	}
	if p.PrivacyID == uuid.Nil {
		p.PrivacyID = uuid.New()
	}
	p.AnimalID = a.AnimalID
	if _, errDb = tx.ExecContext(ctx,
		`INSERT INTO animal_privacy (privacy_id, animal_id, policy) VALUES ($1, $2, $3);`,
		p.PrivacyID, p.AnimalID, policy); errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Str("name", a.Name).Msg("failed to insert animal privacy")
		err = dberror.ErrDatabase.Err(errDb)
		return err
	}

	return commit(ctx, tx)
}

func (s *store) GetAnimalByNaturalKey(ctx context.Context, tenantID uuid.UUID, name, species string) (*models.Animal, apperrors.Error) {
	query := `
		SELECT animal_id, tenant_id, name, species, sex, breed, birth_date, notes, status, sire_id, dam_id
		FROM animals
		WHERE tenant_id = $1 AND name = $2 AND species = $3;
	`
	var a models.Animal
	errDb := s.db().QueryRowContext(ctx, query, tenantID, name, species).Scan(
		&a.AnimalID, &a.TenantID, &a.Name, &a.Species, &a.Sex, &a.Breed,
		&a.BirthDate, &a.Notes, &a.Status, &a.SireID, &a.DamID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("animal not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("name", name).Msg("failed to retrieve animal")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return &a, nil
}

// FindAnimalIDByName resolves an animal by qualified name alone. Fixture
// names are unique within a tenant across species, which the resolver relies
// on for sire and dam references.
func (s *store) FindAnimalIDByName(ctx context.Context, tenantID uuid.UUID, name string) (uuid.UUID, apperrors.Error) {
	query := `SELECT animal_id FROM animals WHERE tenant_id = $1 AND name = $2;`
	var animalID uuid.UUID
	errDb := s.db().QueryRowContext(ctx, query, tenantID, name).Scan(&animalID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return uuid.Nil, dberror.ErrNotFound.Msg("animal not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("name", name).Msg("failed to resolve animal by name")
		return uuid.Nil, dberror.ErrDatabase.Err(errDb)
	}
	return animalID, nil
}

func (s *store) GetAnimalPrivacy(ctx context.Context, animalID uuid.UUID) (*models.AnimalPrivacy, apperrors.Error) {
	query := `SELECT privacy_id, animal_id, policy FROM animal_privacy WHERE animal_id = $1;`
	var p models.AnimalPrivacy
	var policy pgtype.JSONB
	errDb := s.db().QueryRowContext(ctx, query, animalID).Scan(&p.PrivacyID, &p.AnimalID, &policy)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("animal privacy not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("animal_id", animalID.String()).Msg("failed to retrieve animal privacy")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	if err := fromJSONB(policy, &p.Policy); err != nil {
		return nil, err
	}
	return &p, nil
}
