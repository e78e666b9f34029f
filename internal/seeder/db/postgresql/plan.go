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

func (s *store) CreateBreedingPlan(ctx context.Context, p *models.BreedingPlan) apperrors.Error {
	if p.PlanID == uuid.Nil {
		p.PlanID = uuid.New()
	}
	query := `
		INSERT INTO breeding_plans (plan_id, tenant_id, name, dam_id, sire_id, status, committed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tenant_id, name) DO NOTHING
		RETURNING plan_id;
	`
	var insertedID uuid.UUID
	errDb := s.db().QueryRowContext(ctx, query,
		p.PlanID, p.TenantID, p.Name, p.DamID, p.SireID, p.Status, p.CommittedAt).Scan(&insertedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return dberror.ErrAlreadyExists.Msg("breeding plan already exists")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("name", p.Name).Msg("failed to insert breeding plan")
		return dberror.ErrDatabase.Err(errDb)
	}
	p.PlanID = insertedID
	return nil
}

func (s *store) GetBreedingPlanByName(ctx context.Context, tenantID uuid.UUID, name string) (*models.BreedingPlan, apperrors.Error) {
	query := `
		SELECT plan_id, tenant_id, name, dam_id, sire_id, status, committed_at
		FROM breeding_plans
		WHERE tenant_id = $1 AND name = $2;
	`
	var p models.BreedingPlan
	var committedAt sql.NullTime
	errDb := s.db().QueryRowContext(ctx, query, tenantID, name).Scan(
		&p.PlanID, &p.TenantID, &p.Name, &p.DamID, &p.SireID, &p.Status, &committedAt)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("breeding plan not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("name", name).Msg("failed to retrieve breeding plan")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	if committedAt.Valid {
		t := committedAt.Time
		p.CommittedAt = &t
	}
	return &p, nil
}
