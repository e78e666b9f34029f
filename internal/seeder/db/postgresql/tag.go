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

func (s *store) CreateTag(ctx context.Context, t *models.Tag) apperrors.Error {
	if t.TagID == uuid.Nil {
		t.TagID = uuid.New()
	}
	query := `
		INSERT INTO tags (tag_id, tenant_id, module, name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tenant_id, module, name) DO NOTHING
		RETURNING tag_id;
	`
	var insertedID uuid.UUID
	errDb := s.db().QueryRowContext(ctx, query, t.TagID, t.TenantID, t.Module, t.Name).Scan(&insertedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return dberror.ErrAlreadyExists.Msg("tag already exists")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("name", t.Name).Msg("failed to insert tag")
		return dberror.ErrDatabase.Err(errDb)
	}
	t.TagID = insertedID
	return nil
}

func (s *store) GetTag(ctx context.Context, tenantID uuid.UUID, module models.TagModule, name string) (*models.Tag, apperrors.Error) {
	query := `
		SELECT tag_id, tenant_id, module, name
		FROM tags
		WHERE tenant_id = $1 AND module = $2 AND name = $3;
	`
	var t models.Tag
	errDb := s.db().QueryRowContext(ctx, query, tenantID, module, name).Scan(&t.TagID, &t.TenantID, &t.Module, &t.Name)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("tag not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("name", name).Msg("failed to retrieve tag")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return &t, nil
}

func (s *store) CreateTagAssignment(ctx context.Context, a *models.TagAssignment) apperrors.Error {
	if a.AssignmentID == uuid.Nil {
		a.AssignmentID = uuid.New()
	}
	query := `
		INSERT INTO tag_assignments (assignment_id, tag_id, target_kind, target_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tag_id, target_kind, target_id) DO NOTHING
		RETURNING assignment_id;
	`
	var insertedID uuid.UUID
	errDb := s.db().QueryRowContext(ctx, query, a.AssignmentID, a.TagID, a.Target.Kind, a.Target.ID).Scan(&insertedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return dberror.ErrAlreadyExists.Msg("tag assignment already exists")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("tag_id", a.TagID.String()).Msg("failed to insert tag assignment")
		return dberror.ErrDatabase.Err(errDb)
	}
	a.AssignmentID = insertedID
	return nil
}

func (s *store) GetTagAssignment(ctx context.Context, tagID uuid.UUID, target models.TagTarget) (*models.TagAssignment, apperrors.Error) {
	query := `
		SELECT assignment_id, tag_id, target_kind, target_id
		FROM tag_assignments
		WHERE tag_id = $1 AND target_kind = $2 AND target_id = $3;
	`
	var a models.TagAssignment
	errDb := s.db().QueryRowContext(ctx, query, tagID, target.Kind, target.ID).Scan(&a.AssignmentID, &a.TagID, &a.Target.Kind, &a.Target.ID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("tag assignment not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("tag_id", tagID.String()).Msg("failed to retrieve tag assignment")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return &a, nil
}
