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

// CreateTenant inserts a new tenant. The slug is the natural key; a second
// insert with the same slug returns ErrAlreadyExists.
func (s *store) CreateTenant(ctx context.Context, t *models.Tenant) apperrors.Error {
	if t.TenantID == uuid.Nil {
		t.TenantID = uuid.New()
	}
	theme, err := toJSONB(t.Theme)
	if err != nil {
		return err
	}
	visibility, err := toJSONB(t.Visibility)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tenants (tenant_id, slug, display_name, theme, visibility)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (slug) DO NOTHING
		RETURNING tenant_id;
	`
	var insertedID uuid.UUID
	errDb := s.db().QueryRowContext(ctx, query, t.TenantID, t.Slug, t.DisplayName, theme, visibility).Scan(&insertedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			log.Ctx(ctx).Info().Str("slug", t.Slug).Msg("tenant already exists")
			return dberror.ErrAlreadyExists.Msg("tenant already exists")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("slug", t.Slug).Msg("failed to insert tenant")
		return dberror.ErrDatabase.Err(errDb)
	}
	t.TenantID = insertedID
	return nil
}

func (s *store) GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, apperrors.Error) {
	query := `
		SELECT tenant_id, slug, display_name, theme, visibility
		FROM tenants
		WHERE slug = $1;
	`
	var t models.Tenant
	var theme, visibility pgtype.JSONB
	errDb := s.db().QueryRowContext(ctx, query, slug).Scan(&t.TenantID, &t.Slug, &t.DisplayName, &theme, &visibility)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("tenant not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("slug", slug).Msg("failed to retrieve tenant")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	if err := fromJSONB(theme, &t.Theme); err != nil {
		return nil, err
	}
	if err := fromJSONB(visibility, &t.Visibility); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTenantSettings overwrites theme and visibility policy with the latest
// fixture definition. Settings are the one place the seeder updates existing
// rows on every run.
func (s *store) UpdateTenantSettings(ctx context.Context, tenantID uuid.UUID, theme map[string]string, visibility models.VisibilityPolicy) apperrors.Error {
	themeJSON, err := toJSONB(theme)
	if err != nil {
		return err
	}
	visibilityJSON, err := toJSONB(visibility)
	if err != nil {
		return err
	}

	query := `
		UPDATE tenants
		SET theme = $2, visibility = $3
		WHERE tenant_id = $1
		RETURNING tenant_id;
	`
	var updatedID uuid.UUID
	errDb := s.db().QueryRowContext(ctx, query, tenantID, themeJSON, visibilityJSON).Scan(&updatedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return dberror.ErrNotFound.Msg("tenant not found for settings update")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("tenant_id", tenantID.String()).Msg("failed to update tenant settings")
		return dberror.ErrDatabase.Err(errDb)
	}
	return nil
}
