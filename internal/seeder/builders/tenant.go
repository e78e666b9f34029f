package builders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pedigreehq/seedstock/internal/common/apperrors"
	"github.com/pedigreehq/seedstock/internal/seeder/db"
	"github.com/pedigreehq/seedstock/internal/seeder/db/dberror"
	"github.com/pedigreehq/seedstock/internal/seeder/db/models"
	"github.com/pedigreehq/seedstock/internal/seeder/envqual"
	"github.com/pedigreehq/seedstock/internal/seeder/fixtures"
)

func visibilityFromDef(def fixtures.VisibilityDef) models.VisibilityPolicy {
	return models.VisibilityPolicy{
		ShowLineage:       def.ShowLineage,
		ShowHealthResults: def.ShowHealthResults,
		ShowGenetics:      def.ShowGenetics,
		ShowBreeder:       def.ShowBreeder,
	}
}

// Tenant upserts the tenant by slug. Theme and visibility settings are
// overwritten with the latest fixture values on every run, created or not.
func Tenant(ctx context.Context, store db.Store, env envqual.Environment, def fixtures.TenantDef) (uuid.UUID, Outcome, apperrors.Error) {
	slug := envqual.Slug(def.Slug, env)
	visibility := visibilityFromDef(def.Visibility)

	existing, err := store.GetTenantBySlug(ctx, slug)
	switch {
	case err == nil:
		if uerr := store.UpdateTenantSettings(ctx, existing.TenantID, def.Theme, visibility); uerr != nil {
			return uuid.Nil, OutcomeExisted, uerr
		}
		log.Ctx(ctx).Info().Str("slug", slug).Msg("tenant exists, settings refreshed")
		return existing.TenantID, OutcomeExisted, nil
	case errors.Is(err, dberror.ErrNotFound):
		tenant := models.Tenant{
			Slug:        slug,
			DisplayName: def.DisplayName,
			Theme:       def.Theme,
			Visibility:  visibility,
		}
		if cerr := store.CreateTenant(ctx, &tenant); cerr != nil {
			return uuid.Nil, OutcomeSkipped, cerr
		}
		log.Ctx(ctx).Info().Str("slug", slug).Msg("tenant created")
		return tenant.TenantID, OutcomeCreated, nil
	default:
		return uuid.Nil, OutcomeSkipped, err
	}
}
