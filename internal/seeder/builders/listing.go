package builders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pedigreehq/seedstock/internal/common/apperrors"
	"github.com/pedigreehq/seedstock/internal/seeder/db/dberror"
	"github.com/pedigreehq/seedstock/internal/seeder/db/models"
	"github.com/pedigreehq/seedstock/internal/seeder/envqual"
	"github.com/pedigreehq/seedstock/internal/seeder/fixtures"
)

// Listing upserts a marketplace listing by (tenant, title). ACTIVE listings
// are stamped with a publish time at creation.
func Listing(ctx context.Context, bc *Context, def fixtures.ListingDef) (uuid.UUID, Outcome, apperrors.Error) {
	if err := bc.requireTenant(); err != nil {
		return uuid.Nil, OutcomeSkipped, err
	}
	title := envqual.Name(def.Title, bc.Env)

	existing, err := bc.Store.GetListingByTitle(ctx, bc.TenantID, title)
	switch {
	case err == nil:
		log.Ctx(ctx).Info().Str("title", title).Msg("listing exists")
		return existing.ListingID, OutcomeExisted, nil
	case errors.Is(err, dberror.ErrNotFound):
		listing := models.Listing{
			TenantID: bc.TenantID,
			Title:    title,
			Status:   models.ListingStatus(def.Status),
		}
		if listing.Status == models.ListingActive {
			now := bc.Now
			listing.PublishedAt = &now
		}
		if cerr := bc.Store.CreateListing(ctx, &listing); cerr != nil {
			return uuid.Nil, OutcomeSkipped, cerr
		}
		log.Ctx(ctx).Info().Str("title", title).Str("status", def.Status).Msg("listing created")
		return listing.ListingID, OutcomeCreated, nil
	default:
		return uuid.Nil, OutcomeSkipped, err
	}
}
