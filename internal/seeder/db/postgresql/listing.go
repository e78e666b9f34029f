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

func (s *store) CreateListing(ctx context.Context, l *models.Listing) apperrors.Error {
	if l.ListingID == uuid.Nil {
		l.ListingID = uuid.New()
	}
	query := `
		INSERT INTO listings (listing_id, tenant_id, title, status, published_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tenant_id, title) DO NOTHING
		RETURNING listing_id;
	`
	var insertedID uuid.UUID
	errDb := s.db().QueryRowContext(ctx, query, l.ListingID, l.TenantID, l.Title, l.Status, l.PublishedAt).Scan(&insertedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return dberror.ErrAlreadyExists.Msg("listing already exists")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("title", l.Title).Msg("failed to insert listing")
		return dberror.ErrDatabase.Err(errDb)
	}
	l.ListingID = insertedID
	return nil
}

func (s *store) GetListingByTitle(ctx context.Context, tenantID uuid.UUID, title string) (*models.Listing, apperrors.Error) {
	query := `
		SELECT listing_id, tenant_id, title, status, published_at
		FROM listings
		WHERE tenant_id = $1 AND title = $2;
	`
	var l models.Listing
	var publishedAt sql.NullTime
	errDb := s.db().QueryRowContext(ctx, query, tenantID, title).Scan(&l.ListingID, &l.TenantID, &l.Title, &l.Status, &publishedAt)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("listing not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("title", title).Msg("failed to retrieve listing")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		l.PublishedAt = &t
	}
	return &l, nil
}
