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

func (s *store) CreatePortalAccess(ctx context.Context, p *models.PortalAccess) apperrors.Error {
	if p.AccessID == uuid.Nil {
		p.AccessID = uuid.New()
	}
	query := `
		INSERT INTO portal_access (access_id, tenant_id, party_id, status, user_id, invite_token)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (party_id) DO NOTHING
		RETURNING access_id;
	`
	var insertedID uuid.UUID
	errDb := s.db().QueryRowContext(ctx, query,
		p.AccessID, p.TenantID, p.PartyID, p.Status, p.UserID, p.InviteToken).Scan(&insertedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return dberror.ErrAlreadyExists.Msg("portal access already exists")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("party_id", p.PartyID.String()).Msg("failed to insert portal access")
		return dberror.ErrDatabase.Err(errDb)
	}
	p.AccessID = insertedID
	return nil
}

func (s *store) GetPortalAccessByParty(ctx context.Context, partyID uuid.UUID) (*models.PortalAccess, apperrors.Error) {
	query := `
		SELECT access_id, tenant_id, party_id, status, user_id, invite_token
		FROM portal_access
		WHERE party_id = $1;
	`
	var p models.PortalAccess
	errDb := s.db().QueryRowContext(ctx, query, partyID).Scan(
		&p.AccessID, &p.TenantID, &p.PartyID, &p.Status, &p.UserID, &p.InviteToken)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("portal access not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("party_id", partyID.String()).Msg("failed to retrieve portal access")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return &p, nil
}

// UpdatePortalAccessUser backfills the user link on an access row created
// before its portal user existed. One of the three documented update paths.
func (s *store) UpdatePortalAccessUser(ctx context.Context, accessID, userID uuid.UUID) apperrors.Error {
	query := `
		UPDATE portal_access SET user_id = $2
		WHERE access_id = $1 AND user_id IS NULL
		RETURNING access_id;
	`
	var updatedID uuid.UUID
	errDb := s.db().QueryRowContext(ctx, query, accessID, userID).Scan(&updatedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return dberror.ErrNotFound.Msg("portal access not found or user already linked")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("access_id", accessID.String()).Msg("failed to backfill portal access user")
		return dberror.ErrDatabase.Err(errDb)
	}
	return nil
}
