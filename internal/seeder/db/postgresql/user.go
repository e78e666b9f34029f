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

func (s *store) CreateUser(ctx context.Context, u *models.User) apperrors.Error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	query := `
		INSERT INTO users (user_id, email, name, password_hash, default_tenant_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING
		RETURNING user_id;
	`
	var insertedID uuid.UUID
	errDb := s.db().QueryRowContext(ctx, query, u.UserID, u.Email, u.Name, u.PasswordHash, u.DefaultTenantID).Scan(&insertedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			log.Ctx(ctx).Info().Str("email", u.Email).Msg("user already exists")
			return dberror.ErrAlreadyExists.Msg("user already exists")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("email", u.Email).Msg("failed to insert user")
		return dberror.ErrDatabase.Err(errDb)
	}
	u.UserID = insertedID
	return nil
}

func (s *store) GetUserByEmail(ctx context.Context, email string) (*models.User, apperrors.Error) {
	query := `
		SELECT user_id, email, name, password_hash, default_tenant_id
		FROM users
		WHERE email = $1;
	`
	var u models.User
	errDb := s.db().QueryRowContext(ctx, query, email).Scan(&u.UserID, &u.Email, &u.Name, &u.PasswordHash, &u.DefaultTenantID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("user not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("email", email).Msg("failed to retrieve user")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return &u, nil
}

func (s *store) CreateMembership(ctx context.Context, m *models.Membership) apperrors.Error {
	if m.MembershipID == uuid.Nil {
		m.MembershipID = uuid.New()
	}
	query := `
		INSERT INTO tenant_memberships (membership_id, user_id, tenant_id, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, tenant_id) DO NOTHING
		RETURNING membership_id;
	`
	var insertedID uuid.UUID
	errDb := s.db().QueryRowContext(ctx, query, m.MembershipID, m.UserID, m.TenantID, m.Role).Scan(&insertedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return dberror.ErrAlreadyExists.Msg("membership already exists")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("user_id", m.UserID.String()).Msg("failed to insert membership")
		return dberror.ErrDatabase.Err(errDb)
	}
	m.MembershipID = insertedID
	return nil
}

func (s *store) GetMembership(ctx context.Context, userID, tenantID uuid.UUID) (*models.Membership, apperrors.Error) {
	query := `
		SELECT membership_id, user_id, tenant_id, role
		FROM tenant_memberships
		WHERE user_id = $1 AND tenant_id = $2;
	`
	var m models.Membership
	errDb := s.db().QueryRowContext(ctx, query, userID, tenantID).Scan(&m.MembershipID, &m.UserID, &m.TenantID, &m.Role)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("membership not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("user_id", userID.String()).Msg("failed to retrieve membership")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return &m, nil
}
