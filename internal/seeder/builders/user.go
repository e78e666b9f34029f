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

// upsertUser finds or creates a user by qualified email. The default-tenant
// back-reference is set at creation only; an existing user keeps whatever
// default a previous run gave it.
func upsertUser(ctx context.Context, bc *Context, email, name, password string, defaultTenant bool) (uuid.UUID, Outcome, apperrors.Error) {
	existing, err := bc.Store.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		log.Ctx(ctx).Info().Str("email", email).Msg("user exists")
		return existing.UserID, OutcomeExisted, nil
	case errors.Is(err, dberror.ErrNotFound):
		hash, herr := hashPassword(password)
		if herr != nil {
			return uuid.Nil, OutcomeSkipped, dberror.ErrInvalidInput.MsgErr("failed to hash password", herr)
		}
		user := models.User{
			Email:        email,
			Name:         name,
			PasswordHash: hash,
		}
		if defaultTenant {
			user.DefaultTenantID = uuid.NullUUID{UUID: bc.TenantID, Valid: true}
		}
		if cerr := bc.Store.CreateUser(ctx, &user); cerr != nil {
			return uuid.Nil, OutcomeSkipped, cerr
		}
		log.Ctx(ctx).Info().Str("email", email).Msg("user created")
		return user.UserID, OutcomeCreated, nil
	default:
		return uuid.Nil, OutcomeSkipped, err
	}
}

// ensureMembership creates the (user, tenant) membership if absent.
func ensureMembership(ctx context.Context, bc *Context, userID uuid.UUID, role models.MemberRole) (Outcome, apperrors.Error) {
	_, err := bc.Store.GetMembership(ctx, userID, bc.TenantID)
	switch {
	case err == nil:
		return OutcomeExisted, nil
	case errors.Is(err, dberror.ErrNotFound):
		m := models.Membership{UserID: userID, TenantID: bc.TenantID, Role: role}
		if cerr := bc.Store.CreateMembership(ctx, &m); cerr != nil {
			return OutcomeSkipped, cerr
		}
		log.Ctx(ctx).Info().Str("user_id", userID.String()).Str("role", string(role)).Msg("membership created")
		return OutcomeCreated, nil
	default:
		return OutcomeSkipped, err
	}
}

// User builds a tenant staff user plus its membership.
func User(ctx context.Context, bc *Context, def fixtures.UserDef) (uuid.UUID, Outcome, apperrors.Error) {
	if err := bc.requireTenant(); err != nil {
		return uuid.Nil, OutcomeSkipped, err
	}
	email := envqual.Email(def.Email, bc.Env)
	userID, out, err := upsertUser(ctx, bc, email, def.Name, def.Password, def.DefaultTenant)
	if err != nil {
		return uuid.Nil, out, err
	}
	if _, merr := ensureMembership(ctx, bc, userID, models.MemberRole(def.Role)); merr != nil {
		return userID, out, merr
	}
	return userID, out, nil
}

// Shopper builds a marketplace-only account: a global user with no tenant
// membership. Runs in the global pre-pass.
func Shopper(ctx context.Context, bc *Context, def fixtures.ShopperDef) (uuid.UUID, Outcome, apperrors.Error) {
	email := envqual.Email(def.Email, bc.Env)
	return upsertUser(ctx, bc, email, def.Name, def.Password, false)
}
