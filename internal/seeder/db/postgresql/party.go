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

func (s *store) CreateParty(ctx context.Context, p *models.Party) apperrors.Error {
	if p.PartyID == uuid.Nil {
		p.PartyID = uuid.New()
	}
	query := `INSERT INTO parties (party_id, tenant_id, kind) VALUES ($1, $2, $3);`
	if _, errDb := s.db().ExecContext(ctx, query, p.PartyID, p.TenantID, p.Kind); errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Str("kind", string(p.Kind)).Msg("failed to insert party")
		return dberror.ErrDatabase.Err(errDb)
	}
	return nil
}

func createPartyTx(ctx context.Context, tx *sql.Tx, p *models.Party) apperrors.Error {
	if p.PartyID == uuid.Nil {
		p.PartyID = uuid.New()
	}
	query := `INSERT INTO parties (party_id, tenant_id, kind) VALUES ($1, $2, $3);`
	if _, errDb := tx.ExecContext(ctx, query, p.PartyID, p.TenantID, p.Kind); errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Str("kind", string(p.Kind)).Msg("failed to insert party")
		return dberror.ErrDatabase.Err(errDb)
	}
	return nil
}

// CreateOrganization creates the organization together with its owning party
// in one transaction. Either both rows exist afterwards or neither does.
func (s *store) CreateOrganization(ctx context.Context, org *models.Organization) (err apperrors.Error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			rollback(ctx, tx)
		}
	}()

	party := models.Party{TenantID: org.TenantID, Kind: models.PartyOrganization}
	if err = createPartyTx(ctx, tx, &party); err != nil {
		return err
	}
	if org.OrgID == uuid.Nil {
		org.OrgID = uuid.New()
	}
	org.PartyID = uuid.NullUUID{UUID: party.PartyID, Valid: true}

	query := `
		INSERT INTO organizations (org_id, tenant_id, name, email, party_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tenant_id, email) DO NOTHING
		RETURNING org_id;
	`
	var insertedID uuid.UUID
	errDb := tx.QueryRowContext(ctx, query, org.OrgID, org.TenantID, org.Name, org.Email, org.PartyID).Scan(&insertedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			err = dberror.ErrAlreadyExists.Msg("organization already exists")
			return err
		}
		log.Ctx(ctx).Error().Err(errDb).Str("email", org.Email).Msg("failed to insert organization")
		err = dberror.ErrDatabase.Err(errDb)
		return err
	}
	org.OrgID = insertedID
	return commit(ctx, tx)
}

func (s *store) GetOrganizationByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*models.Organization, apperrors.Error) {
	query := `
		SELECT org_id, tenant_id, name, email, party_id
		FROM organizations
		WHERE tenant_id = $1 AND email = $2;
	`
	var org models.Organization
	errDb := s.db().QueryRowContext(ctx, query, tenantID, email).Scan(&org.OrgID, &org.TenantID, &org.Name, &org.Email, &org.PartyID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("organization not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("email", email).Msg("failed to retrieve organization")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return &org, nil
}

// CreateContact creates the contact together with its owning party in one
// transaction.
func (s *store) CreateContact(ctx context.Context, c *models.Contact) (err apperrors.Error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			rollback(ctx, tx)
		}
	}()

	party := models.Party{TenantID: c.TenantID, Kind: models.PartyContact}
	if err = createPartyTx(ctx, tx, &party); err != nil {
		return err
	}
	if c.ContactID == uuid.Nil {
		c.ContactID = uuid.New()
	}
	c.PartyID = uuid.NullUUID{UUID: party.PartyID, Valid: true}

	query := `
		INSERT INTO contacts (contact_id, tenant_id, name, email, party_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tenant_id, email) DO NOTHING
		RETURNING contact_id;
	`
	var insertedID uuid.UUID
	errDb := tx.QueryRowContext(ctx, query, c.ContactID, c.TenantID, c.Name, c.Email, c.PartyID).Scan(&insertedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			err = dberror.ErrAlreadyExists.Msg("contact already exists")
			return err
		}
		log.Ctx(ctx).Error().Err(errDb).Str("email", c.Email).Msg("failed to insert contact")
		err = dberror.ErrDatabase.Err(errDb)
		return err
	}
	c.ContactID = insertedID
	return commit(ctx, tx)
}

func (s *store) GetContactByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*models.Contact, apperrors.Error) {
	query := `
		SELECT contact_id, tenant_id, name, email, party_id
		FROM contacts
		WHERE tenant_id = $1 AND email = $2;
	`
	var c models.Contact
	errDb := s.db().QueryRowContext(ctx, query, tenantID, email).Scan(&c.ContactID, &c.TenantID, &c.Name, &c.Email, &c.PartyID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("contact not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("email", email).Msg("failed to retrieve contact")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return &c, nil
}

// BackfillContactParty repairs a contact created before parties existed:
// the new party row and the link update share one transaction, so a failed
// update can never leave an orphaned party behind. One of the three
// documented update paths.
func (s *store) BackfillContactParty(ctx context.Context, tenantID, contactID uuid.UUID) (partyID uuid.UUID, err apperrors.Error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	defer func() {
		if err != nil {
			rollback(ctx, tx)
		}
	}()

	party := models.Party{TenantID: tenantID, Kind: models.PartyContact}
	if err = createPartyTx(ctx, tx, &party); err != nil {
		return uuid.Nil, err
	}

	query := `
		UPDATE contacts SET party_id = $3
		WHERE contact_id = $1 AND tenant_id = $2 AND party_id IS NULL
		RETURNING contact_id;
	`
	var updatedID uuid.UUID
	errDb := tx.QueryRowContext(ctx, query, contactID, tenantID, party.PartyID).Scan(&updatedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			err = dberror.ErrNotFound.Msg("contact not found or party already linked")
			return uuid.Nil, err
		}
		log.Ctx(ctx).Error().Err(errDb).Str("contact_id", contactID.String()).Msg("failed to backfill contact party")
		err = dberror.ErrDatabase.Err(errDb)
		return uuid.Nil, err
	}
	if err = commit(ctx, tx); err != nil {
		return uuid.Nil, err
	}
	return party.PartyID, nil
}
