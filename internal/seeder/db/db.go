// Package db defines the persistence capability consumed by the seeding
// engine: find-by-natural-key, create, the documented backfill updates, and
// transactional multi-record creates. Two implementations exist: postgresql
// for real runs and memory for tests and dry runs.
package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/pedigreehq/seedstock/internal/common/apperrors"
	"github.com/pedigreehq/seedstock/internal/seeder/db/models"
)

// Store is the full repository surface. Finders return dberror.ErrNotFound
// when no row matches the natural key; creators return dberror.ErrAlreadyExists
// when the natural key is already taken. Multi-record creates (tenant with
// settings, party-backed contact/organization, animal with genetics and
// privacy, thread with participants and messages) are atomic: either every
// sub-record exists afterwards or none does.
type Store interface {
	// Tenants. Settings are replace-on-conflict: UpdateTenantSettings runs on
	// every pass even when the tenant already exists.
	GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, apperrors.Error)
	CreateTenant(ctx context.Context, t *models.Tenant) apperrors.Error
	UpdateTenantSettings(ctx context.Context, tenantID uuid.UUID, theme map[string]string, visibility models.VisibilityPolicy) apperrors.Error

	// Users and memberships.
	GetUserByEmail(ctx context.Context, email string) (*models.User, apperrors.Error)
	CreateUser(ctx context.Context, u *models.User) apperrors.Error
	GetMembership(ctx context.Context, userID, tenantID uuid.UUID) (*models.Membership, apperrors.Error)
	CreateMembership(ctx context.Context, m *models.Membership) apperrors.Error

	// Parties, organizations, contacts.
	CreateParty(ctx context.Context, p *models.Party) apperrors.Error
	GetOrganizationByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*models.Organization, apperrors.Error)
	CreateOrganization(ctx context.Context, org *models.Organization) apperrors.Error
	GetContactByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*models.Contact, apperrors.Error)
	CreateContact(ctx context.Context, c *models.Contact) apperrors.Error
	// BackfillContactParty creates a contact-kind party and links it to a
	// contact that predates parties, atomically. Returns the new party id.
	BackfillContactParty(ctx context.Context, tenantID, contactID uuid.UUID) (uuid.UUID, apperrors.Error)

	// Animals.
	GetAnimalByNaturalKey(ctx context.Context, tenantID uuid.UUID, name, species string) (*models.Animal, apperrors.Error)
	FindAnimalIDByName(ctx context.Context, tenantID uuid.UUID, name string) (uuid.UUID, apperrors.Error)
	CreateAnimal(ctx context.Context, a *models.Animal, g *models.AnimalGenetics, p *models.AnimalPrivacy) apperrors.Error
	GetAnimalPrivacy(ctx context.Context, animalID uuid.UUID) (*models.AnimalPrivacy, apperrors.Error)

	// Titles and competition entries.
	GetTitleDefinition(ctx context.Context, species, abbreviation string) (*models.TitleDefinition, apperrors.Error)
	CreateTitleDefinition(ctx context.Context, d *models.TitleDefinition) apperrors.Error
	GetAnimalTitle(ctx context.Context, animalID, definitionID uuid.UUID) (*models.AnimalTitle, apperrors.Error)
	CreateAnimalTitle(ctx context.Context, t *models.AnimalTitle) apperrors.Error
	GetCompetitionEntry(ctx context.Context, animalID uuid.UUID, event string) (*models.CompetitionEntry, apperrors.Error)
	CreateCompetitionEntry(ctx context.Context, e *models.CompetitionEntry) apperrors.Error

	// Breeding plans.
	GetBreedingPlanByName(ctx context.Context, tenantID uuid.UUID, name string) (*models.BreedingPlan, apperrors.Error)
	CreateBreedingPlan(ctx context.Context, p *models.BreedingPlan) apperrors.Error

	// Marketplace listings.
	GetListingByTitle(ctx context.Context, tenantID uuid.UUID, title string) (*models.Listing, apperrors.Error)
	CreateListing(ctx context.Context, l *models.Listing) apperrors.Error

	// Tags.
	GetTag(ctx context.Context, tenantID uuid.UUID, module models.TagModule, name string) (*models.Tag, apperrors.Error)
	CreateTag(ctx context.Context, t *models.Tag) apperrors.Error
	GetTagAssignment(ctx context.Context, tagID uuid.UUID, target models.TagTarget) (*models.TagAssignment, apperrors.Error)
	CreateTagAssignment(ctx context.Context, a *models.TagAssignment) apperrors.Error

	// Portal access.
	GetPortalAccessByParty(ctx context.Context, partyID uuid.UUID) (*models.PortalAccess, apperrors.Error)
	CreatePortalAccess(ctx context.Context, p *models.PortalAccess) apperrors.Error
	UpdatePortalAccessUser(ctx context.Context, accessID, userID uuid.UUID) apperrors.Error

	// Waitlist entries and invoices.
	GetWaitlistEntry(ctx context.Context, tenantID, partyID, planID uuid.UUID) (*models.WaitlistEntry, apperrors.Error)
	CreateWaitlistEntry(ctx context.Context, e *models.WaitlistEntry) apperrors.Error
	GetInvoice(ctx context.Context, tenantID, partyID uuid.UUID, category models.InvoiceCategory) (*models.Invoice, apperrors.Error)
	CreateInvoice(ctx context.Context, inv *models.Invoice) apperrors.Error

	// Messaging.
	GetThreadBySubject(ctx context.Context, tenantID uuid.UUID, subject string) (*models.MessageThread, apperrors.Error)
	CreateThread(ctx context.Context, t *models.MessageThread, participants []models.ThreadParticipant, messages []models.Message) apperrors.Error
	GetDraftBySubject(ctx context.Context, tenantID uuid.UUID, subject string) (*models.Draft, apperrors.Error)
	CreateDraft(ctx context.Context, d *models.Draft) apperrors.Error

	Close(ctx context.Context)
}
