// Package models defines the persisted entities of the seeded graph. Every
// entity carries a surrogate uuid plus the natural key used for idempotence
// (tenant-scoped unless noted). Fields map 1:1 to columns; JSONB payloads are
// typed structs serialized at the store boundary.
package models

import (
	"time"

	"github.com/google/uuid"
)

type MemberRole string

const (
	RoleOwner  MemberRole = "OWNER"
	RoleStaff  MemberRole = "STAFF"
	RoleClient MemberRole = "CLIENT"
	RoleViewer MemberRole = "VIEWER"
)

type PartyKind string

const (
	PartyContact      PartyKind = "contact"
	PartyOrganization PartyKind = "organization"
	PartyShopper      PartyKind = "shopper"
)

type PlanStatus string

const (
	PlanPlanning  PlanStatus = "PLANNING"
	PlanCommitted PlanStatus = "COMMITTED"
)

type ListingStatus string

const (
	ListingDraft  ListingStatus = "DRAFT"
	ListingActive ListingStatus = "ACTIVE"
	ListingPaused ListingStatus = "PAUSED"
)

type TagModule string

const (
	ModuleContact        TagModule = "contact"
	ModuleOrganization   TagModule = "organization"
	ModuleAnimal         TagModule = "animal"
	ModuleBreedingPlan   TagModule = "breeding-plan"
	ModuleWaitlistEntry  TagModule = "waitlist-entry"
	ModuleOffspringGroup TagModule = "offspring-group"
	ModuleOffspring      TagModule = "offspring"
)

type PortalStatus string

const (
	PortalInvited PortalStatus = "INVITED"
	PortalActive  PortalStatus = "ACTIVE"
)

type WaitlistStatus string

const (
	WaitlistInquiry     WaitlistStatus = "INQUIRY"
	WaitlistApproved    WaitlistStatus = "APPROVED"
	WaitlistDepositPaid WaitlistStatus = "DEPOSIT_PAID"
	WaitlistAllocated   WaitlistStatus = "ALLOCATED"
)

type InvoiceCategory string

const (
	InvoiceDeposit InvoiceCategory = "DEPOSIT"
	InvoiceGoods   InvoiceCategory = "GOODS"
)

type InvoiceStatus string

const (
	InvoicePaid   InvoiceStatus = "PAID"
	InvoiceUnpaid InvoiceStatus = "UNPAID"
)

type DraftChannel string

const (
	ChannelEmail DraftChannel = "email"
	ChannelDM    DraftChannel = "dm"
)

type MessageDirection string

const (
	DirectionInbound  MessageDirection = "inbound"
	DirectionOutbound MessageDirection = "outbound"
)

// VisibilityPolicy controls what a cross-tenant viewer may see. Stored as
// JSONB both as the tenant-level default and per animal.
type VisibilityPolicy struct {
	ShowLineage       bool `json:"showLineage"`
	ShowHealthResults bool `json:"showHealthResults"`
	ShowGenetics      bool `json:"showGenetics"`
	ShowBreeder       bool `json:"showBreeder"`
}

// Tenant natural key: slug.
type Tenant struct {
	TenantID    uuid.UUID
	Slug        string
	DisplayName string
	Theme       map[string]string
	Visibility  VisibilityPolicy
}

// User natural key: email (global, not tenant-scoped).
type User struct {
	UserID          uuid.UUID
	Email           string
	Name            string
	PasswordHash    string
	DefaultTenantID uuid.NullUUID
}

// Membership natural key: (user, tenant).
type Membership struct {
	MembershipID uuid.UUID
	UserID       uuid.UUID
	TenantID     uuid.UUID
	Role         MemberRole
}

// Party is the generic addressable entity behind contacts, organizations and
// marketplace shoppers; tags, messages and portal access attach to it.
type Party struct {
	PartyID  uuid.UUID
	TenantID uuid.UUID
	Kind     PartyKind
}

// Organization natural key: (tenant, email).
type Organization struct {
	OrgID    uuid.UUID
	TenantID uuid.UUID
	Name     string
	Email    string
	PartyID  uuid.NullUUID
}

// Contact natural key: (tenant, email). PartyID is nullable only to admit the
// documented backfill of rows created before parties existed.
type Contact struct {
	ContactID uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Email     string
	PartyID   uuid.NullUUID
}

// Animal natural key: (tenant, name, species).
type Animal struct {
	AnimalID  uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Species   string
	Sex       string
	Breed     string
	BirthDate time.Time
	Notes     string
	Status    string
	SireID    uuid.NullUUID
	DamID     uuid.NullUUID
}

// GeneticsProfile groups per-locus genotype pairs by category. Serialized as
// one JSONB document.
type GeneticsProfile struct {
	CoatColor map[string]string `json:"coatColor,omitempty"`
	CoatType  map[string]string `json:"coatType,omitempty"`
	Physical  map[string]string `json:"physical,omitempty"`
	EyeColor  map[string]string `json:"eyeColor,omitempty"`
	Health    map[string]string `json:"health,omitempty"`
}

// AnimalGenetics is 1:1 with Animal, created in the same transaction.
type AnimalGenetics struct {
	GeneticsID uuid.UUID
	AnimalID   uuid.UUID
	Profile    GeneticsProfile
}

// AnimalPrivacy is 1:1 with Animal, created in the same transaction.
type AnimalPrivacy struct {
	PrivacyID uuid.UUID
	AnimalID  uuid.UUID
	Policy    VisibilityPolicy
}

// TitleDefinition natural key: (species, abbreviation). Tenant-independent.
type TitleDefinition struct {
	DefinitionID uuid.UUID
	Species      string
	Abbreviation string
	Name         string
}

// AnimalTitle natural key: (animal, definition).
type AnimalTitle struct {
	TitleID      uuid.UUID
	AnimalID     uuid.UUID
	DefinitionID uuid.UUID
	EarnedAt     time.Time
}

// CompetitionEntry natural key: (animal, event).
type CompetitionEntry struct {
	EntryID   uuid.UUID
	AnimalID  uuid.UUID
	Event     string
	Placement string
	EnteredAt time.Time
}

// BreedingPlan natural key: (tenant, name).
type BreedingPlan struct {
	PlanID      uuid.UUID
	TenantID    uuid.UUID
	Name        string
	DamID       uuid.UUID
	SireID      uuid.UUID
	Status      PlanStatus
	CommittedAt *time.Time
}

// Listing natural key: (tenant, title).
type Listing struct {
	ListingID   uuid.UUID
	TenantID    uuid.UUID
	Title       string
	Status      ListingStatus
	PublishedAt *time.Time
}

// Tag natural key: (tenant, module, name).
type Tag struct {
	TagID    uuid.UUID
	TenantID uuid.UUID
	Module   TagModule
	Name     string
}

// TagTarget is the tagged union of things a tag can attach to: party-backed
// modules carry a party id, the rest a direct entity id.
type TagTarget struct {
	Kind string
	ID   uuid.UUID
}

const (
	TargetParty  = "party"
	TargetEntity = "entity"
)

// TagAssignment natural key: (tag, target kind, target id).
type TagAssignment struct {
	AssignmentID uuid.UUID
	TagID        uuid.UUID
	Target       TagTarget
}

// PortalAccess natural key: party (at most one per party, ever).
type PortalAccess struct {
	AccessID    uuid.UUID
	TenantID    uuid.UUID
	PartyID     uuid.UUID
	Status      PortalStatus
	UserID      uuid.NullUUID
	InviteToken string
}

// WaitlistEntry natural key: (tenant, party, plan).
type WaitlistEntry struct {
	EntryID          uuid.UUID
	TenantID         uuid.UUID
	PartyID          uuid.UUID
	PlanID           uuid.UUID
	Position         int
	Status           WaitlistStatus
	DepositCents     int64
	DepositPaidCents int64
}

// Invoice natural key: (tenant, party, category). One lifetime DEPOSIT and
// one GOODS invoice per contact, regardless of how many fixture events would
// imply more.
type Invoice struct {
	InvoiceID   uuid.UUID
	TenantID    uuid.UUID
	PartyID     uuid.UUID
	Category    InvoiceCategory
	Status      InvoiceStatus
	AmountCents int64
	IssuedAt    time.Time
	DueAt       *time.Time
	PaidAt      *time.Time
}

// MessageThread natural key: (tenant, subject).
type MessageThread struct {
	ThreadID      uuid.UUID
	TenantID      uuid.UUID
	Subject       string
	InquiryType   string
	Flagged       bool
	Archived      bool
	LastMessageAt time.Time
}

// ThreadParticipant natural key: (thread, party). Exactly two per thread.
type ThreadParticipant struct {
	ParticipantID uuid.UUID
	ThreadID      uuid.UUID
	PartyID       uuid.UUID
}

type Message struct {
	MessageID     uuid.UUID
	ThreadID      uuid.UUID
	SenderPartyID uuid.UUID
	Body          string
	SentAt        time.Time
}

// Draft natural key: (tenant, subject).
type Draft struct {
	DraftID          uuid.UUID
	TenantID         uuid.UUID
	RecipientPartyID uuid.NullUUID
	Channel          DraftChannel
	Subject          string
	Body             string
}
