// Package fixtures defines the declarative seed catalogue: a tree of typed
// records keyed by tenant slug, with human-readable cross-references ("sire
// named X", "plan named Y", contact emails) resolved later by the builders.
// The catalogue is embedded YAML, parsed once, validated structurally on
// load, and treated as read-only afterwards.
package fixtures

type Catalogue struct {
	// TitleDefinitions are tenant-independent and seeded in the global
	// pre-pass before any tenant is processed.
	TitleDefinitions []TitleDefinitionDef `yaml:"titleDefinitions" validate:"dive"`
	// Shoppers are marketplace-only accounts with no tenant membership; a
	// per-tenant party is created lazily the first time a thread references
	// one.
	Shoppers []ShopperDef `yaml:"shoppers" validate:"dive"`
	Tenants  []TenantDef  `yaml:"tenants" validate:"required,min=1,dive"`
}

type TitleDefinitionDef struct {
	Species      string `yaml:"species" validate:"required"`
	Abbreviation string `yaml:"abbreviation" validate:"required"`
	Name         string `yaml:"name" validate:"required"`
}

type ShopperDef struct {
	Email    string `yaml:"email" validate:"required,email"`
	Name     string `yaml:"name" validate:"required"`
	Password string `yaml:"password" validate:"required"`
}

type TenantDef struct {
	Slug          string            `yaml:"slug" validate:"required"`
	DisplayName   string            `yaml:"displayName" validate:"required"`
	Theme         map[string]string `yaml:"theme"`
	Visibility    VisibilityDef     `yaml:"visibility"`
	Users         []UserDef         `yaml:"users" validate:"dive"`
	Organizations []OrganizationDef `yaml:"organizations" validate:"dive"`
	Contacts      []ContactDef      `yaml:"contacts" validate:"dive"`
	Animals       []AnimalDef       `yaml:"animals" validate:"dive"`
	BreedingPlans []BreedingPlanDef `yaml:"breedingPlans" validate:"dive"`
	Listings      []ListingDef      `yaml:"listings" validate:"dive"`
	Tags          []TagDef          `yaml:"tags" validate:"dive"`
	Portal        *PortalDef        `yaml:"portal"`
	Threads       []ThreadDef       `yaml:"threads" validate:"dive"`
	Drafts        []DraftDef        `yaml:"drafts" validate:"dive"`
}

// VisibilityDef is the tenant-level default visibility policy.
type VisibilityDef struct {
	ShowLineage       bool `yaml:"showLineage"`
	ShowHealthResults bool `yaml:"showHealthResults"`
	ShowGenetics      bool `yaml:"showGenetics"`
	ShowBreeder       bool `yaml:"showBreeder"`
}

type UserDef struct {
	Email         string `yaml:"email" validate:"required,email"`
	Name          string `yaml:"name" validate:"required"`
	Password      string `yaml:"password" validate:"required"`
	Role          string `yaml:"role" validate:"required,oneof=OWNER STAFF CLIENT VIEWER"`
	DefaultTenant bool   `yaml:"defaultTenant"`
}

type OrganizationDef struct {
	Name  string `yaml:"name" validate:"required"`
	Email string `yaml:"email" validate:"required,email"`
}

type ContactDef struct {
	Name     string       `yaml:"name" validate:"required"`
	Email    string       `yaml:"email" validate:"required,email"`
	Waitlist *WaitlistDef `yaml:"waitlist"`
	// Purchase marks a contact with purchase history; at most one GOODS
	// invoice is created per contact no matter how many purchases a fuller
	// model would imply.
	Purchase *PurchaseDef `yaml:"purchase"`
}

type WaitlistDef struct {
	Plan             string `yaml:"plan" validate:"required"`
	Status           string `yaml:"status" validate:"required,oneof=INQUIRY APPROVED DEPOSIT_PAID ALLOCATED"`
	Position         int    `yaml:"position"`
	DepositCents     int64  `yaml:"depositCents"`
	DepositPaidCents int64  `yaml:"depositPaidCents"`
}

type PurchaseDef struct {
	AmountCents int64 `yaml:"amountCents" validate:"required"`
}

type AnimalDef struct {
	Name    string `yaml:"name" validate:"required"`
	Species string `yaml:"species" validate:"required"`
	Sex     string `yaml:"sex" validate:"required,oneof=male female"`
	// Generation is the explicit lineage depth: 0 for founders, always
	// strictly greater than both parents' generations. The lineage sequencer
	// sorts on it.
	Generation int    `yaml:"generation" validate:"gte=0"`
	Breed      string `yaml:"breed"`
	BirthYear  int    `yaml:"birthYear" validate:"required"`
	Notes      string `yaml:"notes"`
	Status     string `yaml:"status"`
	// Sire and Dam are unqualified animal names within the same tenant.
	Sire         string            `yaml:"sire"`
	Dam          string            `yaml:"dam"`
	Genetics     GeneticsDef       `yaml:"genetics"`
	Privacy      map[string]bool   `yaml:"privacy"`
	Titles       []TitleAwardDef   `yaml:"titles" validate:"dive"`
	Competitions []CompetitionDef  `yaml:"competitions" validate:"dive"`
}

type GeneticsDef struct {
	CoatColor map[string]string `yaml:"coatColor"`
	CoatType  map[string]string `yaml:"coatType"`
	Physical  map[string]string `yaml:"physical"`
	EyeColor  map[string]string `yaml:"eyeColor"`
	Health    map[string]string `yaml:"health"`
}

type TitleAwardDef struct {
	Abbreviation string `yaml:"abbreviation" validate:"required"`
	Year         int    `yaml:"year" validate:"required"`
}

type CompetitionDef struct {
	Event     string `yaml:"event" validate:"required"`
	Placement string `yaml:"placement"`
	Year      int    `yaml:"year" validate:"required"`
}

type BreedingPlanDef struct {
	Name   string `yaml:"name" validate:"required"`
	Dam    string `yaml:"dam" validate:"required"`
	Sire   string `yaml:"sire" validate:"required"`
	Status string `yaml:"status" validate:"required,oneof=PLANNING COMMITTED"`
}

type ListingDef struct {
	Title  string `yaml:"title" validate:"required"`
	Status string `yaml:"status" validate:"required,oneof=DRAFT ACTIVE PAUSED"`
}

type TagDef struct {
	Module string `yaml:"module" validate:"required,oneof=contact organization animal breeding-plan waitlist-entry offspring-group offspring"`
	Name   string `yaml:"name" validate:"required"`
	// Targets are handles whose meaning depends on the module: contact or
	// organization emails, animal names, breeding plan names.
	Targets []string `yaml:"targets" validate:"min=1"`
}

// PortalDef enables portal access for the tenant's first contact and first
// organization (by declared index).
type PortalDef struct {
	Password string `yaml:"password" validate:"required"`
}

type ThreadDef struct {
	Subject     string       `yaml:"subject" validate:"required"`
	InquiryType string       `yaml:"inquiryType" validate:"required"`
	Flagged     bool         `yaml:"flagged"`
	Archived    bool         `yaml:"archived"`
	From        FromDef      `yaml:"from"`
	Messages    []MessageDef `yaml:"messages" validate:"min=1,dive"`
}

// FromDef names the external party of a thread: exactly one of Shopper (a
// marketplace account email) or Contact (a tenant contact email) is set.
type FromDef struct {
	Shopper string `yaml:"shopper" validate:"required_without=Contact,excluded_with=Contact"`
	Contact string `yaml:"contact"`
}

// MessageDef timestamps are declared relative to run time, which keeps the
// fixture data meaningful regardless of when seeding happens.
type MessageDef struct {
	Direction string `yaml:"direction" validate:"required,oneof=inbound outbound"`
	DaysAgo   int    `yaml:"daysAgo" validate:"gte=0"`
	HoursAgo  int    `yaml:"hoursAgo" validate:"gte=0"`
	Body      string `yaml:"body" validate:"required"`
}

type DraftDef struct {
	// To is an optional contact email; empty means an unaddressed draft.
	To      string `yaml:"to"`
	Channel string `yaml:"channel" validate:"required,oneof=email dm"`
	Subject string `yaml:"subject" validate:"required"`
	Body    string `yaml:"body" validate:"required"`
}
