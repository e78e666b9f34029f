// Package memory provides an in-memory implementation of db.Store for tests
// and dry runs. Semantics mirror the postgresql implementation: finders
// return ErrNotFound, creators return ErrAlreadyExists on a taken natural
// key, and multi-record creates are all-or-nothing. Failpoints can be armed
// to simulate a persistence error in the middle of an atomic group.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/pedigreehq/seedstock/internal/common/apperrors"
	"github.com/pedigreehq/seedstock/internal/seeder/db/dberror"
	"github.com/pedigreehq/seedstock/internal/seeder/db/models"
)

type Store struct {
	mu sync.Mutex

	tenants     map[string]*models.Tenant // slug
	users       map[string]*models.User   // email
	memberships map[string]*models.Membership
	parties     map[uuid.UUID]*models.Party
	orgs        map[string]*models.Organization // tenant|email
	contacts    map[string]*models.Contact      // tenant|email
	animals     map[string]*models.Animal       // tenant|name|species
	genetics    map[uuid.UUID]*models.AnimalGenetics
	privacy     map[uuid.UUID]*models.AnimalPrivacy
	titleDefs   map[string]*models.TitleDefinition // species|abbr
	titles      map[string]*models.AnimalTitle
	compEntries map[string]*models.CompetitionEntry
	plans       map[string]*models.BreedingPlan // tenant|name
	listings    map[string]*models.Listing      // tenant|title
	tags        map[string]*models.Tag          // tenant|module|name
	assignments map[string]*models.TagAssignment
	portal      map[uuid.UUID]*models.PortalAccess // party
	waitlist    map[string]*models.WaitlistEntry
	invoices    map[string]*models.Invoice
	threads     map[string]*models.MessageThread // tenant|subject
	participant map[string]*models.ThreadParticipant
	messages    map[uuid.UUID]*models.Message
	drafts      map[string]*models.Draft // tenant|subject

	created    map[string]int
	failpoints map[string]int
}

func New() *Store {
	return &Store{
		tenants:     map[string]*models.Tenant{},
		users:       map[string]*models.User{},
		memberships: map[string]*models.Membership{},
		parties:     map[uuid.UUID]*models.Party{},
		orgs:        map[string]*models.Organization{},
		contacts:    map[string]*models.Contact{},
		animals:     map[string]*models.Animal{},
		genetics:    map[uuid.UUID]*models.AnimalGenetics{},
		privacy:     map[uuid.UUID]*models.AnimalPrivacy{},
		titleDefs:   map[string]*models.TitleDefinition{},
		titles:      map[string]*models.AnimalTitle{},
		compEntries: map[string]*models.CompetitionEntry{},
		plans:       map[string]*models.BreedingPlan{},
		listings:    map[string]*models.Listing{},
		tags:        map[string]*models.Tag{},
		assignments: map[string]*models.TagAssignment{},
		portal:      map[uuid.UUID]*models.PortalAccess{},
		waitlist:    map[string]*models.WaitlistEntry{},
		invoices:    map[string]*models.Invoice{},
		threads:     map[string]*models.MessageThread{},
		participant: map[string]*models.ThreadParticipant{},
		messages:    map[uuid.UUID]*models.Message{},
		drafts:      map[string]*models.Draft{},
		created:     map[string]int{},
		failpoints:  map[string]int{},
	}
}

func key(parts ...string) string {
	k := parts[0]
	for _, p := range parts[1:] {
		k += "|" + p
	}
	return k
}

// ArmFailpoint makes the named internal step fail n times. Used by atomicity
// tests, e.g. ArmFailpoint("animal.genetics", 1) fails the genetics insert of
// the next animal create.
func (s *Store) ArmFailpoint(name string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failpoints[name] = n
}

func (s *Store) hitFailpoint(name string) apperrors.Error {
	if n := s.failpoints[name]; n > 0 {
		s.failpoints[name] = n - 1
		return dberror.ErrDatabase.Err(fmt.Errorf("injected failure at %s", name))
	}
	return nil
}

// Counts returns how many records of each kind have been created since the
// store was constructed. ResetCounts starts a fresh tally between runs.
func (s *Store) Counts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.created))
	for k, v := range s.created {
		out[k] = v
	}
	return out
}

func (s *Store) ResetCounts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = map[string]int{}
}

// TotalCreated sums Counts across kinds.
func (s *Store) TotalCreated() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, v := range s.created {
		total += v
	}
	return total
}

func (s *Store) Close(ctx context.Context) {}

// --- tenants ---

func (s *Store) CreateTenant(ctx context.Context, t *models.Tenant) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tenants[t.Slug]; ok {
		return dberror.ErrAlreadyExists.Msg("tenant already exists")
	}
	if t.TenantID == uuid.Nil {
		t.TenantID = uuid.New()
	}
	cp := *t
	s.tenants[t.Slug] = &cp
	s.created["tenant"]++
	return nil
}

func (s *Store) GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tenants[slug]
	if !ok {
		return nil, dberror.ErrNotFound.Msg("tenant not found")
	}
	cp := *t
	return &cp, nil
}

func (s *Store) UpdateTenantSettings(ctx context.Context, tenantID uuid.UUID, theme map[string]string, visibility models.VisibilityPolicy) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tenants {
		if t.TenantID == tenantID {
			t.Theme = theme
			t.Visibility = visibility
			return nil
		}
	}
	return dberror.ErrNotFound.Msg("tenant not found for settings update")
}

// --- users and memberships ---

func (s *Store) CreateUser(ctx context.Context, u *models.User) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Email]; ok {
		return dberror.ErrAlreadyExists.Msg("user already exists")
	}
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	cp := *u
	s.users[u.Email] = &cp
	s.created["user"]++
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, dberror.ErrNotFound.Msg("user not found")
	}
	cp := *u
	return &cp, nil
}

func (s *Store) CreateMembership(ctx context.Context, m *models.Membership) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(m.UserID.String(), m.TenantID.String())
	if _, ok := s.memberships[k]; ok {
		return dberror.ErrAlreadyExists.Msg("membership already exists")
	}
	if m.MembershipID == uuid.Nil {
		m.MembershipID = uuid.New()
	}
	cp := *m
	s.memberships[k] = &cp
	s.created["membership"]++
	return nil
}

func (s *Store) GetMembership(ctx context.Context, userID, tenantID uuid.UUID) (*models.Membership, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.memberships[key(userID.String(), tenantID.String())]
	if !ok {
		return nil, dberror.ErrNotFound.Msg("membership not found")
	}
	cp := *m
	return &cp, nil
}

// --- parties, organizations, contacts ---

func (s *Store) CreateParty(ctx context.Context, p *models.Party) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createPartyLocked(p)
}

func (s *Store) createPartyLocked(p *models.Party) apperrors.Error {
	if p.PartyID == uuid.Nil {
		p.PartyID = uuid.New()
	}
	cp := *p
	s.parties[p.PartyID] = &cp
	s.created["party"]++
	return nil
}

func (s *Store) CreateOrganization(ctx context.Context, org *models.Organization) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(org.TenantID.String(), org.Email)
	if _, ok := s.orgs[k]; ok {
		return dberror.ErrAlreadyExists.Msg("organization already exists")
	}
	if err := s.hitFailpoint("organization.create"); err != nil {
		return err
	}
	party := models.Party{TenantID: org.TenantID, Kind: models.PartyOrganization}
	if err := s.createPartyLocked(&party); err != nil {
		return err
	}
	if org.OrgID == uuid.Nil {
		org.OrgID = uuid.New()
	}
	org.PartyID = uuid.NullUUID{UUID: party.PartyID, Valid: true}
	cp := *org
	s.orgs[k] = &cp
	s.created["organization"]++
	return nil
}

func (s *Store) GetOrganizationByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*models.Organization, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	org, ok := s.orgs[key(tenantID.String(), email)]
	if !ok {
		return nil, dberror.ErrNotFound.Msg("organization not found")
	}
	cp := *org
	return &cp, nil
}

func (s *Store) CreateContact(ctx context.Context, c *models.Contact) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(c.TenantID.String(), c.Email)
	if _, ok := s.contacts[k]; ok {
		return dberror.ErrAlreadyExists.Msg("contact already exists")
	}
	if err := s.hitFailpoint("contact.create"); err != nil {
		return err
	}
	party := models.Party{TenantID: c.TenantID, Kind: models.PartyContact}
	if err := s.createPartyLocked(&party); err != nil {
		return err
	}
	if c.ContactID == uuid.Nil {
		c.ContactID = uuid.New()
	}
	c.PartyID = uuid.NullUUID{UUID: party.PartyID, Valid: true}
	cp := *c
	s.contacts[k] = &cp
	s.created["contact"]++
	return nil
}

func (s *Store) GetContactByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*models.Contact, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contacts[key(tenantID.String(), email)]
	if !ok {
		return nil, dberror.ErrNotFound.Msg("contact not found")
	}
	cp := *c
	return &cp, nil
}

func (s *Store) BackfillContactParty(ctx context.Context, tenantID, contactID uuid.UUID) (uuid.UUID, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.contacts {
		if c.ContactID != contactID || c.TenantID != tenantID {
			continue
		}
		if c.PartyID.Valid {
			return uuid.Nil, dberror.ErrNotFound.Msg("party already linked")
		}
		if err := s.hitFailpoint("contact.backfill"); err != nil {
			return uuid.Nil, err
		}
		party := models.Party{TenantID: tenantID, Kind: models.PartyContact}
		if err := s.createPartyLocked(&party); err != nil {
			return uuid.Nil, err
		}
		c.PartyID = uuid.NullUUID{UUID: party.PartyID, Valid: true}
		return party.PartyID, nil
	}
	return uuid.Nil, dberror.ErrNotFound.Msg("contact not found")
}

// PutContact installs a contact row as-is, bypassing party creation. Test
// helper beyond the db.Store surface for legacy-shaped rows.
func (s *Store) PutContact(c *models.Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ContactID == uuid.Nil {
		c.ContactID = uuid.New()
	}
	cp := *c
	s.contacts[key(c.TenantID.String(), c.Email)] = &cp
}

// --- animals ---

func (s *Store) CreateAnimal(ctx context.Context, a *models.Animal, g *models.AnimalGenetics, p *models.AnimalPrivacy) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(a.TenantID.String(), a.Name, a.Species)
	if _, ok := s.animals[k]; ok {
		return dberror.ErrAlreadyExists.Msg("animal already exists")
	}
	// Atomic group: nothing is stored until every step has passed.
	if err := s.hitFailpoint("animal.create"); err != nil {
		return err
	}
	if a.AnimalID == uuid.Nil {
		a.AnimalID = uuid.New()
	}
	if err := s.hitFailpoint("animal.genetics"); err != nil {
		return err
	}
	if g.GeneticsID == uuid.Nil {
		g.GeneticsID = uuid.New()
	}
	g.AnimalID = a.AnimalID
	if err := s.hitFailpoint("animal.privacy"); err != nil {
		return err
	}
	if p.PrivacyID == uuid.Nil {
		p.PrivacyID = uuid.New()
	}
	p.AnimalID = a.AnimalID

	acp, gcp, pcp := *a, *g, *p
	s.animals[k] = &acp
	s.genetics[a.AnimalID] = &gcp
	s.privacy[a.AnimalID] = &pcp
	s.created["animal"]++
	s.created["animal_genetics"]++
	s.created["animal_privacy"]++
	return nil
}

func (s *Store) GetAnimalByNaturalKey(ctx context.Context, tenantID uuid.UUID, name, species string) (*models.Animal, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.animals[key(tenantID.String(), name, species)]
	if !ok {
		return nil, dberror.ErrNotFound.Msg("animal not found")
	}
	cp := *a
	return &cp, nil
}

func (s *Store) FindAnimalIDByName(ctx context.Context, tenantID uuid.UUID, name string) (uuid.UUID, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.animals {
		if a.TenantID == tenantID && a.Name == name {
			return a.AnimalID, nil
		}
	}
	return uuid.Nil, dberror.ErrNotFound.Msg("animal not found")
}

func (s *Store) GetAnimalPrivacy(ctx context.Context, animalID uuid.UUID) (*models.AnimalPrivacy, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.privacy[animalID]
	if !ok {
		return nil, dberror.ErrNotFound.Msg("animal privacy not found")
	}
	cp := *p
	return &cp, nil
}

// GetAnimalGenetics is a test helper beyond the db.Store surface.
func (s *Store) GetAnimalGenetics(animalID uuid.UUID) (*models.AnimalGenetics, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.genetics[animalID]
	if !ok {
		return nil, false
	}
	cp := *g
	return &cp, true
}

// --- titles ---

func (s *Store) CreateTitleDefinition(ctx context.Context, d *models.TitleDefinition) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(d.Species, d.Abbreviation)
	if _, ok := s.titleDefs[k]; ok {
		return dberror.ErrAlreadyExists.Msg("title definition already exists")
	}
	if d.DefinitionID == uuid.Nil {
		d.DefinitionID = uuid.New()
	}
	cp := *d
	s.titleDefs[k] = &cp
	s.created["title_definition"]++
	return nil
}

func (s *Store) GetTitleDefinition(ctx context.Context, species, abbreviation string) (*models.TitleDefinition, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.titleDefs[key(species, abbreviation)]
	if !ok {
		return nil, dberror.ErrNotFound.Msg("title definition not found")
	}
	cp := *d
	return &cp, nil
}

func (s *Store) CreateAnimalTitle(ctx context.Context, t *models.AnimalTitle) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(t.AnimalID.String(), t.DefinitionID.String())
	if _, ok := s.titles[k]; ok {
		return dberror.ErrAlreadyExists.Msg("animal title already exists")
	}
	if t.TitleID == uuid.Nil {
		t.TitleID = uuid.New()
	}
	cp := *t
	s.titles[k] = &cp
	s.created["animal_title"]++
	return nil
}

func (s *Store) GetAnimalTitle(ctx context.Context, animalID, definitionID uuid.UUID) (*models.AnimalTitle, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.titles[key(animalID.String(), definitionID.String())]
	if !ok {
		return nil, dberror.ErrNotFound.Msg("animal title not found")
	}
	cp := *t
	return &cp, nil
}

func (s *Store) CreateCompetitionEntry(ctx context.Context, e *models.CompetitionEntry) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(e.AnimalID.String(), e.Event)
	if _, ok := s.compEntries[k]; ok {
		return dberror.ErrAlreadyExists.Msg("competition entry already exists")
	}
	if e.EntryID == uuid.Nil {
		e.EntryID = uuid.New()
	}
	cp := *e
	s.compEntries[k] = &cp
	s.created["competition_entry"]++
	return nil
}

func (s *Store) GetCompetitionEntry(ctx context.Context, animalID uuid.UUID, event string) (*models.CompetitionEntry, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.compEntries[key(animalID.String(), event)]
	if !ok {
		return nil, dberror.ErrNotFound.Msg("competition entry not found")
	}
	cp := *e
	return &cp, nil
}

// --- breeding plans ---

func (s *Store) CreateBreedingPlan(ctx context.Context, p *models.BreedingPlan) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(p.TenantID.String(), p.Name)
	if _, ok := s.plans[k]; ok {
		return dberror.ErrAlreadyExists.Msg("breeding plan already exists")
	}
	if p.PlanID == uuid.Nil {
		p.PlanID = uuid.New()
	}
	cp := *p
	s.plans[k] = &cp
	s.created["breeding_plan"]++
	return nil
}

func (s *Store) GetBreedingPlanByName(ctx context.Context, tenantID uuid.UUID, name string) (*models.BreedingPlan, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plans[key(tenantID.String(), name)]
	if !ok {
		return nil, dberror.ErrNotFound.Msg("breeding plan not found")
	}
	cp := *p
	return &cp, nil
}

// --- listings ---

func (s *Store) CreateListing(ctx context.Context, l *models.Listing) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(l.TenantID.String(), l.Title)
	if _, ok := s.listings[k]; ok {
		return dberror.ErrAlreadyExists.Msg("listing already exists")
	}
	if l.ListingID == uuid.Nil {
		l.ListingID = uuid.New()
	}
	cp := *l
	s.listings[k] = &cp
	s.created["listing"]++
	return nil
}

func (s *Store) GetListingByTitle(ctx context.Context, tenantID uuid.UUID, title string) (*models.Listing, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.listings[key(tenantID.String(), title)]
	if !ok {
		return nil, dberror.ErrNotFound.Msg("listing not found")
	}
	cp := *l
	return &cp, nil
}

// --- tags ---

func (s *Store) CreateTag(ctx context.Context, t *models.Tag) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(t.TenantID.String(), string(t.Module), t.Name)
	if _, ok := s.tags[k]; ok {
		return dberror.ErrAlreadyExists.Msg("tag already exists")
	}
	if t.TagID == uuid.Nil {
		t.TagID = uuid.New()
	}
	cp := *t
	s.tags[k] = &cp
	s.created["tag"]++
	return nil
}

func (s *Store) GetTag(ctx context.Context, tenantID uuid.UUID, module models.TagModule, name string) (*models.Tag, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tags[key(tenantID.String(), string(module), name)]
	if !ok {
		return nil, dberror.ErrNotFound.Msg("tag not found")
	}
	cp := *t
	return &cp, nil
}

func (s *Store) CreateTagAssignment(ctx context.Context, a *models.TagAssignment) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(a.TagID.String(), a.Target.Kind, a.Target.ID.String())
	if _, ok := s.assignments[k]; ok {
		return dberror.ErrAlreadyExists.Msg("tag assignment already exists")
	}
	if a.AssignmentID == uuid.Nil {
		a.AssignmentID = uuid.New()
	}
	cp := *a
	s.assignments[k] = &cp
	s.created["tag_assignment"]++
	return nil
}

func (s *Store) GetTagAssignment(ctx context.Context, tagID uuid.UUID, target models.TagTarget) (*models.TagAssignment, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assignments[key(tagID.String(), target.Kind, target.ID.String())]
	if !ok {
		return nil, dberror.ErrNotFound.Msg("tag assignment not found")
	}
	cp := *a
	return &cp, nil
}

// --- portal access ---

func (s *Store) CreatePortalAccess(ctx context.Context, p *models.PortalAccess) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.portal[p.PartyID]; ok {
		return dberror.ErrAlreadyExists.Msg("portal access already exists")
	}
	if p.AccessID == uuid.Nil {
		p.AccessID = uuid.New()
	}
	cp := *p
	s.portal[p.PartyID] = &cp
	s.created["portal_access"]++
	return nil
}

func (s *Store) GetPortalAccessByParty(ctx context.Context, partyID uuid.UUID) (*models.PortalAccess, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.portal[partyID]
	if !ok {
		return nil, dberror.ErrNotFound.Msg("portal access not found")
	}
	cp := *p
	return &cp, nil
}

func (s *Store) UpdatePortalAccessUser(ctx context.Context, accessID, userID uuid.UUID) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.portal {
		if p.AccessID == accessID && !p.UserID.Valid {
			p.UserID = uuid.NullUUID{UUID: userID, Valid: true}
			return nil
		}
	}
	return dberror.ErrNotFound.Msg("portal access not found or user already linked")
}

// --- waitlist and invoices ---

func (s *Store) CreateWaitlistEntry(ctx context.Context, e *models.WaitlistEntry) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(e.TenantID.String(), e.PartyID.String(), e.PlanID.String())
	if _, ok := s.waitlist[k]; ok {
		return dberror.ErrAlreadyExists.Msg("waitlist entry already exists")
	}
	if e.EntryID == uuid.Nil {
		e.EntryID = uuid.New()
	}
	cp := *e
	s.waitlist[k] = &cp
	s.created["waitlist_entry"]++
	return nil
}

func (s *Store) GetWaitlistEntry(ctx context.Context, tenantID, partyID, planID uuid.UUID) (*models.WaitlistEntry, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.waitlist[key(tenantID.String(), partyID.String(), planID.String())]
	if !ok {
		return nil, dberror.ErrNotFound.Msg("waitlist entry not found")
	}
	cp := *e
	return &cp, nil
}

func (s *Store) CreateInvoice(ctx context.Context, inv *models.Invoice) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(inv.TenantID.String(), inv.PartyID.String(), string(inv.Category))
	if _, ok := s.invoices[k]; ok {
		return dberror.ErrAlreadyExists.Msg("invoice already exists")
	}
	if inv.InvoiceID == uuid.Nil {
		inv.InvoiceID = uuid.New()
	}
	cp := *inv
	s.invoices[k] = &cp
	s.created["invoice"]++
	return nil
}

func (s *Store) GetInvoice(ctx context.Context, tenantID, partyID uuid.UUID, category models.InvoiceCategory) (*models.Invoice, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invoices[key(tenantID.String(), partyID.String(), string(category))]
	if !ok {
		return nil, dberror.ErrNotFound.Msg("invoice not found")
	}
	cp := *inv
	return &cp, nil
}

// --- messaging ---

func (s *Store) CreateThread(ctx context.Context, t *models.MessageThread, participants []models.ThreadParticipant, messages []models.Message) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(t.TenantID.String(), t.Subject)
	if _, ok := s.threads[k]; ok {
		return dberror.ErrAlreadyExists.Msg("thread already exists")
	}
	if err := s.hitFailpoint("thread.create"); err != nil {
		return err
	}
	if t.ThreadID == uuid.Nil {
		t.ThreadID = uuid.New()
	}
	if err := s.hitFailpoint("thread.messages"); err != nil {
		return err
	}

	tcp := *t
	s.threads[k] = &tcp
	s.created["thread"]++
	for i := range participants {
		p := participants[i]
		if p.ParticipantID == uuid.Nil {
			p.ParticipantID = uuid.New()
		}
		p.ThreadID = t.ThreadID
		s.participant[key(t.ThreadID.String(), p.PartyID.String())] = &p
		s.created["thread_participant"]++
	}
	for i := range messages {
		m := messages[i]
		if m.MessageID == uuid.Nil {
			m.MessageID = uuid.New()
		}
		m.ThreadID = t.ThreadID
		s.messages[m.MessageID] = &m
		s.created["message"]++
	}
	return nil
}

func (s *Store) GetThreadBySubject(ctx context.Context, tenantID uuid.UUID, subject string) (*models.MessageThread, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.threads[key(tenantID.String(), subject)]
	if !ok {
		return nil, dberror.ErrNotFound.Msg("thread not found")
	}
	cp := *t
	return &cp, nil
}

// ThreadMessages is a test helper beyond the db.Store surface.
func (s *Store) ThreadMessages(threadID uuid.UUID) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Message
	for _, m := range s.messages {
		if m.ThreadID == threadID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SentAt.Before(out[j].SentAt) })
	return out
}

func (s *Store) CreateDraft(ctx context.Context, d *models.Draft) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(d.TenantID.String(), d.Subject)
	if _, ok := s.drafts[k]; ok {
		return dberror.ErrAlreadyExists.Msg("draft already exists")
	}
	if d.DraftID == uuid.Nil {
		d.DraftID = uuid.New()
	}
	cp := *d
	s.drafts[k] = &cp
	s.created["draft"]++
	return nil
}

func (s *Store) GetDraftBySubject(ctx context.Context, tenantID uuid.UUID, subject string) (*models.Draft, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[key(tenantID.String(), subject)]
	if !ok {
		return nil, dberror.ErrNotFound.Msg("draft not found")
	}
	cp := *d
	return &cp, nil
}
