// Package resolver maps human-readable fixture handles (environment-qualified
// names, or zero-based fixture indexes) to the identifiers of records created
// earlier in the run. Records register themselves as they are built; lookups
// hit the in-run map first and fall back to a natural-key query against the
// store, which covers re-runs against an already-seeded database.
package resolver

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"github.com/pedigreehq/seedstock/internal/common/apperrors"
	"github.com/pedigreehq/seedstock/internal/seeder/db"
)

// Kind namespaces handles within a tenant. Party kinds resolve to party ids,
// the rest to entity ids.
type Kind string

const (
	KindAnimal       Kind = "animal"
	KindPlan         Kind = "breeding-plan"
	KindContact      Kind = "contact"
	KindContactParty Kind = "contact-party"
	KindOrganization Kind = "organization"
	KindOrgParty     Kind = "organization-party"
	KindShopperParty Kind = "shopper-party"
)

// ErrUnresolved marks a reference that matched nothing in-run or in-store.
// Callers skip the dependent record and continue; the run never aborts on it.
var ErrUnresolved apperrors.Error = apperrors.New("reference not resolved")

type Resolver struct {
	store db.Store
	ids   map[string]uuid.UUID
}

func New(store db.Store) *Resolver {
	return &Resolver{
		store: store,
		ids:   map[string]uuid.UUID{},
	}
}

func handleKey(tenantID uuid.UUID, kind Kind, handle string) string {
	return tenantID.String() + "|" + string(kind) + "|" + handle
}

// Register records a handle for the current run. Registering is idempotent
// and last-write-wins within a run; fixture data is trusted not to reuse a
// handle for two records.
func (r *Resolver) Register(tenantID uuid.UUID, kind Kind, handle string, id uuid.UUID) {
	r.ids[handleKey(tenantID, kind, handle)] = id
}

// RegisterIndex records the zero-based fixture-list position as a handle.
func (r *Resolver) RegisterIndex(tenantID uuid.UUID, kind Kind, index int, id uuid.UUID) {
	r.Register(tenantID, kind, strconv.Itoa(index), id)
}

// Resolve returns the id registered for the handle, falling back to a
// store lookup for kinds with a name-shaped natural key. Handles must be
// environment-qualified before calling.
func (r *Resolver) Resolve(ctx context.Context, tenantID uuid.UUID, kind Kind, handle string) (uuid.UUID, apperrors.Error) {
	if id, ok := r.ids[handleKey(tenantID, kind, handle)]; ok {
		return id, nil
	}
	return r.resolveFromStore(ctx, tenantID, kind, handle)
}

// ResolveIndex resolves a zero-based index handle. Index handles have no
// store fallback: they are only meaningful against the current catalogue
// ordering, which every run re-registers before dependents resolve them.
func (r *Resolver) ResolveIndex(ctx context.Context, tenantID uuid.UUID, kind Kind, index int) (uuid.UUID, apperrors.Error) {
	if id, ok := r.ids[handleKey(tenantID, kind, strconv.Itoa(index))]; ok {
		return id, nil
	}
	return uuid.Nil, ErrUnresolved.Msg("index handle not registered: " + string(kind) + "[" + strconv.Itoa(index) + "]")
}

func (r *Resolver) resolveFromStore(ctx context.Context, tenantID uuid.UUID, kind Kind, handle string) (uuid.UUID, apperrors.Error) {
	switch kind {
	case KindAnimal:
		id, err := r.store.FindAnimalIDByName(ctx, tenantID, handle)
		if err != nil {
			return uuid.Nil, ErrUnresolved.MsgErr("animal not resolved: "+handle, err)
		}
		r.Register(tenantID, kind, handle, id)
		return id, nil
	case KindPlan:
		plan, err := r.store.GetBreedingPlanByName(ctx, tenantID, handle)
		if err != nil {
			return uuid.Nil, ErrUnresolved.MsgErr("breeding plan not resolved: "+handle, err)
		}
		r.Register(tenantID, kind, handle, plan.PlanID)
		return plan.PlanID, nil
	case KindContact:
		c, err := r.store.GetContactByEmail(ctx, tenantID, handle)
		if err != nil {
			return uuid.Nil, ErrUnresolved.MsgErr("contact not resolved: "+handle, err)
		}
		r.Register(tenantID, kind, handle, c.ContactID)
		return c.ContactID, nil
	case KindContactParty:
		c, err := r.store.GetContactByEmail(ctx, tenantID, handle)
		if err != nil || !c.PartyID.Valid {
			return uuid.Nil, ErrUnresolved.Msg("contact party not resolved: " + handle)
		}
		r.Register(tenantID, kind, handle, c.PartyID.UUID)
		return c.PartyID.UUID, nil
	case KindOrganization:
		org, err := r.store.GetOrganizationByEmail(ctx, tenantID, handle)
		if err != nil {
			return uuid.Nil, ErrUnresolved.MsgErr("organization not resolved: "+handle, err)
		}
		r.Register(tenantID, kind, handle, org.OrgID)
		return org.OrgID, nil
	case KindOrgParty:
		org, err := r.store.GetOrganizationByEmail(ctx, tenantID, handle)
		if err != nil || !org.PartyID.Valid {
			return uuid.Nil, ErrUnresolved.Msg("organization party not resolved: " + handle)
		}
		r.Register(tenantID, kind, handle, org.PartyID.UUID)
		return org.PartyID.UUID, nil
	default:
		// Shopper parties carry no natural key in the store; they are only
		// resolvable in-run.
		return uuid.Nil, ErrUnresolved.Msg("no store fallback for handle: " + handle)
	}
}
