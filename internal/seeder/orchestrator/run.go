package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pedigreehq/seedstock/internal/common/apperrors"
	"github.com/pedigreehq/seedstock/internal/seeder/builders"
	"github.com/pedigreehq/seedstock/internal/seeder/db"
	"github.com/pedigreehq/seedstock/internal/seeder/db/models"
	"github.com/pedigreehq/seedstock/internal/seeder/envqual"
	"github.com/pedigreehq/seedstock/internal/seeder/fixtures"
	"github.com/pedigreehq/seedstock/internal/seeder/lineage"
	"github.com/pedigreehq/seedstock/internal/seeder/resolver"
)

var ErrSeedFailed apperrors.Error = apperrors.New("seeding run failed")

// record folds one builder outcome into a tally. Unresolved references are
// already logged by the builder and never abort anything; any other error
// propagates so the caller can abort the tenant.
func record(t *Tally, o builders.Outcome, err apperrors.Error) apperrors.Error {
	switch o {
	case builders.OutcomeCreated:
		t.Created++
	case builders.OutcomeExisted:
		t.Existed++
	default:
		t.Skipped++
	}
	if err != nil && errors.Is(err, resolver.ErrUnresolved) {
		return nil
	}
	return err
}

// Run seeds the whole catalogue against the store. The global pre-pass (title
// definitions, shoppers) is fatal on failure; after it, tenants are processed
// sequentially and one tenant's failure is recorded and does not stop the
// others.
func Run(ctx context.Context, store db.Store, env envqual.Environment, cat *fixtures.Catalogue, now time.Time) (*RunReport, apperrors.Error) {
	report := newRunReport(env, now)
	res := resolver.New(store)

	// Global pre-pass. The builder context carries the zero tenant id: title
	// definitions and shoppers are tenant-independent.
	global := &builders.Context{Env: env, Store: store, Resolver: res, Now: now}
	for _, def := range cat.TitleDefinitions {
		_, o, err := builders.TitleDefinition(ctx, global, def)
		if err := record(report.globalTally("title-definitions"), o, err); err != nil {
			return report, err
		}
	}
	for _, def := range cat.Shoppers {
		_, o, err := builders.Shopper(ctx, global, def)
		if err := record(report.globalTally("shoppers"), o, err); err != nil {
			return report, err
		}
	}

	for i := range cat.Tenants {
		def := &cat.Tenants[i]
		tr := report.newTenant(def.Slug)
		if err := runTenant(ctx, store, env, res, def, now, tr); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("tenant", def.Slug).Msg("tenant seeding failed")
			tr.Err = err
		}
	}

	if report.Failed() {
		return report, ErrSeedFailed
	}
	return report, nil
}

// runTenant builds one tenant's records in dependency order. An error aborts
// the tenant at the phase it occurred; everything built before it stands.
func runTenant(ctx context.Context, store db.Store, env envqual.Environment, res *resolver.Resolver, def *fixtures.TenantDef, now time.Time, tr *TenantReport) apperrors.Error {
	tenantID, o, err := builders.Tenant(ctx, store, env, *def)
	if err := record(tr.tally("tenants"), o, err); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Str("tenant", def.Slug).Str("tenant_id", tenantID.String()).Msg("seeding tenant")

	bc := &builders.Context{TenantID: tenantID, Env: env, Store: store, Resolver: res, Now: now}

	for _, u := range def.Users {
		_, o, err := builders.User(ctx, bc, u)
		if err := record(tr.tally("users"), o, err); err != nil {
			return err
		}
	}

	for i, org := range def.Organizations {
		_, o, err := builders.Organization(ctx, bc, org, i)
		if err := record(tr.tally("organizations"), o, err); err != nil {
			return err
		}
	}

	for i, c := range def.Contacts {
		_, o, err := builders.Contact(ctx, bc, c, i)
		if err := record(tr.tally("contacts"), o, err); err != nil {
			return err
		}
	}

	defaults := models.VisibilityPolicy{
		ShowLineage:       def.Visibility.ShowLineage,
		ShowHealthResults: def.Visibility.ShowHealthResults,
		ShowGenetics:      def.Visibility.ShowGenetics,
		ShowBreeder:       def.Visibility.ShowBreeder,
	}
	for _, a := range lineage.ByGeneration(def.Animals) {
		animalID, o, err := builders.Animal(ctx, bc, a, defaults)
		if err := record(tr.tally("animals"), o, err); err != nil {
			return err
		}
		if o == builders.OutcomeSkipped {
			continue
		}
		out, err := builders.AnimalTitles(ctx, bc, animalID, a)
		tr.tally("titles").add(&Tally{Created: out.Created, Existed: out.Existed, Skipped: out.Skipped})
		if err != nil {
			return err
		}
	}

	for _, p := range def.BreedingPlans {
		_, o, err := builders.BreedingPlan(ctx, bc, p)
		if err := record(tr.tally("breeding-plans"), o, err); err != nil {
			return err
		}
	}

	for _, l := range def.Listings {
		_, o, err := builders.Listing(ctx, bc, l)
		if err := record(tr.tally("listings"), o, err); err != nil {
			return err
		}
	}

	for _, t := range def.Tags {
		out, err := builders.TagWithAssignments(ctx, bc, t)
		tr.tally("tags").add(&Tally{Created: out.Created, Existed: out.Existed, Skipped: out.Skipped})
		if err != nil {
			return err
		}
	}

	if def.Portal != nil {
		out, err := builders.Portal(ctx, bc, *def.Portal, def.Contacts, def.Organizations)
		tr.tally("portal").add(&Tally{Created: out.Created, Existed: out.Existed, Skipped: out.Skipped})
		if err != nil {
			return err
		}
	}

	for _, c := range def.Contacts {
		out, err := builders.WaitlistAndInvoices(ctx, bc, c)
		tr.tally("waitlist").add(&Tally{Created: out.Created, Existed: out.Existed, Skipped: out.Skipped})
		if err != nil {
			return err
		}
	}

	for _, t := range def.Threads {
		_, o, err := builders.Thread(ctx, bc, t)
		if err := record(tr.tally("threads"), o, err); err != nil {
			return err
		}
	}

	for _, d := range def.Drafts {
		_, o, err := builders.Draft(ctx, bc, d)
		if err := record(tr.tally("drafts"), o, err); err != nil {
			return err
		}
	}

	return nil
}
