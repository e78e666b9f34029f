// Package orchestrator drives a full seeding run: the global pre-pass, then
// each tenant's phases in dependency order, accumulating a run report that is
// printed at the end.
package orchestrator

import (
	"fmt"
	"io"
	"time"

	"github.com/pedigreehq/seedstock/internal/common/apperrors"
	"github.com/pedigreehq/seedstock/internal/seeder/envqual"
)

// Tally counts record outcomes for one entity kind.
type Tally struct {
	Created int
	Existed int
	Skipped int
}

func (t *Tally) add(o *Tally) {
	t.Created += o.Created
	t.Existed += o.Existed
	t.Skipped += o.Skipped
}

// kindOrder fixes the report layout; it follows the build order of a run.
var kindOrder = []string{
	"title-definitions",
	"shoppers",
	"tenants",
	"users",
	"organizations",
	"contacts",
	"animals",
	"titles",
	"breeding-plans",
	"listings",
	"tags",
	"portal",
	"waitlist",
	"threads",
	"drafts",
}

// TenantReport is one tenant's slice of the run. Err is set when the tenant
// was aborted mid-way; earlier tallies for that tenant still stand.
type TenantReport struct {
	Slug    string
	Tallies map[string]*Tally
	Err     apperrors.Error
}

func (tr *TenantReport) tally(kind string) *Tally {
	t, ok := tr.Tallies[kind]
	if !ok {
		t = &Tally{}
		tr.Tallies[kind] = t
	}
	return t
}

// RunReport is the full outcome of one seeding run.
type RunReport struct {
	Env       envqual.Environment
	StartedAt time.Time
	Global    map[string]*Tally
	Tenants   []*TenantReport
}

func newRunReport(env envqual.Environment, startedAt time.Time) *RunReport {
	return &RunReport{
		Env:       env,
		StartedAt: startedAt,
		Global:    map[string]*Tally{},
	}
}

func (r *RunReport) globalTally(kind string) *Tally {
	t, ok := r.Global[kind]
	if !ok {
		t = &Tally{}
		r.Global[kind] = t
	}
	return t
}

func (r *RunReport) newTenant(slug string) *TenantReport {
	tr := &TenantReport{Slug: slug, Tallies: map[string]*Tally{}}
	r.Tenants = append(r.Tenants, tr)
	return tr
}

// Failed reports whether any tenant was aborted.
func (r *RunReport) Failed() bool {
	for _, tr := range r.Tenants {
		if tr.Err != nil {
			return true
		}
	}
	return false
}

// totals folds global and per-tenant tallies into one per-kind map.
func (r *RunReport) totals() map[string]*Tally {
	out := map[string]*Tally{}
	fold := func(kind string, t *Tally) {
		agg, ok := out[kind]
		if !ok {
			agg = &Tally{}
			out[kind] = agg
		}
		agg.add(t)
	}
	for kind, t := range r.Global {
		fold(kind, t)
	}
	for _, tr := range r.Tenants {
		for kind, t := range tr.Tallies {
			fold(kind, t)
		}
	}
	return out
}

// Render writes the human-readable run summary.
func (r *RunReport) Render(w io.Writer) {
	fmt.Fprintf(w, "seeding run (%s) started %s\n", r.Env, r.StartedAt.Format(time.RFC3339))
	totals := r.totals()
	fmt.Fprintf(w, "%-20s %8s %8s %8s\n", "kind", "created", "existed", "skipped")
	for _, kind := range kindOrder {
		t, ok := totals[kind]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%-20s %8d %8d %8d\n", kind, t.Created, t.Existed, t.Skipped)
	}
	for _, tr := range r.Tenants {
		if tr.Err != nil {
			fmt.Fprintf(w, "tenant %s: FAILED: %s\n", tr.Slug, tr.Err.Error())
		} else {
			fmt.Fprintf(w, "tenant %s: ok\n", tr.Slug)
		}
	}
}
