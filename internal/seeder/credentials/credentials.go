// Package credentials prints the login matrix of a fixture catalogue: every
// seeded account's environment-qualified email and fixture password, grouped
// by tenant. It reads only the catalogue, never the store, so it is safe to
// run without a database.
package credentials

import (
	"fmt"
	"io"

	"github.com/pedigreehq/seedstock/internal/seeder/envqual"
	"github.com/pedigreehq/seedstock/internal/seeder/fixtures"
)

// Report writes the credential listing for the given environment.
func Report(w io.Writer, env envqual.Environment, cat *fixtures.Catalogue) {
	fmt.Fprintf(w, "seeded credentials (%s)\n\n", env)

	if len(cat.Shoppers) > 0 {
		fmt.Fprintln(w, "marketplace shoppers:")
		for _, s := range cat.Shoppers {
			fmt.Fprintf(w, "  %-40s %s\n", envqual.Email(s.Email, env), s.Password)
		}
		fmt.Fprintln(w)
	}

	for _, t := range cat.Tenants {
		fmt.Fprintf(w, "tenant %s:\n", envqual.Slug(t.Slug, env))
		for _, u := range t.Users {
			fmt.Fprintf(w, "  %-40s %-20s %s\n", envqual.Email(u.Email, env), u.Password, u.Role)
		}
		if t.Portal != nil {
			if len(t.Contacts) > 0 {
				fmt.Fprintf(w, "  %-40s %-20s %s\n", envqual.Email(t.Contacts[0].Email, env), t.Portal.Password, "CLIENT (portal)")
			}
			if len(t.Organizations) > 0 {
				fmt.Fprintf(w, "  %-40s %-20s %s\n", envqual.Email(t.Organizations[0].Email, env), t.Portal.Password, "CLIENT (portal)")
			}
		}
		fmt.Fprintln(w)
	}
}
