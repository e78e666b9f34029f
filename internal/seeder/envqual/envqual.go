// Package envqual derives environment-qualified natural-key strings so that
// dev and prod fixture sets can share one store without colliding. Prod is
// the identity transform; dev suffixes names, slugs and email local parts.
// These are the only places environment awareness appears in the seeder.
package envqual

import (
	"fmt"
	"strings"
)

type Environment string

const (
	Dev  Environment = "dev"
	Prod Environment = "prod"
)

func (e Environment) Valid() bool {
	return e == Dev || e == Prod
}

// Name qualifies a display name, e.g. "Huan the Great" -> "Huan the Great (dev)".
func Name(base string, env Environment) string {
	if env == Prod {
		return base
	}
	return fmt.Sprintf("%s (%s)", base, env)
}

// Slug qualifies a tenant slug, e.g. "sunhollow" -> "sunhollow-dev".
func Slug(base string, env Environment) string {
	if env == Prod {
		return base
	}
	return fmt.Sprintf("%s-%s", base, env)
}

// Email qualifies the local part with a plus tag, e.g.
// "ines@sunhollow.example" -> "ines+dev@sunhollow.example". Emails without an
// @ are treated as opaque and qualified like names.
func Email(base string, env Environment) string {
	if env == Prod {
		return base
	}
	at := strings.LastIndex(base, "@")
	if at < 0 {
		return Name(base, env)
	}
	return fmt.Sprintf("%s+%s%s", base[:at], env, base[at:])
}

// Subject qualifies a message-thread subject like a name.
func Subject(base string, env Environment) string {
	return Name(base, env)
}
