// Package lineage orders animal fixtures so that parents are always built
// before their offspring. This is not a topological sort: the fixture format
// carries an explicit generation number (0 = founder), and the catalogue
// guarantees every parent has a strictly lower generation than its children.
// Sorting ascending by that number is therefore sufficient. If a sire or dam
// still fails to resolve after ordering, that is a fixture-data bug and the
// animal builder surfaces it loudly rather than papering over it.
package lineage

import (
	"sort"

	"github.com/pedigreehq/seedstock/internal/seeder/fixtures"
)

// ByGeneration returns a copy of defs sorted ascending by generation. The
// sort is stable, so animals within one generation keep their declared order.
func ByGeneration(defs []fixtures.AnimalDef) []fixtures.AnimalDef {
	out := make([]fixtures.AnimalDef, len(defs))
	copy(out, defs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Generation < out[j].Generation
	})
	return out
}
