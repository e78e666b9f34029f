package lineage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pedigreehq/seedstock/internal/seeder/fixtures"
)

func names(defs []fixtures.AnimalDef) []string {
	out := make([]string, len(defs))
	for i, d := range defs {
		out[i] = d.Name
	}
	return out
}

func TestByGenerationOrdersParentsFirst(t *testing.T) {
	defs := []fixtures.AnimalDef{
		{Name: "grandchild", Generation: 2},
		{Name: "founder-a", Generation: 0},
		{Name: "child", Generation: 1},
		{Name: "founder-b", Generation: 0},
	}
	got := ByGeneration(defs)
	assert.Equal(t, []string{"founder-a", "founder-b", "child", "grandchild"}, names(got))
}

func TestByGenerationIsStableWithinGeneration(t *testing.T) {
	defs := []fixtures.AnimalDef{
		{Name: "c", Generation: 1},
		{Name: "a", Generation: 0},
		{Name: "b", Generation: 0},
		{Name: "d", Generation: 1},
	}
	got := ByGeneration(defs)
	assert.Equal(t, []string{"a", "b", "c", "d"}, names(got))
}

func TestByGenerationDoesNotMutateInput(t *testing.T) {
	defs := []fixtures.AnimalDef{
		{Name: "late", Generation: 3},
		{Name: "early", Generation: 0},
	}
	_ = ByGeneration(defs)
	assert.Equal(t, []string{"late", "early"}, names(defs))
}

func TestByGenerationOrderIndependentOfDeclaration(t *testing.T) {
	a := []fixtures.AnimalDef{
		{Name: "x", Generation: 0},
		{Name: "y", Generation: 1},
		{Name: "z", Generation: 2},
	}
	b := []fixtures.AnimalDef{
		{Name: "z", Generation: 2},
		{Name: "y", Generation: 1},
		{Name: "x", Generation: 0},
	}
	assert.Equal(t, names(ByGeneration(a)), names(ByGeneration(b)))
}
