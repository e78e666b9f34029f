package envqual

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualifyDev(t *testing.T) {
	assert.Equal(t, "Huan the Great (dev)", Name("Huan the Great", Dev))
	assert.Equal(t, "sunhollow-dev", Slug("sunhollow", Dev))
	assert.Equal(t, "ines+dev@sunhollow.example", Email("ines@sunhollow.example", Dev))
	assert.Equal(t, "not-an-email (dev)", Email("not-an-email", Dev))
}

func TestQualifyProdIsIdentity(t *testing.T) {
	assert.Equal(t, "Huan the Great", Name("Huan the Great", Prod))
	assert.Equal(t, "sunhollow", Slug("sunhollow", Prod))
	assert.Equal(t, "ines@sunhollow.example", Email("ines@sunhollow.example", Prod))
}

func TestEnvironmentValid(t *testing.T) {
	assert.True(t, Dev.Valid())
	assert.True(t, Prod.Valid())
	assert.False(t, Environment("staging").Valid())
}
