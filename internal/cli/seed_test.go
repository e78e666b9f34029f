package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pedigreehq/seedstock/internal/seeder/db/dberror"
	"github.com/pedigreehq/seedstock/internal/seeder/orchestrator"
)

func TestRunCompleted(t *testing.T) {
	assert.True(t, runCompleted(nil), "clean run completed")
	assert.True(t, runCompleted(orchestrator.ErrSeedFailed),
		"failed tenants still mean the run reached the end, credentials must print")
	assert.False(t, runCompleted(dberror.ErrDatabase.Msg("connection refused")),
		"infrastructure failure aborts before completion")
}
