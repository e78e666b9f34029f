package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	require.NoError(t, LoadConfig(""))
	assert.Equal(t, "localhost", Config().DB.Host)
	assert.Equal(t, 5432, Config().DB.Port)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seedstock.toml")
	content := `
log_json = true

[db]
host = "db.staging.internal"
port = 6432
name = "pedigreehq_staging"
user = "seeder"
password = "secret"
sslmode = "require"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	require.NoError(t, LoadConfig(path))
	assert.Equal(t, "db.staging.internal", Config().DB.Host)
	assert.Equal(t, 6432, Config().DB.Port)
	assert.True(t, Config().LogJSON)

	t.Cleanup(func() { _ = LoadConfig("") })
}

func TestDsnEnvOverrideWins(t *testing.T) {
	require.NoError(t, LoadConfig(""))
	t.Setenv("SEEDSTOCK_DSN", "host=ci port=5432 dbname=ci")
	assert.Equal(t, "host=ci port=5432 dbname=ci", Dsn())
}

func TestRunTimeFixedSeed(t *testing.T) {
	require.NoError(t, LoadConfig(""))
	Config().FixedSeed = true
	t.Cleanup(func() { _ = LoadConfig("") })

	first := RunTime()
	second := RunTime()
	assert.Equal(t, first, second, "fixed-seed runs share one anchor")
	assert.Equal(t, fixedRunEpoch, first)
}

func TestRunTimeWallClock(t *testing.T) {
	require.NoError(t, LoadConfig(""))
	assert.WithinDuration(t, time.Now().UTC(), RunTime(), time.Minute)
}

func TestDsnFromParams(t *testing.T) {
	require.NoError(t, LoadConfig(""))
	t.Setenv("SEEDSTOCK_DSN", "")
	assert.Contains(t, Dsn(), "host=localhost")
	assert.Contains(t, Dsn(), "dbname=pedigreehq")
}
