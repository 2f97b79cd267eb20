package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RESOURCIO_DATABASE_DRIVER", "memory")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 8.0, cfg.Planning.NonProjectHours)
	assert.Equal(t, 50.0, cfg.Planning.Thresholds.OptimalMin)
	assert.Equal(t, 90.0, cfg.Planning.Thresholds.Warning)
	assert.Equal(t, 100.0, cfg.Planning.Thresholds.Error)
	assert.Equal(t, 120.0, cfg.Planning.Thresholds.Critical)
	assert.True(t, cfg.Scheduler.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
database:
  driver: memory
planning:
  non_project_hours: 4
  thresholds:
    optimal_min: 40
    optimal_max: 80
    warning: 80
    error: 95
    critical: 110
submissions:
  unsubmit_grace_period: 72h
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 4.0, cfg.Planning.NonProjectHours)
	assert.Equal(t, 95.0, cfg.Planning.Thresholds.Error)
	assert.Equal(t, "72h0m0s", cfg.Submissions.UnsubmitGracePeriod.String())
}

func TestLoadPostgresRequiresDSN(t *testing.T) {
	t.Setenv("RESOURCIO_DATABASE_DRIVER", "postgres")
	t.Setenv("RESOURCIO_DATABASE_DSN", "")

	_, err := Load("")
	require.Error(t, err)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("RESOURCIO_DATABASE_DRIVER", "oracle")

	_, err := Load("")
	require.Error(t, err)
}

func TestLoadRejectsDecreasingThresholds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
database:
  driver: memory
planning:
  thresholds:
    optimal_min: 50
    optimal_max: 90
    warning: 90
    error: 80
    critical: 120
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
