package migrations

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailSuite/internal/config"
	"mailSuite/internal/logger"
)

func TestEmbeddedMigrationsAreOrdered(t *testing.T) {
	src, err := Source()
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	next, err := src.Next(first)
	require.NoError(t, err)
	assert.Equal(t, uint(2), next)

	up, name, err := src.ReadUp(first)
	require.NoError(t, err)
	defer up.Close()
	body, err := io.ReadAll(up)
	require.NoError(t, err)
	assert.Equal(t, "create_runs", name)
	assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS scenario_results")

	down, _, err := src.ReadDown(next)
	require.NoError(t, err)
	down.Close()
}

func TestRunSkipsWithoutDatabase(t *testing.T) {
	cfg := &config.Cfg{Migrations: config.Migrations{Enabled: true}}
	assert.NoError(t, Run(cfg, logger.Nop()))

	cfg.Database = config.Database{Host: "localhost", Name: "mailsuite"}
	cfg.Migrations.Enabled = false
	assert.NoError(t, Run(cfg, logger.Nop()))
}
