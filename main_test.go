package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/healthai/riskpanel/database"
	"github.com/healthai/riskpanel/logger"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("RISKPANEL_DB_FOLDER", dir)
	t.Setenv("RISKPANEL_LOG_FOLDER", dir)
	logger.InitLogger(logging.INFO)
	t.Cleanup(logger.CloseLogger)
	return dir
}

func TestExportReleasesDatabase(t *testing.T) {
	dir := setupCLI(t)
	out := filepath.Join(dir, "export.json")

	require.NoError(t, exportPredictions(out))
	assert.Nil(t, database.GetDB())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, []string{"[]", "null"}, strings.TrimSpace(string(data)))

	for _, line := range logger.GetLogs(50, "warning") {
		assert.NotContains(t, line, "close db err")
	}

	// the store is closed cleanly and can be opened again
	require.NoError(t, migrateDb())
	require.NoError(t, listUsers(true))
}

func TestCloseDBWithoutDatabase(t *testing.T) {
	setupCLI(t)
	require.Nil(t, database.GetDB())
	assert.NotPanics(t, closeDB)
}
