package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLMigrations_HaveGooseDirectives(t *testing.T) {
	dir := repoMigrationsDir(t)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		sql := readMigration(t, e.Name())
		up := strings.Index(sql, "-- +goose Up")
		down := strings.Index(sql, "-- +goose Down")

		assert.GreaterOrEqual(t, up, 0, "%s missing '-- +goose Up'", e.Name())
		assert.Greater(t, down, up, "%s needs '-- +goose Down' after Up", e.Name())
		assert.NotEmpty(t, strings.TrimSpace(sql[down+len("-- +goose Down"):]), "%s has an empty Down", filepath.Base(e.Name()))
	}
}
