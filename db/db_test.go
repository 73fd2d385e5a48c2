package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jeff92400/Carambole-tournament-management-sub001/db"
)

func TestParseDialect(t *testing.T) {
	d, err := db.ParseDialect("postgres")
	require.NoError(t, err)
	assert.Equal(t, db.DialectPostgres, d)

	d, err = db.ParseDialect("sqlite")
	require.NoError(t, err)
	assert.Equal(t, db.DialectSQLite, d)

	_, err = db.ParseDialect("mysql")
	assert.Error(t, err)
}

func TestMigrateSQLite(t *testing.T) {
	sqlDB, err := db.Connect(db.DialectSQLite, ":memory:", time.Second)
	require.NoError(t, err)
	defer sqlDB.Close()

	ctx := context.Background()
	version, err := db.Migrate(ctx, sqlDB, db.DialectSQLite, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), version)

	for _, table := range []string{"tournaments", "poule_results", "matches", "progression_runs", "final_positions", "tenant_settings", "position_points"} {
		var name string
		err := sqlDB.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = $1", table).Scan(&name)
		assert.NoError(t, err, "table %s", table)
	}

	again, err := db.Migrate(ctx, sqlDB, db.DialectSQLite, nil)
	require.NoError(t, err)
	assert.Equal(t, version, again, "re-running migrations is a no-op")
}

func TestMigrateUnknownDialect(t *testing.T) {
	_, err := db.Migrate(context.Background(), nil, db.Dialect("oracle"), nil)
	assert.Error(t, err)
}
