//go:build integration

package database_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"actavc/internal/platform/database"
	"actavc/migrations"
	"actavc/pkg/testutil/containers"
)

func tableExists(t *testing.T, pg *containers.PostgresContainer, name string) bool {
	t.Helper()
	var exists bool
	err := pg.DB.QueryRowContext(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`, name).Scan(&exists)
	require.NoError(t, err)
	return exists
}

func TestMigrateRollsBackFailedFile(t *testing.T) {
	pg := containers.GetManager().GetPostgres(t)
	ctx := context.Background()
	t.Cleanup(func() {
		_, _ = pg.DB.ExecContext(ctx, `DROP TABLE IF EXISTS migrate_ok, migrate_partial`)
	})

	broken := `CREATE TABLE IF NOT EXISTS migrate_partial (id INT);
INSERT INTO missing_table VALUES (1);`
	fsys := fstest.MapFS{
		"000001_ok.up.sql":     {Data: []byte(`CREATE TABLE IF NOT EXISTS migrate_ok (id INT)`)},
		"000002_broken.up.sql": {Data: []byte(broken)},
	}

	err := database.Migrate(ctx, pg.DB, fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "000002_broken.up.sql")

	assert.True(t, tableExists(t, pg, "migrate_ok"))
	assert.False(t, tableExists(t, pg, "migrate_partial"))
}

func TestMigrateIsRerunnable(t *testing.T) {
	pg := containers.GetManager().GetPostgres(t)
	require.NoError(t, database.Migrate(context.Background(), pg.DB, migrations.FS))
	assert.True(t, tableExists(t, pg, "vc_issuances"))
}
