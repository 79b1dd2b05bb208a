package db

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func applyMigrations(t testing.TB, connString string) {
	migrationsPath := os.Getenv("TEST_MIGRATIONS_PATH")
	require.NotEmpty(t, migrationsPath, "TEST_MIGRATIONS_PATH must be set")

	m, err := migrate.New("file://"+migrationsPath, connString)
	require.NoError(t, err, "could not connect to DB for applying migrations")
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		require.NoError(t, err, "could not apply DB migrations")
	}
}

// CreateTestPool connects to TEST_POSTGRESQL_URL with the schema migrated to
// the latest version. The test is skipped when the variable is not set.
func CreateTestPool(t testing.TB) *pgxpool.Pool {
	connString := os.Getenv("TEST_POSTGRESQL_URL")
	if connString == "" {
		t.Skip("TEST_POSTGRESQL_URL is not set")
	}
	applyMigrations(t, connString)

	pool, err := pgxpool.Connect(context.Background(), connString)
	require.NoError(t, err, "could not connect to the database")
	return pool
}

func TruncateTables(t testing.TB, pool *pgxpool.Pool) {
	_, err := pool.Exec(context.Background(), `TRUNCATE "user" RESTART IDENTITY`)
	require.NoError(t, err, "could not truncate DB tables")
}
