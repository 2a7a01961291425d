package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/anchorleg/anchorleg/internal/models"
)

// setupTestDB spins up a disposable Postgres and applies the real
// migrations against it.
func setupTestDB(t *testing.T) (*PostgresStore, func()) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	container, err := pgcontainer.Run(
		ctx,
		"postgres:16-alpine",
		testcontainers.WithEnv(map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
		}),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := NewPostgresStore(dsn)
	require.NoError(t, err)

	require.NoError(t, s.ApplyMigrations("../../../migrations"))

	cleanup := func() {
		require.NoError(t, s.Close())
		require.NoError(t, container.Terminate(ctx))
	}

	return s, cleanup
}

func TestCreateAndListRecords(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	recs := []models.AuditRecord{
		{CorrelationID: "r-1", Username: "coach", Request: `{"a":1}`, Response: `["Swimming - Boys"]`},
		{CorrelationID: "r-1", Username: "coach", Request: `{"b":2}`, Response: `{"success":true}`},
	}
	for i := range recs {
		require.NoError(t, s.CreateRecord(&recs[i]))
	}

	got, err := s.ListRecords("coach", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, `{"b":2}`, got[0].Request)
	assert.Equal(t, `{"a":1}`, got[1].Request)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	assert.NoError(t, s.ApplyMigrations("../../../migrations"))
}
