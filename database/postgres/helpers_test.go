package postgres_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/bestemiy/inkstudio/database/postgres"
)

var (
	testPool     *pgxpool.Pool
	testPoolOnce sync.Once
)

// getSharedTestDatabase returns a shared, migrated database pool for all
// tests. Reusing one container keeps the suite fast.
func getSharedTestDatabase(t *testing.T) *pgxpool.Pool {
	t.Helper()

	testPoolOnce.Do(func() {
		ctx := context.Background()

		pgContainer, err := pgcontainer.Run(ctx,
			"postgres:18-alpine",
			pgcontainer.WithDatabase("testdb"),
			pgcontainer.WithUsername("testuser"),
			pgcontainer.WithPassword("testpass"),
			pgcontainer.BasicWaitStrategies(),
		)
		if err != nil {
			t.Fatalf("failed to start postgres container: %v", err)
		}

		cleanup := func() {
			if testPool != nil {
				testPool.Close()
			}
			if err := testcontainers.TerminateContainer(pgContainer); err != nil {
				t.Logf("failed to terminate container: %s", err)
			}
		}

		connectionStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			cleanup()
			t.Fatalf("failed to get connection string: %v", err)
		}

		pool, err := pgxpool.New(ctx, connectionStr)
		if err != nil {
			cleanup()
			t.Fatalf("could not connect to database: %v", err)
		}

		if err := postgres.Migrate(ctx, pool); err != nil {
			cleanup()
			t.Fatalf("failed to migrate: %v", err)
		}

		testPool = pool
	})

	return testPool
}

// setupPool returns the shared pool with every table emptied, so each test
// starts from a clean state.
func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool := getSharedTestDatabase(t)

	_, err := pool.Exec(context.Background(),
		`TRUNCATE tattoos, site_content, testimonials RESTART IDENTITY`)
	if err != nil {
		t.Fatalf("failed to reset tables: %v", err)
	}

	return pool
}
