// Package testutil starts the PostgreSQL instance used by integration tests
// and seeds it with fixture rows.
package testutil

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"jobly/internal/database"
)

const postgresContainer = "jobly-testcontainers-postgresql"

var (
	poolOnce sync.Once
	pool     *pgxpool.Pool
	poolErr  error
)

// Postgres returns a pool connected to a shared PostgreSQL container with the
// schema applied. The test is skipped under -short or when no container
// runtime is available.
func Postgres(tb testing.TB) *pgxpool.Pool {
	tb.Helper()

	if testing.Short() {
		tb.Skip("skipping database test in short mode")
	}

	poolOnce.Do(func() {
		pool, poolErr = start(context.Background())
	})
	if poolErr != nil {
		tb.Skipf("postgres container unavailable: %v", poolErr)
	}

	return pool
}

func start(ctx context.Context) (*pgxpool.Pool, error) {
	ctr, err := postgres.Run(ctx,
		"postgres:16-alpine",
		testcontainers.WithReuseByName(postgresContainer),
		postgres.WithDatabase("jobly_test"),
		postgres.WithUsername("jobly"),
		postgres.WithPassword("jobly"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, err
	}

	p, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}

	if err := database.EnsureSchema(ctx, p); err != nil {
		p.Close()
		return nil, err
	}

	return p, nil
}

// Tx opens a transaction that is rolled back when the test finishes
func Tx(tb testing.TB, p *pgxpool.Pool) pgx.Tx {
	tb.Helper()

	tx, err := p.Begin(context.Background())
	require.NoError(tb, err)

	tb.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return tx
}

// Fixtures holds the ids assigned to the seeded jobs, keyed by title
type Fixtures struct {
	JobIDs map[string]int
}

// Seed inserts companies c1..c3 and one job per company:
// J1 (1000, 0.0, c1), J2 (2000, 0.2, c2), J3 (3000, 0.3, c3).
func Seed(tb testing.TB, tx pgx.Tx) Fixtures {
	tb.Helper()
	ctx := context.Background()

	_, err := tx.Exec(ctx, `
		INSERT INTO companies (handle, name, num_employees, description, logo_url)
		VALUES ('c1', 'C1', 1, 'Desc1', 'http://c1.img'),
		       ('c2', 'C2', 2, 'Desc2', 'http://c2.img'),
		       ('c3', 'C3', 3, 'Desc3', 'http://c3.img')`)
	require.NoError(tb, err)

	rows, err := tx.Query(ctx, `
		INSERT INTO jobs (title, salary, equity, company_handle)
		VALUES ('J1', 1000, '0.0', 'c1'),
		       ('J2', 2000, '0.2', 'c2'),
		       ('J3', 3000, '0.3', 'c3')
		RETURNING id, title`)
	require.NoError(tb, err)
	defer rows.Close()

	fx := Fixtures{JobIDs: map[string]int{}}
	for rows.Next() {
		var (
			id    int
			title string
		)
		require.NoError(tb, rows.Scan(&id, &title))
		fx.JobIDs[title] = id
	}
	require.NoError(tb, rows.Err())

	return fx
}
