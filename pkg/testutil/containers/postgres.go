//go:build integration

package containers

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance.
type PostgresContainer struct {
	Container testcontainers.Container
	// ConnString points at the admin "postgres" database.
	ConnString string
}

var (
	postgresOnce sync.Once
	postgresInst *PostgresContainer
	postgresErr  error
)

// GetPostgres returns the PostgreSQL container shared by every test in the
// package, starting it on first use.
//
// Note: We don't register t.Cleanup here because the container outlives any
// single test. Ryuk removes it when the test binary exits.
func GetPostgres(t *testing.T) *PostgresContainer {
	t.Helper()

	postgresOnce.Do(func() {
		postgresInst, postgresErr = startPostgres(context.Background())
	})
	if postgresErr != nil {
		t.Fatalf("failed to start postgres container: %v", postgresErr)
	}
	return postgresInst
}

func startPostgres(ctx context.Context) (*PostgresContainer, error) {
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("postgres"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("password"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, err
	}

	connString, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("connection string: %w", err)
	}

	return &PostgresContainer{Container: container, ConnString: connString}, nil
}

// CreateDatabase creates an empty database called name on the container.
func (p *PostgresContainer) CreateDatabase(ctx context.Context, name string) error {
	conn, err := pgx.Connect(ctx, p.ConnString)
	if err != nil {
		return fmt.Errorf("connect admin database: %w", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{name}.Sanitize()); err != nil {
		return fmt.Errorf("create database %s: %w", name, err)
	}
	return nil
}
