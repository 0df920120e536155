// Package postgres is the production storage.Storage backend, built on a
// pgx connection pool shared by every request.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Veikkosuhonen/cloudcafe/internal/config"
	"github.com/Veikkosuhonen/cloudcafe/internal/types"
)

// Postgres persists subscriptions in PostgreSQL.
type Postgres struct {
	Pool *pgxpool.Pool
}

// New builds a pool from cfg and verifies it can reach the server.
func New(ctx context.Context, cfg config.DatabaseSettings) (*Postgres, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}
	if cfg.MaxConnections > 0 {
		poolCfg.MaxConns = cfg.MaxConnections
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	return &Postgres{Pool: pool}, nil
}

// NewFromPool wraps an existing pool; the caller keeps ownership of it.
func NewFromPool(pool *pgxpool.Pool) *Postgres {
	return &Postgres{Pool: pool}
}

func (p *Postgres) InsertSubscription(ctx context.Context, sub types.Subscription) error {
	_, err := p.Pool.Exec(ctx, `
		INSERT INTO subscriptions (id, email, name, subscribed_at)
		VALUES ($1, $2, $3, $4)
	`, sub.ID, sub.Email, sub.Name, sub.SubscribedAt)
	if err != nil {
		return fmt.Errorf("InsertSubscription: exec: %w", err)
	}
	return nil
}

func (p *Postgres) Close() error {
	p.Pool.Close()
	return nil
}
