package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"launchpad/internal/heropool"
	"launchpad/internal/logging"
)

// pool abstracts the subset of pgxpool.Pool used by the store for easier testing.
type pool interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS hero_claims (
    resource_id TEXT PRIMARY KEY,
    owner       TEXT NOT NULL DEFAULT '',
    claim_key   TEXT NOT NULL DEFAULT '',
    claimed_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS hero_claims_owner_idx ON hero_claims (owner);
`

// Store is a durable heropool.Claimer. The primary key on resource_id makes
// a claim at-most-one-holder across every instance sharing the database.
type Store struct {
	pool   pool
	logger logging.Logger
}

// New builds a Store backed by the provided connection pool.
func New(pool pool) (*Store, error) {
	if pool == nil {
		return nil, errors.New("postgres store requires pool")
	}
	return &Store{pool: pool, logger: logging.NewComponentLogger("heropool-postgres")}, nil
}

// Open connects to dsn, ensures the schema and returns the store with a
// close function for the underlying pool.
func Open(ctx context.Context, dsn string) (*Store, func(), error) {
	pgPool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("connect hero store: %w", err)
	}
	store, err := New(pgPool)
	if err != nil {
		pgPool.Close()
		return nil, nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		pgPool.Close()
		return nil, nil, err
	}
	return store, pgPool.Close, nil
}

// EnsureSchema creates the claim table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) // no-op if committed

	if _, err := tx.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create hero_claims: %w", err)
	}
	return tx.Commit(ctx)
}

// Claim returns owner's existing claim when it is still a candidate, otherwise
// probes candidates with the current used set and inserts the candidate. A
// conflicting insert means another instance won the id; it is added to the
// used set and probing continues. Exhaustion accepts a collision.
func (s *Store) Claim(ctx context.Context, candidates heropool.Pool, key, owner string) (string, error) {
	if len(candidates) == 0 {
		return "", heropool.ErrEmptyPool
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) // no-op if committed

	if owner != "" {
		var existing string
		err := tx.QueryRow(ctx, `SELECT resource_id FROM hero_claims WHERE owner = $1 LIMIT 1`, owner).Scan(&existing)
		switch {
		case err == nil && candidates.Contains(existing):
			if err := tx.Commit(ctx); err != nil {
				return "", fmt.Errorf("commit: %w", err)
			}
			return existing, nil
		case err != nil && !errors.Is(err, pgx.ErrNoRows):
			return "", fmt.Errorf("load owner claim: %w", err)
		}
	}

	used, err := loadUsed(ctx, tx)
	if err != nil {
		return "", err
	}

	for attempt := 0; attempt < len(candidates); attempt++ {
		candidate := heropool.Assign(candidates, key, used)
		if used.Has(candidate) {
			break
		}
		tag, err := tx.Exec(ctx, `
INSERT INTO hero_claims (resource_id, owner, claim_key)
VALUES ($1, $2, $3)
ON CONFLICT (resource_id) DO NOTHING`, candidate, owner, key)
		if err != nil {
			return "", fmt.Errorf("claim %s: %w", candidate, err)
		}
		if tag.RowsAffected() == 1 {
			if err := tx.Commit(ctx); err != nil {
				return "", fmt.Errorf("commit: %w", err)
			}
			return candidate, nil
		}
		used.Add(candidate)
	}

	fallback := heropool.Assign(candidates, key, nil)
	s.logger.Warn("Hero pool of %d exhausted, reusing %s for %s", len(candidates), fallback, owner)
	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return fallback, nil
}

func loadUsed(ctx context.Context, tx pgx.Tx) (heropool.UsedSet, error) {
	rows, err := tx.Query(ctx, `SELECT resource_id FROM hero_claims`)
	if err != nil {
		return nil, fmt.Errorf("load claims: %w", err)
	}
	defer rows.Close()

	used := heropool.NewUsedSet()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan claim: %w", err)
		}
		used.Add(id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate claims: %w", err)
	}
	return used, nil
}
