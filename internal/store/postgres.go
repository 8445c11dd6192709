package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/pinstore/internal/core"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS pin_submissions (
	id         BIGSERIAL PRIMARY KEY,
	pin        TEXT NOT NULL,
	ts         TEXT NOT NULL,
	ua         TEXT NOT NULL DEFAULT '',
	ip         TEXT NOT NULL,
	created_at TEXT NOT NULL
)`

const insertSQL = `INSERT INTO pin_submissions (pin, ts, ua, ip, created_at) VALUES ($1, $2, $3, $4, $5)`

// Rows past the cap are removed in the same transaction as the insert.
const trimSQL = `
DELETE FROM pin_submissions
WHERE id NOT IN (SELECT id FROM pin_submissions ORDER BY id DESC LIMIT $1)`

const selectAllSQL = `SELECT pin, ts, ua, ip, created_at FROM pin_submissions ORDER BY id ASC`

// PostgresStore keeps records in a single PostgreSQL table ordered by a
// serial id. Append and trim commit together, so a cancelled context never
// leaves a half-applied write.
type PostgresStore struct {
	pool       *pgxpool.Pool
	maxRecords int
}

// NewPostgresStore ensures the table exists and returns a store on pool.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool, maxRecords int) (*PostgresStore, error) {
	if maxRecords <= 0 {
		maxRecords = core.DefaultMaxRecords
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		return nil, &core.PersistenceError{Op: "init", Err: err}
	}
	return &PostgresStore{pool: pool, maxRecords: maxRecords}, nil
}

func (s *PostgresStore) Append(ctx context.Context, rec core.Record) error {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		// Serialize writers so concurrent trims cannot interleave.
		if _, err := tx.Exec(ctx, `LOCK TABLE pin_submissions IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return fmt.Errorf("lock: %w", err)
		}
		if _, err := tx.Exec(ctx, insertSQL, rec.PIN, rec.Timestamp, rec.UserAgent, rec.IP, rec.CreatedAt); err != nil {
			return fmt.Errorf("insert: %w", err)
		}
		if _, err := tx.Exec(ctx, trimSQL, s.maxRecords); err != nil {
			return fmt.Errorf("trim: %w", err)
		}
		return nil
	})
	if err != nil {
		return &core.PersistenceError{Op: "append", Err: err}
	}
	return nil
}

func (s *PostgresStore) All(ctx context.Context) ([]core.Record, error) {
	rows, err := s.pool.Query(ctx, selectAllSQL)
	if err != nil {
		return nil, &core.PersistenceError{Op: "load", Err: err}
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (core.Record, error) {
		var rec core.Record
		err := row.Scan(&rec.PIN, &rec.Timestamp, &rec.UserAgent, &rec.IP, &rec.CreatedAt)
		return rec, err
	})
	if err != nil {
		return nil, &core.PersistenceError{Op: "load", Err: err}
	}
	return records, nil
}

func (s *PostgresStore) Mode() string  { return ModePostgres }
func (s *PostgresStore) Durable() bool { return true }
