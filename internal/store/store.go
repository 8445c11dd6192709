// Package store provides the RecordStore implementations: process memory,
// a single JSON file, and PostgreSQL.
package store

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/pinstore/internal/config"
	"github.com/JonMunkholm/pinstore/internal/core"
)

// Storage modes accepted by STORAGE_MODE.
const (
	ModeMemory   = "memory"
	ModeFile     = "file"
	ModePostgres = "postgres"
)

// Closer releases resources held by a store. It is a no-op for stores that
// hold none.
type Closer func()

// Open builds the RecordStore selected by cfg.Mode. This is the only place
// the storage mode is branched on.
func Open(ctx context.Context, cfg config.StorageConfig) (core.RecordStore, Closer, error) {
	switch cfg.Mode {
	case ModeMemory:
		return NewMemoryStore(cfg.MaxRecords), func() {}, nil

	case ModeFile:
		path := filepath.Join(cfg.DataDir, cfg.FileName)
		st, err := NewFileStore(path, FileOptions{
			MaxRecords:   cfg.MaxRecords,
			MaxFileBytes: cfg.MaxFileBytes,
		})
		if err != nil {
			return nil, nil, err
		}
		return st, func() {}, nil

	case ModePostgres:
		poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse database URL: %w", err)
		}
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ping database: %w", err)
		}
		st, err := NewPostgresStore(ctx, pool, cfg.MaxRecords)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return st, pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage mode %q", cfg.Mode)
	}
}
