// Package storage implements the PostgreSQL-backed persistence layer for the
// sequencer: Merkle tree nodes and the spent-nullifier set.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sanctum-labs/sanctum/pkg/types"
)

// Common errors.
var (
	ErrNotFound     = errors.New("storage: not found")
	ErrDuplicate    = errors.New("storage: duplicate entry")
	ErrDBConnection = errors.New("storage: database connection error")
)

// Config holds database connection parameters.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int32
}

// DefaultConfig returns the default local-development database configuration.
func DefaultConfig() *Config {
	return &Config{
		Host:     "localhost",
		Port:     5432,
		User:     "sanctum",
		Password: "",
		Database: "sanctum",
		SSLMode:  "disable",
		MaxConns: 20,
	}
}

// PostgresStore implements zkp.TreeStore and the nullifier set on top of a
// pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore opens a connection pool and verifies connectivity.
func NewPostgresStore(ctx context.Context, cfg *Config) (*PostgresStore, error) {
	connString := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=%d",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode, cfg.MaxConns,
	)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDBConnection, err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDBConnection, err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Schema returns the DDL statements NewPostgresStore's caller must run once
// against a fresh database before first use.
func Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS merkle_nodes (
			level INTEGER NOT NULL,
			index_in_level BIGINT NOT NULL,
			hash BYTEA NOT NULL,
			PRIMARY KEY (level, index_in_level)
		)`,
		`CREATE TABLE IF NOT EXISTS merkle_meta (
			id SMALLINT PRIMARY KEY DEFAULT 1,
			root BYTEA NOT NULL,
			size BIGINT NOT NULL,
			CHECK (id = 1)
		)`,
		`CREATE TABLE IF NOT EXISTS nullifiers (
			nullifier BYTEA PRIMARY KEY,
			spent_at_position BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
}

// GetNode implements zkp.TreeStore.
func (s *PostgresStore) GetNode(ctx context.Context, level, index uint64) (types.Hash, error) {
	var hash []byte
	err := s.pool.QueryRow(ctx,
		`SELECT hash FROM merkle_nodes WHERE level = $1 AND index_in_level = $2`,
		level, index,
	).Scan(&hash)
	if err == pgx.ErrNoRows {
		return types.Hash{}, ErrNotFound
	}
	if err != nil {
		return types.Hash{}, fmt.Errorf("get node: %w", err)
	}
	return types.HashFromBytes(hash), nil
}

// SetNode implements zkp.TreeStore.
func (s *PostgresStore) SetNode(ctx context.Context, level, index uint64, hash types.Hash) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO merkle_nodes (level, index_in_level, hash) VALUES ($1, $2, $3)
		 ON CONFLICT (level, index_in_level) DO UPDATE SET hash = $3`,
		level, index, hash.Bytes(),
	)
	if err != nil {
		return fmt.Errorf("set node: %w", err)
	}
	return nil
}

// GetRoot implements zkp.TreeStore.
func (s *PostgresStore) GetRoot(ctx context.Context) (types.Hash, error) {
	var root []byte
	err := s.pool.QueryRow(ctx, `SELECT root FROM merkle_meta WHERE id = 1`).Scan(&root)
	if err == pgx.ErrNoRows {
		return types.Hash{}, ErrNotFound
	}
	if err != nil {
		return types.Hash{}, fmt.Errorf("get root: %w", err)
	}
	return types.HashFromBytes(root), nil
}

// SetRoot implements zkp.TreeStore.
func (s *PostgresStore) SetRoot(ctx context.Context, root types.Hash) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO merkle_meta (id, root, size) VALUES (1, $1, 0)
		 ON CONFLICT (id) DO UPDATE SET root = $1`,
		root.Bytes(),
	)
	if err != nil {
		return fmt.Errorf("set root: %w", err)
	}
	return nil
}

// GetSize implements zkp.TreeStore.
func (s *PostgresStore) GetSize(ctx context.Context) (uint64, error) {
	var size int64
	err := s.pool.QueryRow(ctx, `SELECT size FROM merkle_meta WHERE id = 1`).Scan(&size)
	if err == pgx.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get size: %w", err)
	}
	return uint64(size), nil
}

// SetSize implements zkp.TreeStore.
func (s *PostgresStore) SetSize(ctx context.Context, size uint64) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO merkle_meta (id, root, size)
		 VALUES (1, COALESCE((SELECT root FROM merkle_meta WHERE id = 1), ''::bytea), $1)
		 ON CONFLICT (id) DO UPDATE SET size = $1`,
		int64(size),
	)
	if err != nil {
		return fmt.Errorf("set size: %w", err)
	}
	return nil
}

// IsSpent reports whether nullifier has already been recorded.
func (s *PostgresStore) IsSpent(ctx context.Context, nullifier types.Hash) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM nullifiers WHERE nullifier = $1)`,
		nullifier.Bytes(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check nullifier: %w", err)
	}
	return exists, nil
}

// MarkSpent records nullifier as spent at the given leaf position. It
// returns ErrDuplicate if the nullifier was already recorded, matching the
// on-chain contract's DuplicateNullifier error (§6).
func (s *PostgresStore) MarkSpent(ctx context.Context, nullifier types.Hash, position uint64) error {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO nullifiers (nullifier, spent_at_position) VALUES ($1, $2)
		 ON CONFLICT (nullifier) DO NOTHING`,
		nullifier.Bytes(), int64(position),
	)
	if err != nil {
		return fmt.Errorf("mark spent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDuplicate
	}
	return nil
}
