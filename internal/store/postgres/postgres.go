// Package postgres stores each collection as one jsonb row of the
// collections table.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/LocalBizGo/internal/store"
	"github.com/utafrali/LocalBizGo/pkg/database"
)

const (
	loadSQL = `SELECT records FROM collections WHERE name = $1`

	saveSQL = `INSERT INTO collections (name, records, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET records = EXCLUDED.records, updated_at = NOW()`

	pingSQL = `SELECT 1`

	// The advisory lock lives until the surrounding transaction ends, so
	// committing releases it even if this process dies mid-cycle.
	lockSQL = `SELECT pg_advisory_xact_lock(hashtext('localbiz.collections.' || $1))`
)

// Backend implements store.Backend on PostgreSQL.
type Backend struct {
	db      database.DBTX
	closeFn func()
}

// New creates a backend on db. closeFn, if not nil, is called by Close.
func New(db database.DBTX, closeFn func()) *Backend {
	return &Backend{db: db, closeFn: closeFn}
}

func (b *Backend) Load(ctx context.Context, collection string) ([]byte, error) {
	var data []byte
	err := b.db.QueryRow(ctx, loadSQL, collection).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotExist
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (b *Backend) Save(ctx context.Context, collection string, data []byte) error {
	_, err := b.db.Exec(ctx, saveSQL, collection, data)
	return err
}

// Lock serializes read-modify-write cycles on collection across every
// process sharing the database. It holds one pooled connection until unlock.
func (b *Backend) Lock(ctx context.Context, collection string) (func(context.Context) error, error) {
	tx, err := b.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin lock transaction: %w", err)
	}
	if _, err := tx.Exec(ctx, lockSQL, collection); err != nil {
		_ = tx.Rollback(ctx)
		return nil, fmt.Errorf("advisory lock: %w", err)
	}
	return tx.Commit, nil
}

var _ store.Locker = (*Backend)(nil)

func (b *Backend) Ping(ctx context.Context) error {
	var one int
	return b.db.QueryRow(ctx, pingSQL).Scan(&one)
}

func (b *Backend) Close() error {
	if b.closeFn != nil {
		b.closeFn()
	}
	return nil
}
