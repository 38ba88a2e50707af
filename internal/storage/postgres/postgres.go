// Package postgres implements the repositories over PostgreSQL. Seat
// accounting and cancellation cascades run inside single transactions with
// the parent ride row locked, which is what makes the seat invariants hold
// under concurrent requests.
package postgres

import (
	"context"
	"database/sql"

	"github.com/gocampus/campus-carpool/internal/domain/identifier"
)

// queryer is satisfied by *sql.DB and *sql.Tx
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// withTx runs fn inside a transaction with full rollback on error
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// nextID bumps the per-kind sequence row and formats the display ID. The
// row update is atomic; when called with a *sql.Tx the allocation commits
// or rolls back with the enclosing unit.
func nextID(ctx context.Context, q queryer, kind identifier.Kind) (string, error) {
	if _, err := identifier.Prefix(kind); err != nil {
		return "", err
	}
	var n int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO id_sequences (kind, next_value)
		VALUES ($1, 1)
		ON CONFLICT (kind) DO UPDATE SET next_value = id_sequences.next_value + 1
		RETURNING next_value
	`, string(kind)).Scan(&n)
	if err != nil {
		return "", err
	}
	return identifier.Format(kind, n)
}

// Allocator exposes sequence-backed ID allocation outside the repositories
type Allocator struct {
	db *sql.DB
}

// NewAllocator creates an identifier.Allocator over the sequence table
func NewAllocator(db *sql.DB) *Allocator {
	return &Allocator{db: db}
}

// Next implements identifier.Allocator
func (a *Allocator) Next(ctx context.Context, kind identifier.Kind) (string, error) {
	return nextID(ctx, a.db, kind)
}
