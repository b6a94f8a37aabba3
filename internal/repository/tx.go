package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nikolayk812/storefront/internal/db"
)

// Conn is satisfied by both *pgxpool.Pool and pgx.Tx.
type Conn interface {
	db.DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// withTx executes fn within a new transaction on conn.
// When conn is already a transaction, Begin opens a savepoint, so the work
// stays part of the caller's transaction and commits or rolls back with it.
func withTx[T any](ctx context.Context, conn Conn, fn func(q *db.Queries) (T, error)) (_ T, txErr error) {
	var zero T

	tx, err := conn.Begin(ctx)
	if err != nil {
		return zero, fmt.Errorf("conn.Begin: %w", err)
	}

	defer func() {
		if txErr != nil {
			rollbackErr := tx.Rollback(ctx)
			if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
			}
		}
	}()

	result, err := fn(db.New(tx))
	if err != nil {
		return zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return zero, fmt.Errorf("tx.Commit: %w", err)
	}

	return result, nil
}
