package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Queryer is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repositories run against it so the same method works inside and outside
// a transaction.
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

// InTx runs fn inside a single transaction. The transaction rides in the
// context, so every repository call made from fn joins it via Q. A booking
// operation's conflict scan, primary write, and ledger writes therefore
// commit or roll back as one unit.
func (db *DB) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		// Already inside a transaction, just join it.
		return fn(ctx)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}

// Q returns the context's transaction when present, the pool otherwise.
func (db *DB) Q(ctx context.Context) Queryer {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db.DB
}
