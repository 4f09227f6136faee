// Package repository holds the PostgreSQL stores behind the ledger interfaces,
// plus the Redis-backed read repositories for the view projections.
package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// DB wraps *sql.DB and provides the single-transaction boundary the ledger
// runs its mutations in.
type DB struct {
	*sql.DB
}

func NewDB(db *sql.DB) *DB {
	return &DB{DB: db}
}

type txKey struct{}

// RunInTx runs fn inside a database transaction. The transaction is carried in
// the context handed to fn, so every repository call made with that context
// joins it. If the context already carries a transaction, fn joins it instead
// of opening a nested one; commit and rollback then happen at the outermost
// boundary.
func (d *DB) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFrom(ctx) != nil {
		return fn(ctx)
	}

	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func txFrom(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}

// executor is the subset of *sql.DB / *sql.Tx the repositories use.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// executor returns the ambient transaction when one is open, the pool otherwise.
func (d *DB) executor(ctx context.Context) executor {
	if tx := txFrom(ctx); tx != nil {
		return tx
	}
	return d.DB
}
