package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/tdee/internal/db"
)

// FailOnNthWriteUoW is a UnitOfWork that injects Err on the Nth write inside
// a transaction. Writes are ExecContext calls plus QueryRowContext calls whose
// statement mutates data (an upsert with RETURNING runs through QueryRow).
// Counting starts at 1.
type FailOnNthWriteUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthWriteUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failOnNthWrite{DBTX: tx, failOn: u.FailOn, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	if wrapped.tripped.Load() {
		_ = tx.Rollback()
		return u.Err
	}
	return tx.Commit()
}

type failOnNthWrite struct {
	db.DBTX
	count   atomic.Int32
	failOn  int32
	err     error
	tripped atomic.Bool
}

func (f *failOnNthWrite) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.hit() {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// QueryRowContext cannot return an error directly, so a tripped write runs a
// statement guaranteed to fail instead and marks the transaction for rollback.
func (f *failOnNthWrite) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	if isWrite(query) && f.hit() {
		f.tripped.Store(true)
		return f.DBTX.QueryRowContext(ctx, `SELECT * FROM injected_failure`)
	}
	return f.DBTX.QueryRowContext(ctx, query, args...)
}

func (f *failOnNthWrite) hit() bool {
	return f.count.Add(1) == f.failOn
}

func isWrite(query string) bool {
	q := strings.ToUpper(strings.TrimSpace(query))
	return strings.HasPrefix(q, "INSERT") || strings.HasPrefix(q, "UPDATE") || strings.HasPrefix(q, "DELETE")
}
