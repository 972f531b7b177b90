package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/GIVandez/plot-twister/internal/db"
)

// FailOnNthExecUoW is a UnitOfWork that returns Err from the FailOn-th
// ExecContext call of each transaction, then rolls back. Reads are not
// counted. FailOn <= 0 never fails, which turns it into a recorder: every
// executed statement is appended to Statements.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error

	mu         sync.Mutex
	Statements []string
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failOnNthExec{DBTX: tx, uow: u}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

// ExecCount returns how many statements have been recorded so far.
func (u *FailOnNthExecUoW) ExecCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.Statements)
}

type failOnNthExec struct {
	db.DBTX
	uow   *FailOnNthExecUoW
	count int
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.count++
	f.uow.mu.Lock()
	f.uow.Statements = append(f.uow.Statements, query)
	f.uow.mu.Unlock()

	if f.count == f.uow.FailOn {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
