package testutil

import (
	"context"
	"database/sql"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/florodoro/internal/db"
)

// FailOnNthExecUoW is a UnitOfWork whose transactions fail one write: the
// FailOn-th ExecContext (counted from 1 within each transaction) returns Err
// instead of running. With Match set, only statements containing Match are
// counted, e.g. "study_days" to fail the daily total of an archive write.
// Reads always pass through.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Match  string
	Err    error

	// Txs counts the transactions started, Failed those that hit Err.
	Txs    atomic.Int32
	Failed atomic.Int32
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	u.Txs.Add(1)
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		wrapped := &failingTx{DBTX: tx, uow: u}
		err := fn(ctx, wrapped)
		if wrapped.tripped {
			u.Failed.Add(1)
		}
		return err
	})
}

type failingTx struct {
	db.DBTX
	uow     *FailOnNthExecUoW
	execs   int32
	tripped bool
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.uow.Match == "" || strings.Contains(query, f.uow.Match) {
		f.execs++
		if f.execs == f.uow.FailOn {
			f.tripped = true
			return nil, f.uow.Err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
