package db_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/alexanderramin/florodoro/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUoW(t *testing.T) (*db.SQLiteUnitOfWork, db.DBTX) {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database), database
}

func countBreaks(t *testing.T, conn db.DBTX) int {
	t.Helper()
	var n int
	require.NoError(t, conn.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM breaks`).Scan(&n))
	return n
}

func insertBreak(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO breaks (id, duration_ns, finished_at, created_at)
		VALUES (?, 300000000000, '2026-03-02T09:30:00Z', '2026-03-02T09:30:00Z')`, id)
	return err
}

func TestWithinTx_Commits(t *testing.T) {
	uow, conn := newUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertBreak(ctx, tx, "b1"); err != nil {
			return err
		}
		return insertBreak(ctx, tx, "b2")
	})
	require.NoError(t, err)
	assert.Equal(t, 2, countBreaks(t, conn))
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	uow, conn := newUoW(t)

	calls := 0
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		calls++
		if err := insertBreak(ctx, tx, "b1"); err != nil {
			return err
		}
		return fmt.Errorf("daily total failed")
	})
	require.EqualError(t, err, "daily total failed")
	assert.Equal(t, 1, calls, "ordinary errors are not retried")
	assert.Equal(t, 0, countBreaks(t, conn))
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	uow, conn := newUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertBreak(ctx, tx, "b1")
			panic("boom")
		})
	})
	assert.Equal(t, 0, countBreaks(t, conn))
}

func TestWithinTx_ConstraintErrorIsNotBusy(t *testing.T) {
	uow, _ := newUoW(t)

	calls := 0
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		calls++
		if err := insertBreak(ctx, tx, "dup"); err != nil {
			return err
		}
		return insertBreak(ctx, tx, "dup")
	})
	require.Error(t, err)
	assert.False(t, db.IsBusy(err))
	assert.Equal(t, 1, calls)
}

func TestIsBusy_PlainErrors(t *testing.T) {
	assert.False(t, db.IsBusy(nil))
	assert.False(t, db.IsBusy(errors.New("database is locked")), "only driver errors carry a code")
}
