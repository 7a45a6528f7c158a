package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/florodoro/internal/db"
	"github.com/alexanderramin/florodoro/internal/domain"
)

// SQLiteBreakRepo implements BreakRepo over the breaks table.
type SQLiteBreakRepo struct {
	db db.DBTX
}

func NewSQLiteBreakRepo(conn db.DBTX) *SQLiteBreakRepo {
	return &SQLiteBreakRepo{db: conn}
}

func (r *SQLiteBreakRepo) Create(ctx context.Context, b *domain.BreakRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO breaks (id, duration_ns, finished_at, finished_ns, created_at) VALUES (?, ?, ?, ?, ?)`,
		b.ID, int64(b.Duration), formatTime(b.FinishedAt), b.FinishedAt.UnixNano(), nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting break: %w", err)
	}
	return nil
}

func (r *SQLiteBreakRepo) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM breaks WHERE id = ?`, id).Scan(&n); err != nil {
		return false, fmt.Errorf("checking break %s: %w", id, err)
	}
	return n > 0, nil
}

func (r *SQLiteBreakRepo) List(ctx context.Context) ([]*domain.BreakRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, duration_ns, finished_at FROM breaks ORDER BY finished_ns, rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing breaks: %w", err)
	}
	defer rows.Close()

	var out []*domain.BreakRecord
	for rows.Next() {
		var (
			b        domain.BreakRecord
			duration int64
			finished string
		)
		if err := rows.Scan(&b.ID, &duration, &finished); err != nil {
			return nil, fmt.Errorf("scanning break row: %w", err)
		}
		b.Duration = time.Duration(duration)
		if b.FinishedAt, err = parseTime("finished_at", finished); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

func (r *SQLiteBreakRepo) TotalDuration(ctx context.Context) (time.Duration, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(duration_ns), 0) FROM breaks`).Scan(&total); err != nil {
		return 0, fmt.Errorf("summing breaks: %w", err)
	}
	return time.Duration(total), nil
}
