package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/florodoro/internal/db"
	"github.com/alexanderramin/florodoro/internal/domain"
)

// SQLiteDailyTotalRepo implements DailyTotalRepo over the study_days table.
type SQLiteDailyTotalRepo struct {
	db db.DBTX
}

func NewSQLiteDailyTotalRepo(conn db.DBTX) *SQLiteDailyTotalRepo {
	return &SQLiteDailyTotalRepo{db: conn}
}

func (r *SQLiteDailyTotalRepo) Add(ctx context.Context, day string, study time.Duration, plants int) error {
	query := `INSERT INTO study_days (day, study_ns, plants) VALUES (?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET
			study_ns = study_ns + excluded.study_ns,
			plants   = plants + excluded.plants`
	if _, err := r.db.ExecContext(ctx, query, day, int64(study), plants); err != nil {
		return fmt.Errorf("adding to study day %s: %w", day, err)
	}
	return nil
}

func (r *SQLiteDailyTotalRepo) Get(ctx context.Context, day string) (*domain.DailyTotal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT day, study_ns, plants FROM study_days WHERE day = ?`, day)
	t, err := scanDailyTotal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("study day %s: %w", day, ErrNotFound)
		}
		return nil, err
	}
	return &t, nil
}

func (r *SQLiteDailyTotalRepo) ListRange(ctx context.Context, from, to string) ([]domain.DailyTotal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT day, study_ns, plants FROM study_days WHERE day >= ? AND day <= ? ORDER BY day`, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing study days: %w", err)
	}
	defer rows.Close()

	var out []domain.DailyTotal
	for rows.Next() {
		t, err := scanDailyTotal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteDailyTotalRepo) TotalStudy(ctx context.Context) (time.Duration, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(study_ns), 0) FROM study_days`).Scan(&total); err != nil {
		return 0, fmt.Errorf("summing study days: %w", err)
	}
	return time.Duration(total), nil
}

func scanDailyTotal(row rowScanner) (domain.DailyTotal, error) {
	var (
		t     domain.DailyTotal
		day   string
		study int64
	)
	if err := row.Scan(&day, &study, &t.Plants); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return t, err
		}
		return t, fmt.Errorf("scanning study day: %w", err)
	}
	parsed, err := time.Parse(dayLayout, day)
	if err != nil {
		return t, fmt.Errorf("parsing study day %q: %w", day, err)
	}
	t.Day = parsed
	t.Study = time.Duration(study)
	return t, nil
}
