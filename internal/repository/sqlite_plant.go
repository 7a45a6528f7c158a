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

// SQLitePlantRepo implements PlantRepo over the plants table.
type SQLitePlantRepo struct {
	db db.DBTX
}

func NewSQLitePlantRepo(conn db.DBTX) *SQLitePlantRepo {
	return &SQLitePlantRepo{db: conn}
}

const plantColumns = `id, species, seed, max_age_ns, final_age_ns, duration_ns, finished_at, source`

func (r *SQLitePlantRepo) Create(ctx context.Context, e *domain.ArchiveEntry) error {
	source := e.Source
	if source == "" {
		source = domain.SourceSession
	}
	query := `INSERT INTO plants (` + plantColumns + `, finished_ns, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		string(e.Spec.Species),
		e.Spec.Seed,
		int64(e.Spec.MaxAge),
		int64(e.FinalAge),
		int64(e.Duration),
		formatTime(e.FinishedAt),
		string(source),
		e.FinishedAt.UnixNano(),
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting plant: %w", err)
	}
	return nil
}

func (r *SQLitePlantRepo) GetByID(ctx context.Context, id string) (*domain.ArchiveEntry, error) {
	query := `SELECT ` + plantColumns + ` FROM plants WHERE id = ?`
	e, err := scanPlant(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("plant %s: %w", id, ErrNotFound)
	}
	return e, err
}

func (r *SQLitePlantRepo) List(ctx context.Context) ([]*domain.ArchiveEntry, error) {
	query := `SELECT ` + plantColumns + ` FROM plants ORDER BY finished_ns, rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing plants: %w", err)
	}
	defer rows.Close()

	var entries []*domain.ArchiveEntry
	for rows.Next() {
		e, err := scanPlant(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SQLitePlantRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM plants`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting plants: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlant(row rowScanner) (*domain.ArchiveEntry, error) {
	var (
		e                          domain.ArchiveEntry
		species, source, finished  string
		maxAge, finalAge, duration int64
	)
	err := row.Scan(&e.ID, &species, &e.Spec.Seed, &maxAge, &finalAge, &duration, &finished, &source)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning plant: %w", err)
	}
	e.Spec.Species = domain.Species(species)
	e.Spec.MaxAge = time.Duration(maxAge)
	e.FinalAge = time.Duration(finalAge)
	e.Duration = time.Duration(duration)
	e.Source = domain.PlantSource(source)
	if e.FinishedAt, err = parseTime("finished_at", finished); err != nil {
		return nil, err
	}
	return &e, nil
}
