package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/florodoro/internal/domain"
)

type PlantRepo interface {
	Create(ctx context.Context, e *domain.ArchiveEntry) error
	GetByID(ctx context.Context, id string) (*domain.ArchiveEntry, error)
	// List returns every plant, oldest first.
	List(ctx context.Context) ([]*domain.ArchiveEntry, error)
	Count(ctx context.Context) (int, error)
}

type BreakRepo interface {
	Create(ctx context.Context, b *domain.BreakRecord) error
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*domain.BreakRecord, error)
	TotalDuration(ctx context.Context) (time.Duration, error)
}

type DailyTotalRepo interface {
	// Add accumulates study time and plants onto the day's row.
	Add(ctx context.Context, day string, study time.Duration, plants int) error
	Get(ctx context.Context, day string) (*domain.DailyTotal, error)
	// ListRange returns the rows with from <= day <= to, in day order.
	ListRange(ctx context.Context, from, to string) ([]domain.DailyTotal, error)
	TotalStudy(ctx context.Context) (time.Duration, error)
}
