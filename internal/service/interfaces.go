package service

import (
	"context"
	"time"

	"github.com/alexanderramin/florodoro/internal/domain"
	"github.com/alexanderramin/florodoro/internal/importer"
	"github.com/alexanderramin/florodoro/internal/session"
)

// ArchiveService persists finished plants and breaks in the background and
// serves the gallery. Record and RecordBreak never block and never fail.
type ArchiveService interface {
	session.Archive
	ListAll(ctx context.Context) ([]*domain.ArchiveEntry, error)
	Get(ctx context.Context, id string) (*domain.ArchiveEntry, error)
	// Close stops accepting records and waits for queued ones to be written.
	Close() error
}

type StatsService interface {
	Summary(ctx context.Context, now time.Time) (*domain.Stats, error)
}

type ImportService interface {
	ImportHistory(ctx context.Context, history *importer.History, opts importer.Options) (*ImportResult, error)
}

// ImportResult counts what an import wrote. Duplicates were already in the
// archive from an earlier import; Skipped studies carried no plant.
type ImportResult struct {
	Plants     int
	Breaks     int
	Duplicates int
	Skipped    int
}
