package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/florodoro/internal/db"
	"github.com/alexanderramin/florodoro/internal/domain"
	"github.com/alexanderramin/florodoro/internal/repository"
	"github.com/google/uuid"
)

// DefaultArchiveQueue is the number of records that may wait for the writer.
const DefaultArchiveQueue = 64

// ArchiveOptions tunes NewArchiveService. Zero values pick the defaults.
type ArchiveOptions struct {
	QueueSize int
	Logger    *slog.Logger
	Observer  UseCaseObserver
}

type archiveJob struct {
	plant *domain.ArchiveEntry
	brk   *domain.BreakRecord
}

func (j archiveJob) op() string {
	if j.plant != nil {
		return "plant"
	}
	return "break"
}

func (j archiveJob) id() string {
	if j.plant != nil {
		return j.plant.ID
	}
	return j.brk.ID
}

type archiveService struct {
	plants   repository.PlantRepo
	uow      db.UnitOfWork
	logger   *slog.Logger
	observer UseCaseObserver

	mu     sync.RWMutex
	closed bool
	jobs   chan archiveJob
	done   chan struct{}
}

// NewArchiveService starts the background writer. Callers must Close the
// service to flush pending records.
func NewArchiveService(plants repository.PlantRepo, uow db.UnitOfWork, opts ArchiveOptions) ArchiveService {
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultArchiveQueue
	}
	if opts.Logger == nil {
		opts.Logger = NewLogger(nil, false)
	}
	s := &archiveService{
		plants:   plants,
		uow:      uow,
		logger:   opts.Logger,
		observer: useCaseObserverOrNoop([]UseCaseObserver{opts.Observer}),
		jobs:     make(chan archiveJob, opts.QueueSize),
		done:     make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *archiveService) Record(entry domain.ArchiveEntry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Source == "" {
		entry.Source = domain.SourceSession
	}
	s.enqueue(archiveJob{plant: &entry})
}

func (s *archiveService) RecordBreak(record domain.BreakRecord) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	s.enqueue(archiveJob{brk: &record})
}

func (s *archiveService) enqueue(job archiveJob) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.logger.Warn("archive closed, dropping record", "op", job.op(), "id", job.id())
		return
	}
	select {
	case s.jobs <- job:
	default:
		s.logger.Error("archive queue full, dropping record", "op", job.op(), "id", job.id())
	}
}

func (s *archiveService) run() {
	defer close(s.done)
	for job := range s.jobs {
		s.write(job)
	}
}

func (s *archiveService) write(job archiveJob) {
	ctx := context.Background()
	startedAt := time.Now()

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if job.brk != nil {
			return repository.NewSQLiteBreakRepo(tx).Create(ctx, job.brk)
		}
		p := job.plant
		if err := repository.NewSQLitePlantRepo(tx).Create(ctx, p); err != nil {
			return err
		}
		return repository.NewSQLiteDailyTotalRepo(tx).Add(ctx, repository.DayKey(p.FinishedAt), p.Duration, 1)
	})
	if err != nil {
		err = &domain.ArchiveWriteError{Op: job.op(), ID: job.id(), Err: err}
	}

	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "archive-" + job.op(),
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    map[string]any{"id": job.id()},
	})
	if err != nil {
		s.logger.Error("archive write failed", "op", job.op(), "id", job.id(), "error", err)
	}
}

func (s *archiveService) ListAll(ctx context.Context) ([]*domain.ArchiveEntry, error) {
	return s.plants.List(ctx)
}

func (s *archiveService) Get(ctx context.Context, id string) (*domain.ArchiveEntry, error) {
	return s.plants.GetByID(ctx, id)
}

func (s *archiveService) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errors.New("archive already closed")
	}
	s.closed = true
	close(s.jobs)
	s.mu.Unlock()

	<-s.done
	return nil
}
