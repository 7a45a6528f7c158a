package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/florodoro/internal/db"
	"github.com/alexanderramin/florodoro/internal/importer"
	"github.com/alexanderramin/florodoro/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// ImportHistory writes a history file into the archive in one transaction.
// Records already present from an earlier import of the same file are
// counted as duplicates and left alone.
func (s *importService) ImportHistory(ctx context.Context, history *importer.History, opts importer.Options) (result *ImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-history",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if errs := importer.ValidateHistory(history); len(errs) > 0 {
		return nil, fmt.Errorf("invalid history: %w", errors.Join(errs...))
	}
	batch, err := importer.Convert(history, opts)
	if err != nil {
		return nil, fmt.Errorf("converting history: %w", err)
	}

	result = &ImportResult{Skipped: batch.Skipped}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		plants := repository.NewSQLitePlantRepo(tx)
		breaks := repository.NewSQLiteBreakRepo(tx)
		days := repository.NewSQLiteDailyTotalRepo(tx)

		for _, p := range batch.Plants {
			if _, err := plants.GetByID(ctx, p.ID); err == nil {
				result.Duplicates++
				continue
			} else if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			if err := plants.Create(ctx, p); err != nil {
				return err
			}
			if err := days.Add(ctx, repository.DayKey(p.FinishedAt), p.Duration, 1); err != nil {
				return err
			}
			result.Plants++
		}

		for _, b := range batch.Breaks {
			exists, err := breaks.Exists(ctx, b.ID)
			if err != nil {
				return err
			}
			if exists {
				result.Duplicates++
				continue
			}
			if err := breaks.Create(ctx, b); err != nil {
				return err
			}
			result.Breaks++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("importing history: %w", err)
	}

	fields["plants"] = result.Plants
	fields["breaks"] = result.Breaks
	fields["duplicates"] = result.Duplicates
	return result, nil
}
