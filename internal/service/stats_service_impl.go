package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/florodoro/internal/domain"
	"github.com/alexanderramin/florodoro/internal/repository"
)

type statsService struct {
	plants repository.PlantRepo
	breaks repository.BreakRepo
	days   repository.DailyTotalRepo
}

func NewStatsService(plants repository.PlantRepo, breaks repository.BreakRepo, days repository.DailyTotalRepo) StatsService {
	return &statsService{plants: plants, breaks: breaks, days: days}
}

// Summary totals the whole archive and spreads the study time of the seven
// days ending on now's date over the weekdays.
func (s *statsService) Summary(ctx context.Context, now time.Time) (*domain.Stats, error) {
	var (
		stats domain.Stats
		err   error
	)
	if stats.TotalStudy, err = s.days.TotalStudy(ctx); err != nil {
		return nil, fmt.Errorf("study total: %w", err)
	}
	if stats.TotalBreak, err = s.breaks.TotalDuration(ctx); err != nil {
		return nil, fmt.Errorf("break total: %w", err)
	}
	if stats.PlantsGrown, err = s.plants.Count(ctx); err != nil {
		return nil, fmt.Errorf("plant count: %w", err)
	}

	from := repository.DayKey(now.AddDate(0, 0, -6))
	week, err := s.days.ListRange(ctx, from, repository.DayKey(now))
	if err != nil {
		return nil, fmt.Errorf("weekly totals: %w", err)
	}
	for _, day := range week {
		stats.Weekday[mondayIndex(day.Day.Weekday())] += day.Study
	}
	return &stats, nil
}

func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}
