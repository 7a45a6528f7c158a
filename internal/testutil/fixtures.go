package testutil

import (
	"sync/atomic"
	"time"

	"github.com/alexanderramin/florodoro/internal/domain"
	"github.com/google/uuid"
)

var testSeedCounter atomic.Int64

// BaseTime is the default finish time of fixtures: a Monday morning.
var BaseTime = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

// Archive entry options
type EntryOption func(*domain.ArchiveEntry)

func WithSpecies(s domain.Species) EntryOption {
	return func(e *domain.ArchiveEntry) {
		e.Spec.Species = s
	}
}

func WithSeed(seed int64) EntryOption {
	return func(e *domain.ArchiveEntry) {
		e.Spec.Seed = seed
	}
}

// WithStudied sets both the studied duration and the final age.
func WithStudied(d time.Duration) EntryOption {
	return func(e *domain.ArchiveEntry) {
		e.Duration = d
		e.FinalAge = min(d, e.Spec.MaxAge)
	}
}

func WithFinishedAt(t time.Time) EntryOption {
	return func(e *domain.ArchiveEntry) {
		e.FinishedAt = t
	}
}

func WithSource(s domain.PlantSource) EntryOption {
	return func(e *domain.ArchiveEntry) {
		e.Source = s
	}
}

func WithoutID() EntryOption {
	return func(e *domain.ArchiveEntry) {
		e.ID = ""
	}
}

// NewTestEntry returns a fully grown 25 minute spruce finished at BaseTime.
func NewTestEntry(opts ...EntryOption) *domain.ArchiveEntry {
	e := &domain.ArchiveEntry{
		ID: uuid.New().String(),
		Spec: domain.PlantSpec{
			Species: domain.SpeciesSpruce,
			Seed:    testSeedCounter.Add(1),
			MaxAge:  25 * time.Minute,
		},
		FinalAge:   25 * time.Minute,
		Duration:   25 * time.Minute,
		FinishedAt: BaseTime,
		Source:     domain.SourceSession,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewTestBreak returns a break of the given length finished at BaseTime.
func NewTestBreak(d time.Duration) *domain.BreakRecord {
	return &domain.BreakRecord{
		ID:         uuid.New().String(),
		Duration:   d,
		FinishedAt: BaseTime,
	}
}
