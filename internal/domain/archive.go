package domain

import "time"

// ArchiveEntry is the persisted record of a finished plant. The gallery
// regenerates its geometry from Spec and FinalAge alone.
type ArchiveEntry struct {
	ID         string
	Spec       PlantSpec
	FinalAge   time.Duration
	Duration   time.Duration
	FinishedAt time.Time
	Source     PlantSource
}

// PlantSource tells where an archived plant came from.
type PlantSource string

const (
	SourceSession PlantSource = "session"
	SourceImport  PlantSource = "import"
)

// BreakRecord is the persisted record of a completed break.
type BreakRecord struct {
	ID         string
	Duration   time.Duration
	FinishedAt time.Time
}

// DailyTotal aggregates the study time and plants of one calendar day.
type DailyTotal struct {
	Day    time.Time
	Study  time.Duration
	Plants int
}

// Stats summarizes the archive for the statistics view.
type Stats struct {
	TotalStudy  time.Duration
	TotalBreak  time.Duration
	PlantsGrown int
	// Weekday holds study time for the last seven days, indexed Monday = 0.
	Weekday [7]time.Duration
}
