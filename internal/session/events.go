package session

import (
	"time"

	"github.com/alexanderramin/florodoro/internal/domain"
)

type EventKind string

const (
	EventTick               EventKind = "tick"
	EventPhaseChanged       EventKind = "phase_changed"
	EventStudyTargetReached EventKind = "study_target_reached"
	EventBreakTargetReached EventKind = "break_target_reached"
	EventPlantArchived      EventKind = "plant_archived"
	EventFinished           EventKind = "finished"
)

// Event describes something the controller did. From/To are set on phase
// changes; Entry is set when a plant was handed to the archive.
type Event struct {
	Kind    EventKind
	From    domain.Phase
	To      domain.Phase
	Elapsed time.Duration
	Entry   *domain.ArchiveEntry
}

// Archive receives finished plants and breaks. Implementations must not block
// the caller and must not fail it: storage problems are theirs to handle.
type Archive interface {
	Record(entry domain.ArchiveEntry)
	RecordBreak(record domain.BreakRecord)
}

// NopArchive discards everything.
type NopArchive struct{}

func (NopArchive) Record(domain.ArchiveEntry) {}
func (NopArchive) RecordBreak(domain.BreakRecord) {}
