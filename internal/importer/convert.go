package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/florodoro/internal/domain"
	"github.com/google/uuid"
)

// idSpace namespaces the deterministic IDs of imported records, so importing
// the same file twice yields the same IDs.
var idSpace = uuid.MustParse("6f0b7c62-8f8e-4a53-9c1e-3d1f0c2a9b47")

// Options controls how records without a Go equivalent are filled in.
type Options struct {
	// Species are assigned to imported plants in rotation. The old plant
	// serialization cannot be decoded, so the shape is regrown from a seed.
	Species []domain.Species
	// Location reinterprets the naive timestamps of the file. Nil keeps them
	// as parsed.
	Location *time.Location
}

// Batch is the converted content of a history file.
type Batch struct {
	Plants  []*domain.ArchiveEntry
	Breaks  []*domain.BreakRecord
	Skipped int
}

// Convert transforms a validated history into archive records.
// Call ValidateHistory first; Convert assumes the history is valid.
func Convert(h *History, opts Options) (*Batch, error) {
	species := opts.Species
	if len(species) == 0 {
		species = domain.AllSpecies
	}
	for _, s := range species {
		if !s.Valid() {
			return nil, &domain.InvalidSpeciesError{Species: s}
		}
	}

	batch := &Batch{}
	for _, s := range h.Studies {
		if !s.HasPlant() {
			batch.Skipped++
			continue
		}
		at := relocate(s.Date, opts.Location)
		d := minutes(s.Duration)
		batch.Plants = append(batch.Plants, &domain.ArchiveEntry{
			ID: recordID("study", at),
			Spec: domain.PlantSpec{
				Species: species[len(batch.Plants)%len(species)],
				Seed:    at.UnixNano(),
				MaxAge:  d,
			},
			FinalAge:   d,
			Duration:   d,
			FinishedAt: at,
			Source:     domain.SourceImport,
		})
	}

	for _, b := range h.Breaks {
		at := relocate(b.Date, opts.Location)
		batch.Breaks = append(batch.Breaks, &domain.BreakRecord{
			ID:         recordID("break", at),
			Duration:   minutes(b.Duration),
			FinishedAt: at,
		})
	}
	return batch, nil
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute)).Round(time.Second)
}

func relocate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

func recordID(kind string, at time.Time) string {
	return uuid.NewSHA1(idSpace, []byte(fmt.Sprintf("%s/%s", kind, at.Format(time.RFC3339Nano)))).String()
}
