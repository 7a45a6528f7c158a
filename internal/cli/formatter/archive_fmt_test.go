package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/florodoro/internal/domain"
	"github.com/stretchr/testify/assert"
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

var now = time.Date(2026, 3, 4, 18, 0, 0, 0, time.UTC)

func entry(id string, species domain.Species, studied, finalAge time.Duration, at time.Time) *domain.ArchiveEntry {
	return &domain.ArchiveEntry{
		ID:         id,
		Spec:       domain.PlantSpec{Species: species, Seed: 9, MaxAge: 25 * time.Minute},
		FinalAge:   finalAge,
		Duration:   studied,
		FinishedAt: at,
		Source:     domain.SourceSession,
	}
}

func TestFormatGallery_Empty(t *testing.T) {
	assert.Contains(t, stripANSI(FormatGallery(nil, now)), "No plants yet")
}

func TestFormatGallery(t *testing.T) {
	imported := entry("bbbbbbbb-2", domain.SpeciesFlower, 10*time.Minute, 10*time.Minute, now.AddDate(0, 0, -1))
	imported.Source = domain.SourceImport

	out := stripANSI(FormatGallery([]*domain.ArchiveEntry{
		entry("aaaaaaaa-1111", domain.SpeciesMaple, 25*time.Minute, 25*time.Minute, now.Add(-time.Hour)),
		imported,
	}, now))

	assert.Contains(t, out, "SPECIES")
	assert.Contains(t, out, "aaaaaaaa")
	assert.NotContains(t, out, "aaaaaaaa-1111")
	assert.Contains(t, out, "Maple")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, " 40%")
	assert.Contains(t, out, "Today 17:00")
	assert.Contains(t, out, "Yesterday 18:00 (imported)")
	assert.Contains(t, out, "2 plants")
}

func TestFormatPlant(t *testing.T) {
	e := entry("abc", domain.SpeciesSpruce, 25*time.Minute, 25*time.Minute, now)
	out := stripANSI(FormatPlant(e, "  #  ", 12*time.Minute))
	assert.Contains(t, out, "SPRUCE")
	assert.Contains(t, out, "#")
	assert.Contains(t, out, "12:00 of 25:00")
	assert.Contains(t, out, "Mar 4, 2026 18:00")
}

func TestFormatStats(t *testing.T) {
	st := &domain.Stats{
		TotalStudy:  3 * time.Hour,
		TotalBreak:  17 * time.Minute,
		PlantsGrown: 6,
		Weekday:     [7]time.Duration{25 * time.Minute, 0, 50 * time.Minute},
	}
	out := stripANSI(FormatStats(st, now))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Contains(t, out, "Total study:  3h")
	assert.Contains(t, out, "Plants grown: 6")
	// The chart ends on today (Wednesday) with the peak day at full width.
	last := lines[len(lines)-1]
	assert.True(t, strings.HasPrefix(last, "Wed"), last)
	assert.Contains(t, last, strings.Repeat(filledBlock, 24))
	assert.Contains(t, last, "50m")
	assert.True(t, strings.HasPrefix(lines[len(lines)-7], "Thu"))
}

func TestFormatPresets_MarksCurrent(t *testing.T) {
	current := domain.Presets[1].Config(true)
	out := stripANSI(FormatPresets(domain.Presets, current))
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Extended") {
			assert.Contains(t, line, "●")
		}
		if strings.Contains(line, "Classic") {
			assert.NotContains(t, line, "●")
		}
	}
	assert.Contains(t, out, "45m")
}
