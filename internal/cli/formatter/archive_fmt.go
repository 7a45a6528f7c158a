package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/florodoro/internal/domain"
)

// FormatGallery renders the archived plants as a table, oldest first.
func FormatGallery(entries []*domain.ArchiveEntry, now time.Time) string {
	if len(entries) == 0 {
		return Dim("No plants yet. Study to grow one.") + "\n"
	}

	headers := []string{"#", "ID", "SPECIES", "STUDIED", "GROWN", "FINISHED"}
	table := make([][]string, 0, len(entries))
	for i, e := range entries {
		grown := domain.PlantInstance{Spec: e.Spec, Age: e.FinalAge}.Progress()
		finished := HumanDateFrom(e.FinishedAt, now) + " " + e.FinishedAt.Format("15:04")
		if e.Source == domain.SourceImport {
			finished += Dim(" (imported)")
		}
		table = append(table, []string{
			strconv.Itoa(i + 1),
			TruncID(e.ID),
			SpeciesBadge(e.Spec.Species),
			FormatDuration(e.Duration),
			fmt.Sprintf("%3.0f%%", grown*100),
			finished,
		})
	}
	return RenderTable(headers, table, 0, 3, 4) + Dim(fmt.Sprintf("%d plants", len(entries))) + "\n"
}

// FormatPlant frames a rendered plant with its archive details.
func FormatPlant(e *domain.ArchiveEntry, plant string, age time.Duration) string {
	var b strings.Builder
	b.WriteString(plant)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s\n", Dim("id:      "), e.ID)
	fmt.Fprintf(&b, "%s %s\n", Dim("studied: "), FormatDuration(e.Duration))
	fmt.Fprintf(&b, "%s %s of %s\n", Dim("age:     "), FormatClock(age), FormatClock(e.Spec.MaxAge))
	fmt.Fprintf(&b, "%s %s\n", Dim("finished:"), e.FinishedAt.Format("Jan 2, 2006 15:04"))
	fmt.Fprintf(&b, "%s %d", Dim("seed:    "), e.Spec.Seed)
	return RenderBox(e.Spec.Species.DisplayName(), b.String())
}

// FormatStats renders archive totals and a chart of the last seven days,
// oldest day first.
func FormatStats(st *domain.Stats, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header("Statistics"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total study:  %s\n", Bold(FormatDuration(st.TotalStudy)))
	fmt.Fprintf(&b, "Total break:  %s\n", FormatDuration(st.TotalBreak))
	fmt.Fprintf(&b, "Plants grown: %s\n\n", Bold(strconv.Itoa(st.PlantsGrown)))

	var peak time.Duration
	for _, d := range st.Weekday {
		peak = max(peak, d)
	}
	b.WriteString(Header("Last 7 days"))
	b.WriteString("\n")
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		d := st.Weekday[(int(day.Weekday())+6)%7]
		frac := 0.0
		if peak > 0 {
			frac = float64(d) / float64(peak)
		}
		fmt.Fprintf(&b, "%s  %s %s\n", day.Format("Mon"), RenderCompactBar(frac, 24, d == 0), FormatDuration(d))
	}
	return b.String()
}

// FormatPresets lists the presets, marking the one matching current.
func FormatPresets(presets []domain.Preset, current domain.SessionConfig) string {
	rows := make([][]string, 0, len(presets))
	for _, p := range presets {
		mark := " "
		cfg := p.Config(current.Overstudy)
		if cfg == current {
			mark = StyleGreen.Render("●")
		}
		rows = append(rows, []string{
			mark,
			p.Name,
			FormatMinutes(p.StudyMin),
			FormatMinutes(p.BreakMin),
			strconv.Itoa(p.Cycles),
		})
	}
	return RenderTable([]string{"", "PRESET", "STUDY", "BREAK", "CYCLES"}, rows, 4)
}
