package cli

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/florodoro/internal/cli/formatter"
	"github.com/alexanderramin/florodoro/internal/domain"
	"github.com/alexanderramin/florodoro/internal/render"
	"github.com/alexanderramin/florodoro/internal/session"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const tickInterval = 100 * time.Millisecond

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// timerModel is the bubbletea model of the study timer. Its tick message is
// the only clock the session controller sees.
type timerModel struct {
	app     *App
	ctrl    *session.Controller
	species []domain.Species
	sound   bool

	keys timerKeyMap
	help help.Model

	// canvasW and canvasH size the plant drawing; View paints a fresh canvas.
	canvasW, canvasH int

	last     time.Time
	notices  []string
	err      error
	archived int
	width    int
	quitting bool
}

func newTimerModel(app *App, cfg domain.SessionConfig, species []domain.Species, sound bool) (timerModel, error) {
	if len(species) == 0 {
		species = domain.AllSpecies
	}
	seed := uint64(app.now().UnixNano())
	ctrl, err := session.New(cfg, app.archive(),
		session.WithClock(app.now),
		session.WithSpecies(species[0]),
		session.WithSpeciesPicker(session.RandomSpecies(species, rand.New(rand.NewPCG(seed, seed>>32)))),
	)
	if err != nil {
		return timerModel{}, err
	}
	return timerModel{
		app:     app,
		ctrl:    ctrl,
		species: species,
		sound:   sound,
		keys:    defaultTimerKeys(),
		help:    help.New(),
		canvasW: 40,
		canvasH: 20,
	}, nil
}

func (m timerModel) Init() tea.Cmd {
	return tickCmd()
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		h := min(max(msg.Height-12, 6), 30)
		m.canvasW, m.canvasH = min(2*h, max(msg.Width-4, 12)), h
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		var dt time.Duration
		if !m.last.IsZero() {
			dt = now.Sub(m.last)
		}
		m.last = now
		m.handle(m.ctrl.Tick(dt))
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m timerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Reset()
		m.handle(m.ctrl.Drain())
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Study):
		m.err = m.ctrl.Start(domain.PhaseStudying)
	case key.Matches(msg, m.keys.Break):
		m.err = m.ctrl.Start(domain.PhaseBreaking)
	case key.Matches(msg, m.keys.Pause):
		if m.ctrl.Phase() == domain.PhasePaused {
			m.err = m.ctrl.Resume()
		} else {
			m.err = m.ctrl.Pause()
		}
	case key.Matches(msg, m.keys.Reset):
		m.ctrl.Reset()
	case key.Matches(msg, m.keys.Species):
		i := slices.Index(m.species, m.ctrl.Species())
		m.err = m.ctrl.SelectSpecies(m.species[(i+1)%len(m.species)])
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	default:
		return m, nil
	}
	m.handle(m.ctrl.Drain())
	return m, nil
}

// handle turns controller events into notices and bells.
func (m *timerModel) handle(events []session.Event) {
	var notices []string
	for _, e := range events {
		switch e.Kind {
		case session.EventStudyTargetReached:
			msg := "Study time is up."
			if m.ctrl.Phase() == domain.PhaseStudying {
				msg += " Keep going or press b for a break."
			}
			notices = append(notices, msg)
			m.ring()
		case session.EventBreakTargetReached:
			notices = append(notices, "Break is over.")
			m.ring()
		case session.EventPlantArchived:
			m.archived++
			notices = append(notices, fmt.Sprintf("%s added to the gallery (%s studied).",
				e.Entry.Spec.Species.DisplayName(), formatter.FormatDuration(e.Entry.Duration)))
		case session.EventFinished:
			notices = append(notices, "Session finished. Press s to start again.")
			m.ring()
		}
	}
	if len(notices) > 0 {
		m.notices = notices
	}
}

func (m *timerModel) ring() {
	if m.sound && m.app.Bell != nil {
		fmt.Fprint(m.app.Bell, "\a")
	}
}

func (m timerModel) View() string {
	if m.quitting {
		return ""
	}
	state := m.ctrl.State()
	cfg := m.ctrl.Config()

	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("FLORODORO"))
	b.WriteString("  ")
	b.WriteString(formatter.PhasePill(state.Phase))
	if state.Phase == domain.PhasePaused {
		b.WriteString(formatter.Dim(" (" + string(state.PausedPhase) + ")"))
	}
	b.WriteString("\n\n")

	clock := formatter.FormatClock(m.ctrl.RemainingDisplay())
	b.WriteString(formatter.PhaseColor(state.ActivePhase()).Bold(true).Render(clock))
	current, total := m.ctrl.Cycle()
	cycles := "∞"
	if total > 0 {
		current = min(current, total)
		cycles = fmt.Sprint(total)
	}
	b.WriteString(formatter.Dim(fmt.Sprintf("   cycle %d/%s", current, cycles)))
	if cfg.Overstudy {
		b.WriteString(formatter.Dim("   overstudy"))
	}
	b.WriteString("\n")
	if active := state.ActivePhase(); active.Running() {
		frac := float64(state.Elapsed) / float64(cfg.DurationOf(active))
		b.WriteString(formatter.RenderProgress(frac, 30))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	canvas := render.NewCanvas(m.canvasW, m.canvasH)
	if p, ok := m.ctrl.Plant(); ok {
		canvas.DrawPlant(p)
	}
	b.WriteString(canvas.Styled())
	b.WriteString("\n")
	b.WriteString(formatter.Dim("plant: "))
	b.WriteString(formatter.SpeciesBadge(m.ctrl.Species()))
	if m.archived > 0 {
		b.WriteString(formatter.Dim(fmt.Sprintf("   %d grown this session", m.archived)))
	}
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render(m.err.Error()))
		b.WriteString("\n")
	}
	if len(m.notices) > 0 {
		b.WriteString(formatter.StyleYellow.Render(strings.Join(m.notices, " ")))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
