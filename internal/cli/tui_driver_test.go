package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/florodoro/internal/domain"
	"github.com/alexanderramin/florodoro/internal/teatest"
	"github.com/alexanderramin/florodoro/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
)

// TestDriver wraps teatest.Driver with timer-specific accessors. The driver's
// virtual clock feeds tickMsg, so every Advance is one deterministic tick.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds a timer model for app, sizes it and processes Init.
// The first tick only anchors the clock.
func NewTestDriver(t *testing.T, app *App, cfg domain.SessionConfig, species ...domain.Species) *TestDriver {
	t.Helper()

	m, err := newTimerModel(app, cfg, species, true)
	if err != nil {
		t.Fatalf("newTimerModel: %v", err)
	}
	d := teatest.New(t, m,
		teatest.WithSize(100, 40),
		teatest.WithClock(testutil.BaseTime, func(at time.Time) tea.Msg { return tickMsg(at) }),
	)
	d.DrainInit()
	d.Tick()
	return &TestDriver{Driver: d}
}

func (d *TestDriver) timer() timerModel {
	return d.Model.(timerModel)
}

func (d *TestDriver) Phase() domain.Phase {
	return d.timer().ctrl.Phase()
}

func (d *TestDriver) State() domain.SessionState {
	return d.timer().ctrl.State()
}

func (d *TestDriver) Err() error {
	return d.timer().err
}

func spaceKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
}

func windowSize(w, h int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: w, Height: h}
}
