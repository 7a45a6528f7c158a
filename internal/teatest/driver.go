// Package teatest drives bubbletea models synchronously in tests.
//
// Update is called directly and every returned Cmd is run to completion
// before the next message. Cmds that wait on a timer (tea.Tick, cursor
// blinks) are dropped after a short grace period, so tests never sleep:
// models that keep time through a tick message are advanced with a virtual
// clock instead.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds the chain of Cmds run for a single message.
const MaxDrainDepth = 100

// cmdTimeout separates immediate Cmds from ones parked on a timer. Every
// tick and blink in bubbletea waits far longer than this.
const cmdTimeout = 10 * time.Millisecond

// Driver is a synchronous harness for a tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once tea.Quit has been returned. The runtime handles
	// tea.QuitMsg itself, so models rarely see it.
	Quitting bool

	clock   time.Time
	clockFn func(time.Time) tea.Msg
}

type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		updated, _ := d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
		d.Model = updated
	}
}

// WithClock gives the driver a virtual clock starting at start. Advance wraps
// each new instant with msg and sends it; this stands in for the model's own
// tea.Tick, which never fires under the driver.
func WithClock(start time.Time, msg func(time.Time) tea.Msg) Option {
	return func(d *Driver) {
		d.clock = start
		d.clockFn = msg
	}
}

// New returns a driver for model. Call DrainInit to run the model's Init.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send dispatches msg through Update and drains the resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drain(cmd, 0)
}

func (d *Driver) SendKey(msg tea.KeyMsg) {
	d.T.Helper()
	d.Send(msg)
}

// PressKey sends a single rune key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressCtrlC() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyCtrlC})
}

// Now returns the virtual clock.
func (d *Driver) Now() time.Time {
	return d.clock
}

// Tick sends the clock message for the current instant without moving time.
func (d *Driver) Tick() {
	d.T.Helper()
	if d.clockFn == nil {
		d.T.Fatal("teatest: Tick needs WithClock")
	}
	d.Send(d.clockFn(d.clock))
}

// Advance moves the virtual clock by dt and sends one clock message.
func (d *Driver) Advance(dt time.Duration) {
	d.T.Helper()
	d.clock = d.clock.Add(dt)
	d.Tick()
}

func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg := runCmd(cmd)
	switch msg := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
		updated, _ := d.Model.Update(msg)
		d.Model = updated
	default:
		updated, next := d.Model.Update(msg)
		d.Model = updated
		d.drain(next, depth+1)
	}
}

// runCmd runs cmd, giving up on it after cmdTimeout.
func runCmd(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}
