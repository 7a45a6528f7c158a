// Package session drives a study session: the study/break state machine, the
// plant growing during study and the hand-off of finished plants to the
// archive.
//
// The controller has no clock of its own. Callers advance it with Tick and
// drive it with the control methods; all methods must be called from a single
// goroutine.
package session

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"time"

	"github.com/alexanderramin/florodoro/internal/domain"
	"github.com/alexanderramin/florodoro/internal/growth"
)

// Option customizes a Controller.
type Option func(*Controller)

// WithClock sets the wall clock used to stamp archive records.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithSeedSource sets the generator of plant seeds.
func WithSeedSource(seed func() int64) Option {
	return func(c *Controller) { c.seed = seed }
}

// WithSpecies sets the species of the first plant.
func WithSpecies(s domain.Species) Option {
	return func(c *Controller) { c.species = s }
}

// WithSpeciesPicker sets how the species of each new study plant is chosen.
// A species selected outside a study phase still wins for the next plant.
func WithSpeciesPicker(pick func() domain.Species) Option {
	return func(c *Controller) { c.pick = pick }
}

// RandomSpecies picks uniformly from species.
func RandomSpecies(species []domain.Species, r *rand.Rand) func() domain.Species {
	return func() domain.Species {
		return species[r.IntN(len(species))]
	}
}

type Controller struct {
	pending domain.SessionConfig
	cfg     domain.SessionConfig
	state   domain.SessionState
	species domain.Species
	pick    func() domain.Species
	// chosen marks a species selected for the next plant.
	chosen bool

	plant *growth.Engine
	// plantFrom is the study elapsed time at which the current plant sprouted.
	plantFrom time.Duration
	// notified is set once the running phase reached its duration.
	notified bool

	archive Archive
	now     func() time.Time
	seed    func() int64
	outbox  []Event
}

// New returns an idle controller. The configuration is validated up front so
// a misconfigured controller is never handed out.
func New(cfg domain.SessionConfig, archive Archive, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if archive == nil {
		archive = NopArchive{}
	}
	c := &Controller{
		pending: cfg,
		cfg:     cfg,
		state:   domain.SessionState{Phase: domain.PhaseIdle},
		species: domain.SpeciesSpruce,
		archive: archive,
		now:     time.Now,
		seed:    rand.Int64,
	}
	for _, opt := range opts {
		opt(c)
	}
	if !c.species.Valid() {
		return nil, &domain.InvalidSpeciesError{Species: c.species}
	}
	return c, nil
}

// SetConfig stores the configuration used by the next session started from
// Idle or Finished. A running session keeps the configuration it started with.
func (c *Controller) SetConfig(cfg domain.SessionConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.pending = cfg
	return nil
}

// Start begins a study or break phase.
//
// From Idle or Finished it opens a new session. While studying, Start(Breaking)
// ends the study phase early only once its duration has been reached (the
// overstudy case), and likewise for Start(Studying) while breaking.
func (c *Controller) Start(phase domain.Phase) error {
	if !phase.Running() {
		return fmt.Errorf("%w: cannot start %s", domain.ErrInvalidTransition, phase)
	}

	switch c.state.Phase {
	case domain.PhaseIdle, domain.PhaseFinished:
		if err := c.pending.Validate(); err != nil {
			return err
		}
		from := c.state.Phase
		c.cfg = c.pending
		c.state = domain.SessionState{Phase: phase}
		c.notified = false
		c.plant = nil
		if phase == domain.PhaseStudying {
			c.pickSpecies()
			c.sproutPlant(0)
		}
		c.emit(Event{Kind: EventPhaseChanged, From: from, To: phase})
		return nil

	case domain.PhaseStudying, domain.PhaseBreaking:
		current := c.state.Phase
		if phase == current {
			return fmt.Errorf("%w: already %s", domain.ErrInvalidTransition, current)
		}
		if c.state.Elapsed < c.cfg.DurationOf(current) {
			return fmt.Errorf("%w: %s at %s of %s", domain.ErrPhaseInProgress,
				current, c.state.Elapsed.Round(time.Second), c.cfg.DurationOf(current))
		}
		if current == domain.PhaseStudying {
			c.finishStudy()
		} else {
			c.finishBreak()
		}
		return nil

	default:
		return fmt.Errorf("%w: cannot start %s while %s", domain.ErrInvalidTransition, phase, c.state.Phase)
	}
}

// Pause freezes the running phase. It changes nothing but the phase.
func (c *Controller) Pause() error {
	if !c.state.Phase.Running() {
		return fmt.Errorf("%w: cannot pause while %s", domain.ErrInvalidTransition, c.state.Phase)
	}
	from := c.state.Phase
	c.state.PausedPhase = from
	c.state.Phase = domain.PhasePaused
	c.emit(Event{Kind: EventPhaseChanged, From: from, To: domain.PhasePaused, Elapsed: c.state.Elapsed})
	return nil
}

// Resume returns to the phase that was paused.
func (c *Controller) Resume() error {
	if c.state.Phase != domain.PhasePaused {
		return fmt.Errorf("%w: cannot resume while %s", domain.ErrInvalidTransition, c.state.Phase)
	}
	to := c.state.PausedPhase
	c.state.Phase = to
	c.state.PausedPhase = ""
	c.emit(Event{Kind: EventPhaseChanged, From: domain.PhasePaused, To: to, Elapsed: c.state.Elapsed})
	return nil
}

// Reset abandons the session and returns to Idle. A plant that has grown at
// all is archived at its current age.
func (c *Controller) Reset() {
	from := c.state.Phase
	if from == domain.PhaseIdle {
		return
	}
	if c.state.ActivePhase() == domain.PhaseStudying && c.plant != nil {
		c.archivePlant(c.plant.Snapshot())
	}
	c.state = domain.SessionState{Phase: domain.PhaseIdle}
	c.plant = nil
	c.notified = false
	c.emit(Event{Kind: EventPhaseChanged, From: from, To: domain.PhaseIdle})
}

// SelectSpecies changes the species of the plant. Mid-study, the current plant
// is completed and archived, and a new plant of the chosen species sprouts
// from the current elapsed time. Otherwise the species is used for the next
// plant in place of the picker.
func (c *Controller) SelectSpecies(s domain.Species) error {
	if !s.Valid() {
		return &domain.InvalidSpeciesError{Species: s}
	}
	studying := c.state.ActivePhase() == domain.PhaseStudying && c.plant != nil
	c.chosen = !studying
	if s == c.species {
		return nil
	}
	c.species = s
	if !studying {
		return nil
	}
	c.archivePlant(c.plant.Complete())
	c.sproutPlant(c.state.Elapsed)
	return nil
}

// Tick advances the running phase by dt and returns the events produced since
// the previous Tick, including those caused by control methods in between.
// At most one phase transition happens per tick; time past the end of a phase
// is not carried into the next one.
func (c *Controller) Tick(dt time.Duration) []Event {
	if dt <= 0 || !c.state.Phase.Running() {
		return c.Drain()
	}
	phase := c.state.Phase
	target := c.cfg.DurationOf(phase)
	c.state.Elapsed += dt
	overrun := c.state.Elapsed >= target

	// Without overstudy the clock stops at the phase duration.
	holds := c.cfg.Overstudy && !(phase == domain.PhaseBreaking && c.finalCycle())
	if overrun && !holds {
		c.state.Elapsed = target
	}
	c.growPlant()
	c.emit(Event{Kind: EventTick, To: phase, Elapsed: c.state.Elapsed})

	if !overrun {
		return c.Drain()
	}
	if !c.notified {
		c.notified = true
		kind := EventStudyTargetReached
		if phase == domain.PhaseBreaking {
			kind = EventBreakTargetReached
		}
		c.emit(Event{Kind: kind, To: phase, Elapsed: c.state.Elapsed})
	}
	if holds {
		return c.Drain()
	}
	if phase == domain.PhaseStudying {
		c.finishStudy()
	} else {
		c.finishBreak()
	}
	return c.Drain()
}

// Drain returns and clears the pending events.
func (c *Controller) Drain() []Event {
	out := c.outbox
	c.outbox = nil
	return out
}

func (c *Controller) Phase() domain.Phase {
	return c.state.Phase
}

// State returns a copy of the runtime state.
func (c *Controller) State() domain.SessionState {
	return c.state
}

// Config returns the configuration of the running session, or the one the
// next session will use when none is running.
func (c *Controller) Config() domain.SessionConfig {
	switch c.state.Phase {
	case domain.PhaseIdle, domain.PhaseFinished:
		return c.pending
	default:
		return c.cfg
	}
}

func (c *Controller) Species() domain.Species {
	return c.species
}

// Cycle returns the 1-based cycle in progress and the configured total
// (0 for endless sessions).
func (c *Controller) Cycle() (current, total int) {
	return c.state.CyclesCompleted + 1, c.cfg.Cycles
}

// RemainingDisplay returns the time left in the active phase rounded up to
// whole seconds. Once a phase runs past its duration the value is pinned at
// minus one second; exactly at the duration it is zero. It is zero when no
// phase is active.
func (c *Controller) RemainingDisplay() time.Duration {
	phase := c.state.ActivePhase()
	if !phase.Running() {
		return 0
	}
	remaining := c.cfg.DurationOf(phase) - c.state.Elapsed
	if remaining < 0 {
		return -time.Second
	}
	if r := remaining % time.Second; r != 0 {
		remaining += time.Second - r
	}
	return remaining
}

// Plant returns a snapshot of the growing plant, if there is one.
func (c *Controller) Plant() (domain.PlantInstance, bool) {
	if c.plant == nil {
		return domain.PlantInstance{}, false
	}
	return c.plant.Snapshot(), true
}

// Structure yields the nodes of the growing plant.
func (c *Controller) Structure() iter.Seq[domain.GrowthNode] {
	if c.plant == nil {
		return func(func(domain.GrowthNode) bool) {}
	}
	return c.plant.Nodes()
}

func (c *Controller) finalCycle() bool {
	return !c.cfg.Infinite() && c.state.CyclesCompleted+1 >= c.cfg.Cycles
}

func (c *Controller) finishStudy() {
	c.growPlant()
	c.archivePlant(c.plant.Snapshot())
	c.plant = nil
	c.enter(domain.PhaseBreaking)
}

func (c *Controller) finishBreak() {
	c.archive.RecordBreak(domain.BreakRecord{Duration: c.state.Elapsed, FinishedAt: c.now()})
	c.state.CyclesCompleted++
	if !c.cfg.Infinite() && c.state.CyclesCompleted >= c.cfg.Cycles {
		c.enter(domain.PhaseFinished)
		c.emit(Event{Kind: EventFinished, To: domain.PhaseFinished})
		return
	}
	c.enter(domain.PhaseStudying)
	c.pickSpecies()
	c.sproutPlant(0)
}

// pickSpecies chooses the species of the plant about to sprout.
func (c *Controller) pickSpecies() {
	if c.chosen {
		c.chosen = false
		return
	}
	if c.pick == nil {
		return
	}
	if s := c.pick(); s.Valid() {
		c.species = s
	}
}

func (c *Controller) enter(phase domain.Phase) {
	from := c.state.Phase
	c.state.Phase = phase
	c.state.Elapsed = 0
	c.notified = false
	c.emit(Event{Kind: EventPhaseChanged, From: from, To: phase})
}

func (c *Controller) sproutPlant(at time.Duration) {
	engine, err := growth.NewEngine(domain.PlantSpec{
		Species: c.species,
		Seed:    c.seed(),
		MaxAge:  c.cfg.StudyDuration,
	})
	if err == nil {
		err = engine.Grow(0)
	}
	if err != nil {
		// Species and MaxAge are validated before any plant sprouts.
		panic(fmt.Sprintf("session: sprout plant: %v", err))
	}
	c.plant = engine
	c.plantFrom = at
}

func (c *Controller) growPlant() {
	if c.plant == nil || c.state.Phase != domain.PhaseStudying {
		return
	}
	if err := c.plant.Grow(c.state.Elapsed - c.plantFrom); err != nil {
		panic(fmt.Sprintf("session: grow plant: %v", err))
	}
}

// archivePlant hands a plant with any growth time to the archive.
func (c *Controller) archivePlant(p domain.PlantInstance) {
	studied := c.state.Elapsed - c.plantFrom
	if c.plant == nil || studied <= 0 {
		return
	}
	entry := domain.ArchiveEntry{
		Spec:       p.Spec,
		FinalAge:   p.Age,
		Duration:   studied,
		FinishedAt: c.now(),
	}
	c.archive.Record(entry)
	c.emit(Event{Kind: EventPlantArchived, Elapsed: studied, Entry: &entry})
}

func (c *Controller) emit(e Event) {
	c.outbox = append(c.outbox, e)
}
