package session

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/alexanderramin/florodoro/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingArchive struct {
	entries []domain.ArchiveEntry
	breaks  []domain.BreakRecord
}

func (a *recordingArchive) Record(e domain.ArchiveEntry) { a.entries = append(a.entries, e) }
func (a *recordingArchive) RecordBreak(b domain.BreakRecord) { a.breaks = append(a.breaks, b) }

var fixedNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func newController(t *testing.T, cfg domain.SessionConfig) (*Controller, *recordingArchive) {
	t.Helper()
	archive := &recordingArchive{}
	seed := int64(0)
	c, err := New(cfg, archive,
		WithClock(func() time.Time { return fixedNow }),
		WithSeedSource(func() int64 { seed++; return seed }),
	)
	require.NoError(t, err)
	return c, archive
}

func classic(cycles int, overstudy bool) domain.SessionConfig {
	return domain.SessionConfig{
		StudyDuration: 25 * time.Minute,
		BreakDuration: 5 * time.Minute,
		Cycles:        cycles,
		Overstudy:     overstudy,
	}
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, 0, len(events))
	for _, e := range events {
		out = append(out, e.Kind)
	}
	return out
}

func TestController_FiniteCyclesFinish(t *testing.T) {
	c, archive := newController(t, classic(2, false))
	require.NoError(t, c.Start(domain.PhaseStudying))

	c.Tick(25 * time.Minute)
	assert.Equal(t, domain.PhaseBreaking, c.Phase())
	c.Tick(5 * time.Minute)
	assert.Equal(t, domain.PhaseStudying, c.Phase())
	cur, total := c.Cycle()
	assert.Equal(t, 2, cur)
	assert.Equal(t, 2, total)

	c.Tick(25 * time.Minute)
	assert.Equal(t, domain.PhaseBreaking, c.Phase())
	events := c.Tick(5 * time.Minute)

	assert.Equal(t, domain.PhaseFinished, c.Phase())
	assert.Contains(t, kinds(events), EventFinished)
	assert.Equal(t, 2, c.State().CyclesCompleted)
	require.Len(t, archive.entries, 2)
	require.Len(t, archive.breaks, 2)
	for _, e := range archive.entries {
		assert.Equal(t, 25*time.Minute, e.Duration)
		assert.Equal(t, 25*time.Minute, e.FinalAge)
		assert.Equal(t, fixedNow, e.FinishedAt)
	}
	assert.NotEqual(t, archive.entries[0].Spec.Seed, archive.entries[1].Spec.Seed)
	assert.Equal(t, 5*time.Minute, archive.breaks[0].Duration)

	_, ok := c.Plant()
	assert.False(t, ok, "no plant grows once finished")
	assert.Empty(t, c.Tick(time.Minute), "finished sessions do not tick")
}

func TestController_InfiniteCyclesKeepGoing(t *testing.T) {
	c, archive := newController(t, classic(0, false))
	require.NoError(t, c.Start(domain.PhaseStudying))

	for i := 0; i < 3; i++ {
		c.Tick(25 * time.Minute)
		c.Tick(5 * time.Minute)
	}

	assert.Equal(t, domain.PhaseStudying, c.Phase())
	assert.Equal(t, 3, c.State().CyclesCompleted)
	cur, total := c.Cycle()
	assert.Equal(t, 4, cur)
	assert.Equal(t, 0, total)
	assert.Len(t, archive.entries, 3)
}

func TestController_LeftoverTickIsDiscarded(t *testing.T) {
	c, archive := newController(t, classic(4, false))
	require.NoError(t, c.Start(domain.PhaseStudying))

	c.Tick(40 * time.Minute)

	assert.Equal(t, domain.PhaseBreaking, c.Phase())
	assert.Equal(t, time.Duration(0), c.State().Elapsed)
	require.Len(t, archive.entries, 1)
	assert.Equal(t, 25*time.Minute, archive.entries[0].Duration)
}

func TestController_RemainingDisplayFloor(t *testing.T) {
	c, _ := newController(t, domain.SessionConfig{
		StudyDuration: time.Minute,
		BreakDuration: time.Minute,
		Cycles:        1,
		Overstudy:     true,
	})
	assert.Equal(t, time.Duration(0), c.RemainingDisplay(), "idle")

	require.NoError(t, c.Start(domain.PhaseStudying))
	assert.Equal(t, time.Minute, c.RemainingDisplay())

	c.Tick(59*time.Second + 500*time.Millisecond)
	assert.Equal(t, time.Second, c.RemainingDisplay(), "partial seconds round up")

	c.Tick(500 * time.Millisecond)
	assert.Equal(t, time.Duration(0), c.RemainingDisplay(), "exactly at the duration")
	assert.Equal(t, domain.PhaseStudying, c.Phase())

	c.Tick(time.Millisecond)
	assert.Equal(t, -time.Second, c.RemainingDisplay())

	c.Tick(10 * time.Minute)
	assert.Equal(t, -time.Second, c.RemainingDisplay(), "display never goes below minus one")
	assert.Equal(t, 11*time.Minute+time.Millisecond, c.State().Elapsed, "underlying elapsed keeps counting")

	require.NoError(t, c.Pause())
	assert.Equal(t, -time.Second, c.RemainingDisplay(), "pause reports the paused phase")
}

func TestController_NoOverstudyClampsAtDuration(t *testing.T) {
	c, archive := newController(t, classic(1, false))
	require.NoError(t, c.Start(domain.PhaseStudying))
	c.Drain()

	events := c.Tick(26 * time.Minute)

	assert.Equal(t, []EventKind{EventTick, EventStudyTargetReached, EventPlantArchived, EventPhaseChanged}, kinds(events))
	assert.Equal(t, 25*time.Minute, events[0].Elapsed)
	assert.Equal(t, 5*time.Minute, c.RemainingDisplay())
	require.Len(t, archive.entries, 1)
	assert.Equal(t, archive.entries[0], *events[2].Entry)
}

func TestController_PauseResumeIsIdentity(t *testing.T) {
	c, _ := newController(t, classic(4, false))
	require.NoError(t, c.Start(domain.PhaseStudying))
	c.Tick(7 * time.Minute)

	state := c.State()
	plant, ok := c.Plant()
	require.True(t, ok)

	require.NoError(t, c.Pause())
	assert.Equal(t, domain.PhasePaused, c.Phase())
	c.Tick(5 * time.Minute)
	assert.Equal(t, 7*time.Minute, c.State().Elapsed, "paused sessions do not accrue time")
	require.NoError(t, c.Resume())

	assert.Equal(t, state, c.State())
	after, _ := c.Plant()
	assert.Equal(t, plant, after)
}

func TestController_PauseResumeRejectsWrongPhase(t *testing.T) {
	c, _ := newController(t, classic(4, false))
	assert.ErrorIs(t, c.Pause(), domain.ErrInvalidTransition)
	assert.ErrorIs(t, c.Resume(), domain.ErrInvalidTransition)

	require.NoError(t, c.Start(domain.PhaseStudying))
	assert.ErrorIs(t, c.Resume(), domain.ErrInvalidTransition)
	require.NoError(t, c.Pause())
	assert.ErrorIs(t, c.Pause(), domain.ErrInvalidTransition)
	assert.ErrorIs(t, c.Start(domain.PhaseBreaking), domain.ErrInvalidTransition)
}

func TestController_SpeciesSwitchArchivesFullGrownPlant(t *testing.T) {
	c, archive := newController(t, domain.SessionConfig{
		StudyDuration: 20 * time.Minute,
		BreakDuration: 5 * time.Minute,
		Cycles:        1,
	})
	require.NoError(t, c.Start(domain.PhaseStudying))
	c.Tick(10 * time.Minute)

	require.NoError(t, c.SelectSpecies(domain.SpeciesMaple))

	require.Len(t, archive.entries, 1)
	old := archive.entries[0]
	assert.Equal(t, domain.SpeciesSpruce, old.Spec.Species)
	assert.Equal(t, 20*time.Minute, old.FinalAge)
	assert.Equal(t, 10*time.Minute, old.Duration)

	plant, ok := c.Plant()
	require.True(t, ok)
	assert.Equal(t, domain.SpeciesMaple, plant.Spec.Species)
	assert.Equal(t, time.Duration(0), plant.Age)

	c.Tick(5 * time.Minute)
	plant, _ = c.Plant()
	assert.Equal(t, 5*time.Minute, plant.Age)
	assert.Equal(t, 15*time.Minute, c.State().Elapsed, "the phase clock is unaffected")

	c.Tick(5 * time.Minute)
	require.Len(t, archive.entries, 2)
	assert.Equal(t, domain.SpeciesMaple, archive.entries[1].Spec.Species)
	assert.Equal(t, 10*time.Minute, archive.entries[1].Duration)
}

func TestController_SelectSpecies(t *testing.T) {
	c, archive := newController(t, classic(4, false))

	var speciesErr *domain.InvalidSpeciesError
	require.ErrorAs(t, c.SelectSpecies("cactus"), &speciesErr)
	assert.Equal(t, domain.SpeciesSpruce, c.Species())

	require.NoError(t, c.SelectSpecies(domain.SpeciesFlower))
	require.NoError(t, c.Start(domain.PhaseStudying))
	plant, _ := c.Plant()
	assert.Equal(t, domain.SpeciesFlower, plant.Spec.Species)

	// A switch before any growth leaves nothing to archive.
	require.NoError(t, c.SelectSpecies(domain.SpeciesMaple))
	assert.Empty(t, archive.entries)
}

func TestController_ConfigErrorLeavesStateUntouched(t *testing.T) {
	_, err := New(domain.SessionConfig{BreakDuration: time.Minute}, nil)
	var cfgErr *domain.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "study duration", cfgErr.Field)

	c, _ := newController(t, classic(4, false))
	before := c.State()
	err = c.SetConfig(domain.SessionConfig{StudyDuration: time.Minute, BreakDuration: time.Minute, Cycles: -1})
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "cycles", cfgErr.Field)
	assert.Equal(t, before, c.State())
	assert.Equal(t, classic(4, false), c.Config())
}

func TestController_SetConfigAppliesToNextSession(t *testing.T) {
	c, _ := newController(t, classic(4, false))
	require.NoError(t, c.Start(domain.PhaseStudying))

	next := domain.SessionConfig{StudyDuration: 45 * time.Minute, BreakDuration: 12 * time.Minute, Cycles: 2}
	require.NoError(t, c.SetConfig(next))
	assert.Equal(t, classic(4, false), c.Config(), "running session keeps its configuration")

	c.Reset()
	assert.Equal(t, next, c.Config())
	require.NoError(t, c.Start(domain.PhaseStudying))
	assert.Equal(t, 45*time.Minute, c.RemainingDisplay())
}

func TestController_ManualAdvance(t *testing.T) {
	c, archive := newController(t, classic(3, true))
	require.NoError(t, c.Start(domain.PhaseStudying))

	c.Tick(10 * time.Minute)
	assert.ErrorIs(t, c.Start(domain.PhaseBreaking), domain.ErrPhaseInProgress)
	assert.ErrorIs(t, c.Start(domain.PhaseStudying), domain.ErrInvalidTransition)

	c.Tick(20 * time.Minute)
	assert.Equal(t, domain.PhaseStudying, c.Phase(), "overstudy holds the phase")
	require.NoError(t, c.Start(domain.PhaseBreaking))

	assert.Equal(t, domain.PhaseBreaking, c.Phase())
	require.Len(t, archive.entries, 1)
	assert.Equal(t, 30*time.Minute, archive.entries[0].Duration)
	assert.Equal(t, 25*time.Minute, archive.entries[0].FinalAge, "growth stops at the study duration")

	c.Tick(8 * time.Minute)
	assert.Equal(t, domain.PhaseBreaking, c.Phase(), "overbreak holds the phase")
	require.NoError(t, c.Start(domain.PhaseStudying))
	assert.Equal(t, 1, c.State().CyclesCompleted)
	require.Len(t, archive.breaks, 1)
	assert.Equal(t, 8*time.Minute, archive.breaks[0].Duration)
}

func TestController_OverstudyTargetNotifiesOnce(t *testing.T) {
	c, _ := newController(t, classic(2, true))
	require.NoError(t, c.Start(domain.PhaseStudying))

	var reached int
	for i := 0; i < 40; i++ {
		for _, e := range c.Tick(time.Minute) {
			if e.Kind == EventStudyTargetReached {
				reached++
			}
		}
	}
	assert.Equal(t, 1, reached)
	assert.Equal(t, 40*time.Minute, c.State().Elapsed)
}

func TestController_FinalBreakEndsEvenWithOverstudy(t *testing.T) {
	c, _ := newController(t, classic(1, true))
	require.NoError(t, c.Start(domain.PhaseStudying))
	c.Tick(25 * time.Minute)
	require.NoError(t, c.Start(domain.PhaseBreaking))

	c.Tick(5 * time.Minute)
	assert.Equal(t, domain.PhaseFinished, c.Phase())
}

func TestController_StandaloneBreak(t *testing.T) {
	c, archive := newController(t, classic(1, false))
	require.NoError(t, c.Start(domain.PhaseBreaking))
	_, ok := c.Plant()
	assert.False(t, ok, "breaks grow nothing")

	c.Tick(5 * time.Minute)
	assert.Equal(t, domain.PhaseFinished, c.Phase())
	assert.Len(t, archive.breaks, 1)
	assert.Empty(t, archive.entries)

	// Finished sessions can be restarted.
	require.NoError(t, c.Start(domain.PhaseStudying))
	assert.Equal(t, 0, c.State().CyclesCompleted)
}

func TestController_ResetArchivesGrowingPlant(t *testing.T) {
	c, archive := newController(t, classic(4, false))
	require.NoError(t, c.Start(domain.PhaseStudying))
	c.Tick(12 * time.Minute)
	require.NoError(t, c.Pause())

	c.Reset()

	assert.Equal(t, domain.PhaseIdle, c.Phase())
	assert.Equal(t, domain.SessionState{Phase: domain.PhaseIdle}, c.State())
	require.Len(t, archive.entries, 1)
	assert.Equal(t, 12*time.Minute, archive.entries[0].FinalAge)
	assert.Equal(t, 12*time.Minute, archive.entries[0].Duration)

	events := c.Drain()
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, EventPhaseChanged, last.Kind)
	assert.Equal(t, domain.PhasePaused, last.From)
	assert.Equal(t, domain.PhaseIdle, last.To)
}

func TestController_ResetDuringBreakArchivesNothing(t *testing.T) {
	c, archive := newController(t, classic(4, false))
	require.NoError(t, c.Start(domain.PhaseBreaking))
	c.Tick(2 * time.Minute)
	c.Reset()

	assert.Empty(t, archive.entries)
	assert.Empty(t, archive.breaks, "unfinished breaks are not recorded")
	c.Reset()
	assert.Equal(t, domain.PhaseIdle, c.Phase())
}

func TestController_StructureGrowsWithTicks(t *testing.T) {
	c, _ := newController(t, classic(4, false))
	count := func() int {
		n := 0
		for range c.Structure() {
			n++
		}
		return n
	}
	assert.Equal(t, 0, count())

	require.NoError(t, c.Start(domain.PhaseStudying))
	assert.Equal(t, 1, count(), "the trunk exists from the start")

	prev := count()
	for i := 0; i < 24; i++ {
		c.Tick(time.Minute)
		n := count()
		assert.GreaterOrEqual(t, n, prev)
		prev = n
	}
	assert.Greater(t, prev, 1)
}

func TestController_StartRejectsNonRunningPhase(t *testing.T) {
	c, _ := newController(t, classic(4, false))
	assert.ErrorIs(t, c.Start(domain.PhasePaused), domain.ErrInvalidTransition)
	assert.ErrorIs(t, c.Start(domain.PhaseFinished), domain.ErrInvalidTransition)
	assert.Equal(t, domain.PhaseIdle, c.Phase())
}

func sequencePicker(species ...domain.Species) func() domain.Species {
	i := 0
	return func() domain.Species {
		s := species[i%len(species)]
		i++
		return s
	}
}

func TestController_PickerChoosesEachStudyPlant(t *testing.T) {
	archive := &recordingArchive{}
	c, err := New(classic(3, false), archive,
		WithClock(func() time.Time { return fixedNow }),
		WithSpeciesPicker(sequencePicker(domain.SpeciesMaple, domain.SpeciesFlower, domain.SpeciesSpruce)),
	)
	require.NoError(t, err)

	require.NoError(t, c.Start(domain.PhaseStudying))
	for range 3 {
		c.Tick(25 * time.Minute)
		c.Tick(5 * time.Minute)
	}
	require.Equal(t, domain.PhaseFinished, c.Phase())

	got := make([]domain.Species, 0, len(archive.entries))
	for _, e := range archive.entries {
		got = append(got, e.Spec.Species)
	}
	assert.Equal(t, []domain.Species{domain.SpeciesMaple, domain.SpeciesFlower, domain.SpeciesSpruce}, got)
}

func TestController_SelectedSpeciesOverridesPickerOnce(t *testing.T) {
	archive := &recordingArchive{}
	c, err := New(classic(0, false), archive,
		WithSpeciesPicker(func() domain.Species { return domain.SpeciesMaple }),
	)
	require.NoError(t, err)

	require.NoError(t, c.SelectSpecies(domain.SpeciesFlower))
	require.NoError(t, c.Start(domain.PhaseStudying))
	assert.Equal(t, domain.SpeciesFlower, c.Species())

	c.Tick(25 * time.Minute)
	require.NoError(t, c.SelectSpecies(domain.SpeciesDoubleSpruce))
	c.Tick(5 * time.Minute)
	assert.Equal(t, domain.SpeciesDoubleSpruce, c.Species(), "chosen during the break")

	c.Tick(25 * time.Minute)
	c.Tick(5 * time.Minute)
	assert.Equal(t, domain.SpeciesMaple, c.Species(), "back to the picker")
}

func TestRandomSpecies_StaysWithinSet(t *testing.T) {
	enabled := []domain.Species{domain.SpeciesMaple, domain.SpeciesFlower}
	pick := RandomSpecies(enabled, rand.New(rand.NewPCG(7, 11)))
	seen := map[domain.Species]bool{}
	for range 200 {
		s := pick()
		require.Contains(t, enabled, s)
		seen[s] = true
	}
	assert.Len(t, seen, 2)
}
