package domain

import "time"

// SessionConfig holds the per-session timing parameters.
// Cycles == 0 means the session alternates study and break until reset.
type SessionConfig struct {
	StudyDuration time.Duration
	BreakDuration time.Duration
	Cycles        int
	Overstudy     bool
}

// Validate checks the invariants required before a session may start.
func (c SessionConfig) Validate() error {
	if c.StudyDuration <= 0 {
		return &ConfigError{Field: "study duration", Reason: "must be positive"}
	}
	if c.BreakDuration <= 0 {
		return &ConfigError{Field: "break duration", Reason: "must be positive"}
	}
	if c.Cycles < 0 {
		return &ConfigError{Field: "cycles", Reason: "must not be negative"}
	}
	return nil
}

// Infinite reports whether the configuration disables the finished state.
func (c SessionConfig) Infinite() bool {
	return c.Cycles == 0
}

// DurationOf returns the configured duration of a running phase, or 0.
func (c SessionConfig) DurationOf(p Phase) time.Duration {
	switch p {
	case PhaseStudying:
		return c.StudyDuration
	case PhaseBreaking:
		return c.BreakDuration
	default:
		return 0
	}
}

// SessionState is the mutable runtime record owned by the session controller.
type SessionState struct {
	Phase           Phase
	Elapsed         time.Duration
	CyclesCompleted int
	PausedPhase     Phase
}

// ActivePhase returns the phase the clock belongs to, looking through a pause.
func (s SessionState) ActivePhase() Phase {
	if s.Phase == PhasePaused {
		return s.PausedPhase
	}
	return s.Phase
}
