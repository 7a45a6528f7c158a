package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidTransition indicates a control action that the current phase does not accept.
	ErrInvalidTransition = errors.New("invalid phase transition")

	// ErrPhaseInProgress indicates an attempt to end a phase before its configured duration.
	ErrPhaseInProgress = errors.New("phase has not reached its duration")
)

// ConfigError reports an invalid session configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid session config: %s %s", e.Field, e.Reason)
}

// InvalidSpeciesError reports a species identifier outside the catalog.
type InvalidSpeciesError struct {
	Species Species
}

func (e *InvalidSpeciesError) Error() string {
	return fmt.Sprintf("unknown species %q", string(e.Species))
}

// InvalidAgeError reports a negative plant age.
type InvalidAgeError struct {
	Age time.Duration
}

func (e *InvalidAgeError) Error() string {
	return fmt.Sprintf("invalid plant age %s", e.Age)
}

// ArchiveWriteError wraps a storage failure while persisting a record.
// It is logged and never propagated into the session.
type ArchiveWriteError struct {
	Op  string
	ID  string
	Err error
}

func (e *ArchiveWriteError) Error() string {
	return fmt.Sprintf("archive %s %s: %v", e.Op, e.ID, e.Err)
}

func (e *ArchiveWriteError) Unwrap() error {
	return e.Err
}
