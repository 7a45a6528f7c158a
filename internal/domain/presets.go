package domain

import (
	"fmt"
	"time"
)

// Preset is a named study/break/cycles combination.
type Preset struct {
	Name     string
	StudyMin int
	BreakMin int
	Cycles   int
}

// DefaultPreset is loaded when no settings file exists.
const DefaultPreset = "Classic"

// Presets lists the built-in presets in menu order.
var Presets = []Preset{
	{Name: "Classic", StudyMin: 25, BreakMin: 5, Cycles: 4},
	{Name: "Extended", StudyMin: 45, BreakMin: 12, Cycles: 2},
	{Name: "Sitcomodoro", StudyMin: 65, BreakMin: 25, Cycles: 1},
}

// FindPreset looks up a preset by case-sensitive name.
func FindPreset(name string) (Preset, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Config converts the preset into a session configuration.
func (p Preset) Config(overstudy bool) SessionConfig {
	return SessionConfig{
		StudyDuration: time.Duration(p.StudyMin) * time.Minute,
		BreakDuration: time.Duration(p.BreakMin) * time.Minute,
		Cycles:        p.Cycles,
		Overstudy:     overstudy,
	}
}

func (p Preset) String() string {
	return fmt.Sprintf("%s (%d : %d : %d)", p.Name, p.StudyMin, p.BreakMin, p.Cycles)
}
