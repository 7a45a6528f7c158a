// Package config loads and saves the florodoro settings file.
//
// Settings come from three layers, each overriding the previous: built-in
// defaults (the Classic preset), ~/.florodoro/config.yaml and FLORODORO_*
// environment variables:
//
//	FLORODORO_HOME, FLORODORO_DB, FLORODORO_PRESET,
//	FLORODORO_STUDY_MINUTES, FLORODORO_BREAK_MINUTES, FLORODORO_CYCLES,
//	FLORODORO_OVERSTUDY, FLORODORO_SOUND, FLORODORO_DEBUG
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexanderramin/florodoro/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	dirName    = ".florodoro"
	configFile = "config.yaml"
	dbFile     = "florodoro.db"
	logFile    = "florodoro.log"
)

// Settings is the persisted user configuration. Keys keep the names used by
// earlier florodoro releases so existing files load unchanged.
type Settings struct {
	StudyMinutes int  `yaml:"study-time"`
	BreakMinutes int  `yaml:"break-time"`
	Cycles       int  `yaml:"cycles"`
	Overstudy    bool `yaml:"overstudy"`
	Sound        bool `yaml:"sound"`
	SoundVolume  int  `yaml:"sound-volume"`
	Popups       bool `yaml:"pop-ups"`

	Spruce       bool `yaml:"spruce"`
	DoubleSpruce bool `yaml:"double spruce"`
	Maple        bool `yaml:"maple"`
	Flower       bool `yaml:"flower"`

	Debug    bool   `yaml:"debug,omitempty"`
	Database string `yaml:"database,omitempty"`
}

// Default returns the Classic preset with every species enabled.
func Default() Settings {
	s := Settings{
		Sound:        true,
		SoundVolume:  50,
		Popups:       true,
		Spruce:       true,
		DoubleSpruce: true,
		Maple:        true,
		Flower:       true,
	}
	p, _ := domain.FindPreset(domain.DefaultPreset)
	s.ApplyPreset(p)
	return s
}

// Dir returns the settings directory, FLORODORO_HOME or ~/.florodoro.
func Dir() (string, error) {
	if v := os.Getenv("FLORODORO_HOME"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// Path returns the settings file path inside Dir.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// LogPath returns the file the terminal UI logs to.
func LogPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, logFile), nil
}

// DBPath returns FLORODORO_DB, the database setting, or the default archive
// location inside Dir.
func (s Settings) DBPath() (string, error) {
	if v := os.Getenv("FLORODORO_DB"); v != "" {
		return v, nil
	}
	if s.Database != "" {
		return s.Database, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFile), nil
}

// Load reads the settings file at path on top of the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Settings{}, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := applyEnvOverrides(&s); err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("config validation: %w", err)
	}
	return s, nil
}

// Save writes the settings to path, creating its directory.
func Save(path string, s Settings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(s *Settings) error {
	if v := os.Getenv("FLORODORO_PRESET"); v != "" {
		p, ok := domain.FindPreset(v)
		if !ok {
			return fmt.Errorf("FLORODORO_PRESET: unknown preset %q", v)
		}
		s.ApplyPreset(p)
	}
	if v := os.Getenv("FLORODORO_STUDY_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.StudyMinutes = n
		}
	}
	if v := os.Getenv("FLORODORO_BREAK_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.BreakMinutes = n
		}
	}
	if v := os.Getenv("FLORODORO_CYCLES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.Cycles = n
		}
	}
	if v := os.Getenv("FLORODORO_OVERSTUDY"); v != "" {
		s.Overstudy, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("FLORODORO_SOUND"); v != "" {
		s.Sound, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("FLORODORO_DEBUG"); v != "" {
		s.Debug, _ = strconv.ParseBool(v)
	}
	return nil
}

// Validate checks field ranges. Durations and cycles use the same rules as
// domain.SessionConfig.
func (s Settings) Validate() error {
	if err := s.SessionConfig().Validate(); err != nil {
		return err
	}
	if s.SoundVolume < 0 || s.SoundVolume > 100 {
		return fmt.Errorf("sound-volume must be within 0..100, got %d", s.SoundVolume)
	}
	if len(s.EnabledSpecies()) == 0 {
		return fmt.Errorf("at least one species must be enabled")
	}
	return nil
}

// ApplyPreset copies the preset's timings into s.
func (s *Settings) ApplyPreset(p domain.Preset) {
	s.StudyMinutes = p.StudyMin
	s.BreakMinutes = p.BreakMin
	s.Cycles = p.Cycles
}

// SessionConfig converts the timings into a session configuration.
func (s Settings) SessionConfig() domain.SessionConfig {
	return domain.SessionConfig{
		StudyDuration: time.Duration(s.StudyMinutes) * time.Minute,
		BreakDuration: time.Duration(s.BreakMinutes) * time.Minute,
		Cycles:        s.Cycles,
		Overstudy:     s.Overstudy,
	}
}

// EnabledSpecies lists the species each study plant is drawn from and that
// the species key cycles through, in catalog order.
func (s Settings) EnabledSpecies() []domain.Species {
	enabled := map[domain.Species]bool{
		domain.SpeciesSpruce:       s.Spruce,
		domain.SpeciesDoubleSpruce: s.DoubleSpruce,
		domain.SpeciesMaple:        s.Maple,
		domain.SpeciesFlower:       s.Flower,
	}
	var out []domain.Species
	for _, sp := range domain.AllSpecies {
		if enabled[sp] {
			out = append(out, sp)
		}
	}
	return out
}

// SetSpecies enables exactly the given species.
func (s *Settings) SetSpecies(species []domain.Species) {
	s.Spruce, s.DoubleSpruce, s.Maple, s.Flower = false, false, false, false
	for _, sp := range species {
		switch sp {
		case domain.SpeciesSpruce:
			s.Spruce = true
		case domain.SpeciesDoubleSpruce:
			s.DoubleSpruce = true
		case domain.SpeciesMaple:
			s.Maple = true
		case domain.SpeciesFlower:
			s.Flower = true
		}
	}
}
