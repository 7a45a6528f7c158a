package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/florodoro/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// legacyYAML is a settings file as written by earlier releases.
const legacyYAML = `break-time: 12
cycles: 2
double spruce: false
flower: true
maple: true
overstudy: true
pop-ups: false
sound: true
sound-volume: 80
spruce: true
study-time: 45
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
	assert.Equal(t, domain.SessionConfig{
		StudyDuration: 25 * time.Minute,
		BreakDuration: 5 * time.Minute,
		Cycles:        4,
	}, s.SessionConfig())
	assert.Equal(t, domain.AllSpecies, s.EnabledSpecies())
}

func TestLoad_LegacyFile(t *testing.T) {
	s, err := Load(writeTemp(t, legacyYAML))
	require.NoError(t, err)

	assert.Equal(t, 45, s.StudyMinutes)
	assert.Equal(t, 12, s.BreakMinutes)
	assert.Equal(t, 2, s.Cycles)
	assert.True(t, s.Overstudy)
	assert.False(t, s.Popups)
	assert.Equal(t, 80, s.SoundVolume)
	assert.Equal(t, []domain.Species{domain.SpeciesSpruce, domain.SpeciesMaple, domain.SpeciesFlower}, s.EnabledSpecies())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	s, err := Load(writeTemp(t, "cycles: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Cycles)
	assert.Equal(t, 25, s.StudyMinutes)
	assert.True(t, s.SessionConfig().Infinite())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("FLORODORO_STUDY_MINUTES", "50")
	t.Setenv("FLORODORO_OVERSTUDY", "false")
	t.Setenv("FLORODORO_DEBUG", "1")

	s, err := Load(writeTemp(t, legacyYAML))
	require.NoError(t, err)
	assert.Equal(t, 50, s.StudyMinutes, "env wins over file")
	assert.Equal(t, 12, s.BreakMinutes, "file wins over default")
	assert.False(t, s.Overstudy)
	assert.True(t, s.Debug)
}

func TestLoad_EnvPresetThenField(t *testing.T) {
	t.Setenv("FLORODORO_PRESET", "Sitcomodoro")
	t.Setenv("FLORODORO_CYCLES", "3")

	s, err := Load(writeTemp(t, legacyYAML))
	require.NoError(t, err)
	assert.Equal(t, 65, s.StudyMinutes)
	assert.Equal(t, 25, s.BreakMinutes)
	assert.Equal(t, 3, s.Cycles)
}

func TestLoad_UnknownPreset(t *testing.T) {
	t.Setenv("FLORODORO_PRESET", "Marathon")
	_, err := Load(writeTemp(t, ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Marathon")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"malformed", "study-time: [1,\n", "parsing config file"},
		{"zero study", "study-time: 0\n", "study duration"},
		{"negative cycles", "cycles: -2\n", "cycles"},
		{"volume", "sound-volume: 101\n", "sound-volume"},
		{"no species", "spruce: false\ndouble spruce: false\nmaple: false\nflower: false\n", "species"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeTemp(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	s := Default()
	s.Overstudy = true
	s.SetSpecies([]domain.Species{domain.SpeciesFlower})
	p, ok := domain.FindPreset("Extended")
	require.True(t, ok)
	s.ApplyPreset(p)

	require.NoError(t, Save(path, s))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestSave_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	s := Default()
	s.BreakMinutes = 0
	require.Error(t, Save(path, s))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("FLORODORO_HOME", home)

	path, err := Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "config.yaml"), path)

	logPath, err := LogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "florodoro.log"), logPath)

	s := Default()
	dbPath, err := s.DBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "florodoro.db"), dbPath)

	s.Database = "/tmp/custom.db"
	dbPath, err = s.DBPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", dbPath)

	t.Setenv("FLORODORO_DB", ":memory:")
	dbPath, err = s.DBPath()
	require.NoError(t, err)
	assert.Equal(t, ":memory:", dbPath)
}
