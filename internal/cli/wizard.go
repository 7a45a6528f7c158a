package cli

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/alexanderramin/florodoro/internal/cli/formatter"
	"github.com/alexanderramin/florodoro/internal/config"
	"github.com/alexanderramin/florodoro/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const customPreset = "Custom"

// florodoroHuhTheme returns a huh theme in the gruvbox palette.
func florodoroHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// settingsValues holds the string-typed state bound to the settings form.
type settingsValues struct {
	Preset    string
	Study     string
	Break     string
	Cycles    string
	Overstudy bool
	Sound     bool
	Species   []domain.Species
}

func valuesFromSettings(s config.Settings) *settingsValues {
	v := &settingsValues{
		Preset:    customPreset,
		Study:     strconv.Itoa(s.StudyMinutes),
		Break:     strconv.Itoa(s.BreakMinutes),
		Cycles:    strconv.Itoa(s.Cycles),
		Overstudy: s.Overstudy,
		Sound:     s.Sound,
		Species:   s.EnabledSpecies(),
	}
	for _, p := range domain.Presets {
		if p.Config(s.Overstudy) == s.SessionConfig() {
			v.Preset = p.Name
		}
	}
	return v
}

// apply copies the form state onto base. A named preset overrides the
// duration fields.
func (v *settingsValues) apply(base config.Settings) (config.Settings, error) {
	s := base
	if v.Preset != customPreset {
		p, ok := domain.FindPreset(v.Preset)
		if !ok {
			return config.Settings{}, fmt.Errorf("unknown preset %q", v.Preset)
		}
		s.ApplyPreset(p)
	} else {
		s.StudyMinutes = parsePositiveInt(v.Study, s.StudyMinutes)
		s.BreakMinutes = parsePositiveInt(v.Break, s.BreakMinutes)
		if n, err := strconv.Atoi(v.Cycles); err == nil && n >= 0 {
			s.Cycles = n
		}
	}
	s.Overstudy = v.Overstudy
	s.Sound = v.Sound
	s.SetSpecies(v.Species)
	if err := s.Validate(); err != nil {
		return config.Settings{}, err
	}
	return s, nil
}

// settingsForm builds the interactive settings editor bound to v. The
// duration inputs only show for the custom preset.
func settingsForm(v *settingsValues) *huh.Form {
	presets := make([]huh.Option[string], 0, len(domain.Presets)+1)
	for _, p := range domain.Presets {
		presets = append(presets, huh.NewOption(p.String(), p.Name))
	}
	presets = append(presets, huh.NewOption(customPreset, customPreset))

	species := make([]huh.Option[domain.Species], 0, len(domain.AllSpecies))
	for _, s := range domain.AllSpecies {
		species = append(species, huh.NewOption(s.DisplayName(), s).Selected(slices.Contains(v.Species, s)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Preset").
				Options(presets...).
				Value(&v.Preset),
		),
		huh.NewGroup(
			huh.NewInput().Title("Study minutes").Value(&v.Study).Validate(validatePositiveInt),
			huh.NewInput().Title("Break minutes").Value(&v.Break).Validate(validatePositiveInt),
			huh.NewInput().Title("Cycles (0 = endless)").Value(&v.Cycles).Validate(validateNonNegativeInt),
		).WithHideFunc(func() bool { return v.Preset != customPreset }),
		huh.NewGroup(
			huh.NewConfirm().Title("Overstudy past the study duration?").Value(&v.Overstudy),
			huh.NewConfirm().Title("Ring the terminal bell?").Value(&v.Sound),
			huh.NewMultiSelect[domain.Species]().
				Title("Plants to grow").
				Options(species...).
				Value(&v.Species).
				Validate(func(s []domain.Species) error {
					if len(s) == 0 {
						return fmt.Errorf("pick at least one plant")
					}
					return nil
				}),
		),
	).WithTheme(florodoroHuhTheme()).WithShowHelp(false)
}

// parsePositiveInt parses s as a positive integer, returning fallback if s is
// empty, non-numeric, or non-positive. Used after huh form validation has
// already ensured the string is valid, so this is a safe conversion.
func parsePositiveInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// validatePositiveInt accepts empty or a positive integer.
func validatePositiveInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

// validateNonNegativeInt accepts empty or a non-negative integer.
func validateNonNegativeInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return fmt.Errorf("enter zero or a positive number")
	}
	return nil
}
