package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/florodoro/internal/config"
	"github.com/alexanderramin/florodoro/internal/domain"
	"github.com/alexanderramin/florodoro/internal/service"
	"github.com/alexanderramin/florodoro/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds the services and settings used by CLI commands.
type App struct {
	Archive service.ArchiveService
	Stats   service.StatsService
	Import  service.ImportService

	Settings     config.Settings
	SettingsPath string

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	// Now defaults to time.Now.
	Now func() time.Time
	// RunProgram runs a bubbletea model; defaults to a full-screen program.
	RunProgram func(tea.Model) error
	// Bell receives the terminal bell when sound is enabled.
	Bell io.Writer
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) archive() session.Archive {
	if a.Archive == nil {
		return session.NopArchive{}
	}
	return a.Archive
}

func (a *App) runProgram(m tea.Model) error {
	if a.RunProgram != nil {
		return a.RunProgram(m)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// NewRootCmd creates the top-level "florodoro" command and registers all
// subcommands against the provided App. Without a subcommand it opens the
// timer when attached to a terminal.
func NewRootCmd(app *App) *cobra.Command {
	var (
		study, brk minutesValue
		cycles     int
		overstudy  bool
		species    string
	)

	root := &cobra.Command{
		Use:          "florodoro",
		Short:        "A study timer that grows plants while you focus",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}

			settings := app.Settings
			if study.set {
				settings.StudyMinutes = study.minutes
			}
			if brk.set {
				settings.BreakMinutes = brk.minutes
			}
			if cmd.Flags().Changed("cycles") {
				settings.Cycles = cycles
			}
			if cmd.Flags().Changed("overstudy") {
				settings.Overstudy = overstudy
			}
			enabled := settings.EnabledSpecies()
			if species != "" {
				s, err := domain.ParseSpecies(species)
				if err != nil {
					return err
				}
				enabled = []domain.Species{s}
			}

			m, err := newTimerModel(app, settings.SessionConfig(), enabled, settings.Sound)
			if err != nil {
				return fmt.Errorf("starting timer: %w", err)
			}
			return app.runProgram(m)
		},
	}

	root.Flags().Var(&study, "study", "Study minutes for this run")
	root.Flags().Var(&brk, "break", "Break minutes for this run")
	root.Flags().IntVar(&cycles, "cycles", 0, "Study/break cycles, 0 for endless")
	root.Flags().BoolVar(&overstudy, "overstudy", false, "Keep studying past the study duration")
	root.Flags().StringVar(&species, "species", "", "Grow only this species")

	root.AddCommand(
		newGalleryCmd(app),
		newStatsCmd(app),
		newPresetsCmd(app),
		newConfigCmd(app),
		newImportCmd(app),
	)

	return root
}
