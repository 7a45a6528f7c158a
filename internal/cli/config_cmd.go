package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/florodoro/internal/config"
	"github.com/alexanderramin/florodoro/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(app *App) *cobra.Command {
	var (
		show   bool
		preset string
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Edit the timer settings",
		Long: "Edit the timer settings interactively, or print them with --show.\n" +
			"--preset applies a built-in preset without prompting.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			var next config.Settings
			switch {
			case preset != "":
				p, ok := domain.FindPreset(preset)
				if !ok {
					return fmt.Errorf("unknown preset %q (see florodoro presets)", preset)
				}
				next = app.Settings
				next.ApplyPreset(p)

			case show || !app.interactive():
				data, err := yaml.Marshal(app.Settings)
				if err != nil {
					return fmt.Errorf("encoding settings: %w", err)
				}
				fmt.Fprintf(out, "# %s\n%s", app.SettingsPath, data)
				return nil

			default:
				values := valuesFromSettings(app.Settings)
				if err := settingsForm(values).Run(); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						return nil
					}
					return err
				}
				var err error
				if next, err = values.apply(app.Settings); err != nil {
					return err
				}
			}

			if err := config.Save(app.SettingsPath, next); err != nil {
				return err
			}
			app.Settings = next
			fmt.Fprintf(out, "Saved settings to %s\n", app.SettingsPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Print the current settings")
	cmd.Flags().StringVar(&preset, "preset", "", "Apply a built-in preset")

	return cmd
}
