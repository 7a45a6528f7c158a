package cli

import (
	"fmt"

	"github.com/alexanderramin/florodoro/internal/cli/formatter"
	"github.com/alexanderramin/florodoro/internal/domain"
	"github.com/spf13/cobra"
)

func newPresetsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in study presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPresets(domain.Presets, app.Settings.SessionConfig()))
			return nil
		},
	}
}
