package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/florodoro/internal/cli/formatter"
	"github.com/alexanderramin/florodoro/internal/domain"
	"github.com/alexanderramin/florodoro/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var (
		species []string
		local   bool
	)

	cmd := &cobra.Command{
		Use:   "import <history.yaml>",
		Short: "Import the study history of an earlier florodoro",
		Long: "Import studies and breaks from an earlier florodoro history file.\n" +
			"Stored plants cannot be read back, so imported plants get a species\n" +
			"from --species in turn and a seed from their timestamp. Importing the\n" +
			"same file twice adds nothing.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := importer.LoadHistory(args[0])
			if err != nil {
				return err
			}

			opts := importer.Options{}
			for _, s := range species {
				sp, err := domain.ParseSpecies(strings.TrimSpace(s))
				if err != nil {
					return err
				}
				opts.Species = append(opts.Species, sp)
			}
			if local {
				opts.Location = time.Local
			}

			out := cmd.OutOrStdout()
			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(out, "Importing history...")
			}
			result, err := app.Import.ImportHistory(cmd.Context(), history, opts)
			stop()
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "%s %d plants, %d breaks\n", formatter.StyleGreen.Render("Imported"), result.Plants, result.Breaks)
			if result.Duplicates > 0 {
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("%d records were already imported", result.Duplicates)))
			}
			if result.Skipped > 0 {
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("%d studies without a plant were skipped", result.Skipped)))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&species, "species", nil, "Species to rotate through (default all)")
	cmd.Flags().BoolVar(&local, "local", false, "Read timestamps as local time instead of UTC")

	return cmd
}
