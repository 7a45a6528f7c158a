package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/florodoro/internal/cli/formatter"
	"github.com/alexanderramin/florodoro/internal/domain"
	"github.com/alexanderramin/florodoro/internal/growth"
	"github.com/alexanderramin/florodoro/internal/render"
	"github.com/alexanderramin/florodoro/internal/repository"
	"github.com/spf13/cobra"
)

func newGalleryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gallery",
		Aliases: []string{"g"},
		Short:   "Browse the plants you have grown",
	}

	cmd.AddCommand(
		newGalleryListCmd(app),
		newGalleryShowCmd(app),
	)

	return cmd
}

func newGalleryListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived plants, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Archive.ListAll(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGallery(entries, app.now()))
			return nil
		},
	}
}

func newGalleryShowCmd(app *App) *cobra.Command {
	var (
		age    time.Duration
		height int
	)

	cmd := &cobra.Command{
		Use:   "show <id|#>",
		Short: "Draw an archived plant",
		Long: "Draw an archived plant, regenerated from its species, seed and age.\n" +
			"The plant is picked by ID, unique ID prefix or gallery position.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := resolveEntry(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}

			at := entry.FinalAge
			if cmd.Flags().Changed("age") {
				if age < 0 {
					return fmt.Errorf("--age must not be negative")
				}
				at = min(age, entry.FinalAge)
			}
			nodes, err := growth.Derive(entry.Spec, at)
			if err != nil {
				return fmt.Errorf("regenerating plant: %w", err)
			}

			canvas := render.NewCanvas(2*height, height)
			canvas.Draw(slices.Values(nodes), at)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlant(entry, canvas.Styled(), at))
			return nil
		},
	}

	cmd.Flags().DurationVar(&age, "age", 0, "Draw the plant as it was at this age (e.g. 10m)")
	cmd.Flags().IntVar(&height, "height", 16, "Drawing height in rows")

	return cmd
}

// resolveEntry finds an archived plant by exact ID, unique ID prefix or
// 1-based gallery position.
func resolveEntry(ctx context.Context, app *App, ref string) (*domain.ArchiveEntry, error) {
	ref = strings.TrimPrefix(ref, "#")
	entry, err := app.Archive.Get(ctx, ref)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	entries, err := app.Archive.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if n, err := strconv.Atoi(ref); err == nil && len(ref) < 8 {
		if n < 1 || n > len(entries) {
			return nil, fmt.Errorf("no plant #%d in the gallery (%d plants)", n, len(entries))
		}
		return entries[n-1], nil
	}

	var match *domain.ArchiveEntry
	for _, e := range entries {
		if !strings.HasPrefix(e.ID, ref) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("plant id prefix %q is ambiguous", ref)
		}
		match = e
	}
	if match == nil {
		return nil, fmt.Errorf("plant %q: %w", ref, repository.ErrNotFound)
	}
	return match, nil
}
