package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/itinerary-planner/backend/internal/domain"
	"github.com/pkordes/itinerary-planner/backend/internal/repo"
)

type exportRowView struct {
	ItineraryID    string  `json:"itinerary_id"`
	ItineraryTitle string  `json:"itinerary_title"`
	DayNumber      int     `json:"day"`
	DayDate        string  `json:"date"`
	Position       int     `json:"position,omitempty"`
	PlaceName      string  `json:"place_name,omitempty"`
	PlaceAddress   string  `json:"place_address,omitempty"`
	PlaceTime      string  `json:"place_time,omitempty"`
	Lat            float64 `json:"lat,omitempty"`
	Lng            float64 `json:"lng,omitempty"`
	PlaceID        string  `json:"place_id,omitempty"`
}

func newExportCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a saved itinerary as CSV or JSON rows",
		Long: `Write a saved itinerary to stdout as a flat table, one row per place.
Days with nothing planned still get a row.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.jsonOutput {
				format = "json"
			}
			if format != "csv" && format != "json" {
				return fmt.Errorf("--format must be csv or json, got %q", format)
			}

			return a.withRepo(cmd, func(ctx context.Context, r repo.ItineraryRepo) error {
				it, err := r.LoadByID(ctx, args[0])
				if err != nil {
					return fmt.Errorf("itinerary %q: %w", args[0], err)
				}
				rows := domain.BuildExport(it)
				out := cmd.OutOrStdout()

				if format == "csv" {
					return domain.WriteExportCSV(out, rows)
				}
				views := make([]exportRowView, len(rows))
				for i, row := range rows {
					views[i] = exportRowView(row)
				}
				return outputJSON(out, views)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Output format: csv or json")
	return cmd
}
