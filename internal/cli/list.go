package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/itinerary-planner/backend/internal/domain"
	"github.com/pkordes/itinerary-planner/backend/internal/repo"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved itineraries",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withRepo(cmd, func(ctx context.Context, r repo.ItineraryRepo) error {
				all, err := r.LoadAll(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()

				if a.jsonOutput {
					views := make([]summaryView, len(all))
					for i, it := range all {
						views[i] = toSummaryView(domain.Summarize(it))
					}
					return outputJSON(out, views)
				}

				printSection(out, "Saved Itineraries")
				if len(all) == 0 {
					printEmptyState(out, "No saved itineraries")
					return nil
				}
				rows := make([][]string, 0, len(all))
				for _, it := range all {
					s := domain.Summarize(it)
					rows = append(rows, []string{
						s.ID,
						s.Title,
						s.StartDate.Format(domain.DateLayout),
						s.EndDate.Format(domain.DateLayout),
						fmt.Sprint(s.PlaceCount),
					})
				}
				printTable(out, []string{"ID", "Title", "Start", "End", "Places"}, rows)
				return nil
			})
		},
	}
}
