package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/itinerary-planner/backend/internal/domain"
	"github.com/pkordes/itinerary-planner/backend/internal/repo"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved itinerary day by day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(cmd, func(ctx context.Context, r repo.ItineraryRepo) error {
				it, err := r.LoadByID(ctx, args[0])
				if err != nil {
					return fmt.Errorf("itinerary %q: %w", args[0], err)
				}
				out := cmd.OutOrStdout()

				if a.jsonOutput {
					return outputJSON(out, toItineraryView(it))
				}

				printSection(out, it.Title)
				printLabelValue(out, "ID", it.ID)
				printLabelValue(out, "Dates", fmt.Sprintf("%s to %s", it.StartDate.Format(domain.DateLayout), it.EndDate.Format(domain.DateLayout)))
				printLabelValue(out, "Places", plural(it.PlaceCount(), "place", "places"))

				for _, d := range it.Days {
					fmt.Fprintln(out)
					_, _ = headerColor.Fprintf(out, "  Day %d  %s\n", d.Number, d.Date.Format("Mon Jan 2"))
					if len(d.Places) == 0 {
						printEmptyState(out, "  nothing planned")
						continue
					}
					for i, p := range d.Places {
						fmt.Fprintf(out, "    %d. %s", i+1, p.Name)
						if p.Time != "" {
							_, _ = timeColor.Fprintf(out, " @ %s", p.Time)
						}
						fmt.Fprintln(out)
						if p.Address != "" {
							_, _ = dimColor.Fprintf(out, "       %s\n", p.Address)
						}
					}
				}
				return nil
			})
		},
	}
}
