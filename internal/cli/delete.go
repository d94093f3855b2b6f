package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkordes/itinerary-planner/backend/internal/domain"
	"github.com/pkordes/itinerary-planner/backend/internal/repo"
)

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved itinerary",
		Long: `Remove a saved itinerary from the collection.
You are asked to confirm unless --yes is given. With --json there is no
prompt, so --yes is required.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.jsonOutput && !yes {
				return errors.New("--json requires --yes")
			}
			id := args[0]
			return a.withRepo(cmd, func(ctx context.Context, r repo.ItineraryRepo) error {
				out := cmd.OutOrStdout()

				it, err := r.LoadByID(ctx, id)
				if errors.Is(err, domain.ErrNotFound) {
					if a.jsonOutput {
						return outputJSON(out, map[string]any{"id": id, "deleted": false})
					}
					printWarning(out, fmt.Sprintf("No saved itinerary with id %s", id))
					return nil
				}
				if err != nil {
					return err
				}

				if !yes {
					fmt.Fprintf(out, "Delete %q (%s)? [y/N] ", it.Title, plural(it.PlaceCount(), "place", "places"))
					answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
					if ans := strings.ToLower(strings.TrimSpace(answer)); ans != "y" && ans != "yes" {
						printEmptyState(out, "Cancelled")
						return nil
					}
				}

				if err := r.DeleteByID(ctx, id); err != nil {
					return err
				}
				if a.jsonOutput {
					return outputJSON(out, map[string]any{"id": id, "deleted": true})
				}
				printSuccess(out, fmt.Sprintf("Deleted %q", it.Title))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
