// Package cli implements itinctl, a terminal tool for the saved itinerary
// collection. It reads the same storage as the API server, selected by the
// same environment variables.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/itinerary-planner/backend/internal/config"
	"github.com/pkordes/itinerary-planner/backend/internal/repo"
	"github.com/pkordes/itinerary-planner/backend/internal/storage"
)

// repoOpener returns the repo to operate on and a function releasing it.
type repoOpener func(ctx context.Context) (repo.ItineraryRepo, func(), error)

// app carries state shared by every command.
type app struct {
	jsonOutput bool
	openRepo   repoOpener
}

// NewRootCmd builds the itinctl command tree backed by the configured storage.
func NewRootCmd(version string) *cobra.Command {
	return newRootCmd(version, openConfiguredRepo)
}

func newRootCmd(version string, open repoOpener) *cobra.Command {
	a := &app{openRepo: open}

	root := &cobra.Command{
		Use:     "itinctl",
		Version: version,
		Short:   "Inspect and manage saved itineraries",
		Long: `itinctl works on the saved itinerary collection directly.

Storage is chosen like the API server: DATABASE_URL selects Postgres,
otherwise files under STORAGE_DIR are used.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Output in JSON format")

	root.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newExportCmd(a),
		newDeleteCmd(a),
	)
	return root
}

// Execute runs itinctl and prints any error to stderr.
func Execute(version string) error {
	err := NewRootCmd(version).Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
	}
	return err
}

// openConfiguredRepo loads config from the environment and opens storage.
// Logs go to stderr at WARN so they never mix with command output.
func openConfiguredRepo(ctx context.Context) (repo.ItineraryRepo, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := newLogger(os.Stderr)

	kv, closeFn, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return repo.NewItineraryRepo(kv, cfg.StorageKey, log), closeFn, nil
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// withRepo opens the repo for the duration of fn.
func (a *app) withRepo(cmd *cobra.Command, fn func(ctx context.Context, r repo.ItineraryRepo) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	r, closeFn, err := a.openRepo(ctx)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx, r)
}
