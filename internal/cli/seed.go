package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pedigreehq/seedstock/internal/seeder/config"
	"github.com/pedigreehq/seedstock/internal/seeder/credentials"
	"github.com/pedigreehq/seedstock/internal/seeder/db/dbmanager"
	"github.com/pedigreehq/seedstock/internal/seeder/db/postgresql"
	"github.com/pedigreehq/seedstock/internal/seeder/envqual"
	"github.com/pedigreehq/seedstock/internal/seeder/fixtures"
	"github.com/pedigreehq/seedstock/internal/seeder/orchestrator"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <dev|prod>",
		Short: "Seed the database with the fixture catalogue for the given environment",
		Args:  cobra.ExactArgs(1),
		RunE:  runSeed,
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	env := envqual.Environment(args[0])
	if !env.Valid() {
		return fmt.Errorf("unknown environment %q, expected dev or prod", args[0])
	}

	cat, err := fixtures.Load()
	if err != nil {
		return fmt.Errorf("failed to load fixture catalogue: %w", err)
	}

	ctx := cmd.Context()
	pool, err := dbmanager.NewPostgresqlDb(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	store := postgresql.New(pool)
	defer store.Close(ctx)

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	report, rerr := orchestrator.Run(ctx, store, env, cat, config.RunTime())
	report.Render(os.Stdout)
	if runCompleted(rerr) {
		credentials.Report(os.Stdout, env, cat)
	}
	return rerr
}

// runCompleted reports whether the orchestrator processed the whole
// catalogue. A run with failed tenants still completed, so the operator
// still gets the credentials report; only pre-pass or infrastructure
// failures abort before completion.
func runCompleted(err error) bool {
	return err == nil || errors.Is(err, orchestrator.ErrSeedFailed)
}
