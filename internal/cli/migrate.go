package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pedigreehq/seedstock/internal/seeder/db/dbmanager"
	"github.com/pedigreehq/seedstock/internal/seeder/db/postgresql"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the baseline schema without seeding any data",
		Args:  cobra.NoArgs,
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, args []string) error {
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
	cmd.Println("schema up to date")
	return nil
}
