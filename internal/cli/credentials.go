package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pedigreehq/seedstock/internal/seeder/credentials"
	"github.com/pedigreehq/seedstock/internal/seeder/envqual"
	"github.com/pedigreehq/seedstock/internal/seeder/fixtures"
)

func newCredentialsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "credentials <dev|prod>",
		Short: "Print the login credentials the catalogue will seed",
		Args:  cobra.ExactArgs(1),
		RunE:  runCredentials,
	}
}

func runCredentials(cmd *cobra.Command, args []string) error {
	env := envqual.Environment(args[0])
	if !env.Valid() {
		return fmt.Errorf("unknown environment %q, expected dev or prod", args[0])
	}
	cat, err := fixtures.Load()
	if err != nil {
		return fmt.Errorf("failed to load fixture catalogue: %w", err)
	}
	credentials.Report(os.Stdout, env, cat)
	return nil
}
