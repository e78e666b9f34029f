// Package cli wires the seedstock subcommands: seed, migrate, credentials.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pedigreehq/seedstock/internal/common/logtrace"
	"github.com/pedigreehq/seedstock/internal/seeder/config"
)

var (
	// Global flags
	configFile string
	jsonLog    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "seedstock",
	Short: "seedstock seeds staging environments with the fixture catalogue",
	Long: `seedstock provisions a PedigreeHQ staging database with the embedded
fixture catalogue: tenants, users, animals with lineage, breeding plans,
listings, portal access, waitlists, invoices and message threads. Runs are
idempotent; re-running converges the database to the catalogue state.`,
	PersistentPreRun: preRunHandlePersistents,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "", "", "Path to configuration file to override defaults")
	rootCmd.PersistentFlags().BoolVarP(&jsonLog, "json-log", "j", false, "Emit structured JSON logs instead of console output")

	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newCredentialsCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SilenceErrors = true // Prevent Cobra from printing the error
	rootCmd.SilenceUsage = true  // Prevent Cobra from printing usage on error

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func preRunHandlePersistents(cmd *cobra.Command, args []string) {
	if err := config.LoadConfig(configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load config file: %s\n", err.Error())
		os.Exit(1)
	}
	logtrace.InitLogger(jsonLog || config.Config().LogJSON)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of seedstock",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("seedstock v0.3.1")
		},
	}
}
