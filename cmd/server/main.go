/*
main.go - Application entry point

PURPOSE:
  Command-line entry for the insurance back-office API.
  Handles configuration, dependency wiring, and graceful shutdown.

COMMANDS:
  insurance-admin [serve]          Run the HTTP server (default)
  insurance-admin openapi          Print the OpenAPI document
                  --format json|yaml

STARTUP SEQUENCE (serve):
  1. Load config (defaults, config.yml, .env, INSURANCE_* env, flags)
  2. Build the zap logger
  3. Open the record stores (memory, or sqlite seeded when empty)
  4. Create API handler and router
  5. Start server with graceful shutdown

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests (server.shutdown_timeout)
  3. Close the database, if any
  4. Exit

EXAMPLES:
  # In-memory stores, reset on restart
  ./insurance-admin

  # Durable stores
  ./insurance-admin serve --store sqlite --db ./data/insurance.db

  # Dev mode with reset endpoint
  INSURANCE_FEATURES_ENABLE_RESET=true ./insurance-admin serve --dev

SEE ALSO:
  - config/config.go: Configuration keys
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	serve := serveCmd(&configFile)
	rootCmd := &cobra.Command{
		Use:           "insurance-admin",
		Short:         "Insurance back-office API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./config.yml)")
	// Bare invocation serves, so it accepts serve's flags too.
	rootCmd.Flags().AddFlagSet(serve.Flags())

	rootCmd.AddCommand(serve)
	rootCmd.AddCommand(openapiCmd())
	return rootCmd
}
