package main

import (
	"os"

	"github.com/spf13/cobra"

	"sharayeh/internal/interfaces/cli/migrate"
	"sharayeh/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sharayeh",
		Short: "Sharayeh conversion backend",
		Long:  `Sharayeh backend service: entitlement resolution, credit metering, and presentation conversion jobs.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
