package main

import (
	"os"

	"github.com/spf13/cobra"

	"inkwell/internal/interfaces/cli/migrate"
	"inkwell/internal/interfaces/cli/server"
	"inkwell/internal/interfaces/cli/user"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "inkwell",
		Short: "Inkwell - a JSON:API content backend",
		Long:  `Inkwell serves blog posts, pages, and site content over a uniform JSON:API surface, with migration and administrative tooling built in.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		user.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
