package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metadoc",
		Short: "metadoc - governance tooling for decision logs",
		Long: `Metadoc maintains a project's governance artifacts: architectural
decision records kept as markdown files with YAML frontmatter, and a
compliance checklist kept as a YAML file.

It validates the checklist, lints the decision log, scaffolds new
records, and serves a read-only dashboard.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newNewCommand())
	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newIndexCommand())
	cmd.AddCommand(newStatusCommand())
	cmd.AddCommand(newLintCommand())
	cmd.AddCommand(newExportCommand())
	cmd.AddCommand(newServeCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
