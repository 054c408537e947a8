package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grenas405/meta-documentation/internal/export"
	"github.com/grenas405/meta-documentation/internal/workspace"
)

func newExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Bundle the decision log into a tar.gz archive",
		Long: `Bundle the decisions directory and the compliance checklist into a
tar.gz archive for publication.

The archive is deterministic: identical logs produce byte-identical
bundles, so the output is safe to cache or diff in CI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportCommandE(cmd, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Bundle path (default from .metadoc.yaml)")

	return cmd
}

func exportCommandE(cmd *cobra.Command, output string) error {
	wsCtx, cfg, err := requireDecisionLog()
	if err != nil {
		return err
	}

	checklistPath, err := workspace.FindChecklist(wsCtx, "", cfg.Paths.Checklist)
	if err != nil {
		return err
	}

	if output == "" {
		output = resolveUnderRoot(wsCtx, cfg.Export.Output)
	}

	names, err := export.WriteFile(output, wsCtx.DecisionsDir, checklistPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d entries):\n", output, len(names)) //nolint:errcheck
	for _, n := range names {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", n) //nolint:errcheck
	}
	return nil
}
