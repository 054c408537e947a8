package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/grenas405/meta-documentation/internal/index"
	"github.com/grenas405/meta-documentation/internal/projectconfig"
	"github.com/grenas405/meta-documentation/internal/scaffold"
	"github.com/grenas405/meta-documentation/internal/workspace"
)

func newInitCommand() *cobra.Command {
	var decisionsDir string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a decision-log workspace",
		Long: `Initialize a governance workspace with a compliant directory structure.

Creates the decisions directory with a seed record and an index, a
compliance checklist with every practice marked met, a .metadoc.yaml
project config, and a CI workflow that gates pull requests on
metadoc check and metadoc lint.

Existing files are never overwritten; they are reported as skipped.

If no directory is specified, the current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return initCommandE(cmd, args, decisionsDir)
		},
	}

	cmd.Flags().StringVar(&decisionsDir, "decisions-dir", projectconfig.DefaultDecisionsDir,
		"Workspace-relative directory for decision records")

	return cmd
}

func initCommandE(cmd *cobra.Command, args []string, decisionsDir string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	decisions := filepath.Join(root, filepath.FromSlash(decisionsDir))
	workflowDir := filepath.Join(root, ".github", "workflows")
	for _, d := range []string{decisions, workflowDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", d, err)
		}
	}

	today := time.Now().Format("2006-01-02")
	seed, err := scaffold.SeedRecord(today)
	if err != nil {
		return err
	}

	seedInfo := workspace.DecisionInfo{
		ID:     "ADR-0001",
		Title:  "Record architecture decisions",
		Status: "ACCEPTED",
		Date:   today,
		Path:   filepath.Join(decisions, "ADR-0001-record-architecture-decisions.md"),
	}

	files := []fileEntry{
		{seedInfo.Path, seed},
		{filepath.Join(decisions, index.FileName), index.Build([]workspace.DecisionInfo{seedInfo})},
		{filepath.Join(root, workspace.ChecklistFileName), scaffold.ChecklistYAML()},
		{filepath.Join(root, workspace.ConfigFileName), scaffold.ConfigYAML(decisionsDir)},
		{filepath.Join(workflowDir, "governance.yml"), scaffold.CIWorkflow()},
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Initialized decision log:") //nolint:errcheck
	return writeFiles(cmd, files)
}

// fileEntry pairs a path with its content for batch writing.
type fileEntry struct {
	path    string
	content string
}

// writeFiles writes each file, skipping any that already exist.
func writeFiles(cmd *cobra.Command, files []fileEntry) error {
	for _, f := range files {
		if _, err := os.Stat(f.path); err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "  skip %s (already exists)\n", f.path) //nolint:errcheck
			continue
		}

		if err := os.WriteFile(f.path, []byte(f.content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  create %s\n", f.path) //nolint:errcheck
	}

	return nil
}
