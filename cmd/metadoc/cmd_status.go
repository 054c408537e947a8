package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grenas405/meta-documentation/internal/adr"
	"github.com/grenas405/meta-documentation/internal/workspace"
)

func newStatusCommand() *cobra.Command {
	var supersededBy string

	cmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change a record's lifecycle status",
		Long: `Change a record's lifecycle status.

Records never change status on their own; this command is the explicit
caller that overwrites the field. The status must be one of proposed,
accepted, deprecated, or superseded.

When moving a record to superseded, name the successor with
--superseded-by so the records stay cross-linked.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return statusCommandE(cmd, args[0], args[1], supersededBy)
		},
	}

	cmd.Flags().StringVar(&supersededBy, "superseded-by", "", "Id of the record that replaces this one")

	return cmd
}

func statusCommandE(cmd *cobra.Command, id, statusArg, supersededBy string) error {
	status, err := adr.ParseStatus(statusArg)
	if err != nil {
		return err
	}
	if supersededBy != "" && status != adr.StatusSuperseded {
		return fmt.Errorf("--superseded-by only applies when the new status is superseded")
	}

	wsCtx, _, err := requireDecisionLog()
	if err != nil {
		return err
	}
	info, err := workspace.FindDecision(wsCtx, id)
	if err != nil {
		return err
	}
	if supersededBy != "" {
		// The successor must exist before the old record points at it.
		if _, err := workspace.FindDecision(wsCtx, supersededBy); err != nil {
			return err
		}
	}

	doc, err := adr.Load(info.Path)
	if err != nil {
		return err
	}
	doc.Frontmatter.Status = status.String()
	if supersededBy != "" && !containsFold(doc.Frontmatter.Related, supersededBy) {
		doc.Frontmatter.Related = append(doc.Frontmatter.Related, supersededBy)
	}

	data, err := doc.MarshalText()
	if err != nil {
		return err
	}
	if err := writeRecord(info.Path, data); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s → %s\n", info.ID, status) //nolint:errcheck
	return refreshIndex(wsCtx.DecisionsDir)
}

func writeRecord(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("updating %s: %w", path, err)
	}
	return nil
}
