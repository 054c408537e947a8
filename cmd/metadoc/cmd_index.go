package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/grenas405/meta-documentation/internal/index"
	"github.com/grenas405/meta-documentation/internal/workspace"
)

func newIndexCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Regenerate the decisions index",
		Long: `Regenerate the decisions index markdown file.

Records are grouped by lifecycle status (PROPOSED, ACCEPTED, DEPRECATED,
SUPERSEDED, then any unrecognized statuses) and sorted by id within each
group, so regeneration is deterministic. The existing index file name
(README.md or index.md) is reused when one is present.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wsCtx, _, err := requireDecisionLog()
			if err != nil {
				return err
			}
			path, err := index.Write(wsCtx.DecisionsDir, wsCtx.Decisions)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d records)\n", path, len(wsCtx.Decisions)) //nolint:errcheck
			return nil
		},
	}
}

// refreshIndex rewrites the index after a record change, but only when the
// directory already has one; index creation stays an explicit choice.
func refreshIndex(decisionsDir string) error {
	hasIndex := false
	for _, candidate := range []string{"README.md", "index.md"} {
		if _, err := os.Stat(filepath.Join(decisionsDir, candidate)); err == nil {
			hasIndex = true
			break
		}
	}
	if !hasIndex {
		return nil
	}
	decisions, err := workspace.ScanDecisions(decisionsDir)
	if err != nil {
		return err
	}
	_, err = index.Write(decisionsDir, decisions)
	return err
}
