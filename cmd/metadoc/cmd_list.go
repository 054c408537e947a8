package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/grenas405/meta-documentation/internal/adr"
	"github.com/grenas405/meta-documentation/internal/workspace"
)

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the decision records in the workspace",
		Long: `List the decision records in the workspace, ordered by id.

--status filters to one lifecycle state (case-insensitive).`,
		Args:          cobra.NoArgs,
		RunE:          runList,
		SilenceErrors: true,
	}
	cmd.Flags().String("status", "", "Filter by status: proposed | accepted | deprecated | superseded")
	cmd.Flags().String("format", "text", "Output format: text | json")
	return cmd
}

// decisionJSON is the list entry shape for --format json.
type decisionJSON struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
	Date   string `json:"date,omitempty"`
	Path   string `json:"path"`
}

func runList(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format %q: expected text or json", format)
	}
	statusFilter, err := cmd.Flags().GetString("status")
	if err != nil {
		return err
	}
	var filter adr.Status
	if statusFilter != "" {
		if filter, err = adr.ParseStatus(statusFilter); err != nil {
			return err
		}
	}

	wsCtx, _, err := requireDecisionLog()
	if err != nil {
		return err
	}

	decisions := wsCtx.Decisions
	if filter != "" {
		var kept []workspace.DecisionInfo
		for _, d := range decisions {
			if st, err := adr.ParseStatus(d.Status); err == nil && st == filter {
				kept = append(kept, d)
			}
		}
		decisions = kept
	}

	if format == "json" {
		entries := make([]decisionJSON, 0, len(decisions))
		for _, d := range decisions {
			entries = append(entries, decisionJSON{
				ID:     d.ID,
				Title:  d.Title,
				Status: d.Status,
				Date:   d.Date,
				Path:   d.Path,
			})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	printDecisionTable(cmd.OutOrStdout(), decisions)
	return nil
}

func printDecisionTable(w io.Writer, decisions []workspace.DecisionInfo) {
	if len(decisions) == 0 {
		fmt.Fprintln(w, "No decision records found.") //nolint:errcheck
		return
	}

	const colID = 10
	const colStatus = 12
	const colDate = 12

	fmt.Fprintf(w, "%s  %s  %s  %s\n", //nolint:errcheck
		padRight("ID", colID),
		padRight("STATUS", colStatus),
		padRight("DATE", colDate),
		"TITLE")
	for _, d := range decisions {
		fmt.Fprintf(w, "%s  %s  %s  %s\n", //nolint:errcheck
			padRight(d.ID, colID),
			padRight(strings.ToUpper(d.Status), colStatus),
			padRight(d.Date, colDate),
			d.Title)
	}
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
