package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/grenas405/meta-documentation/internal/checklist"
	"github.com/grenas405/meta-documentation/internal/checks"
	"github.com/grenas405/meta-documentation/internal/reporting"
	"github.com/grenas405/meta-documentation/internal/validation"
	"github.com/grenas405/meta-documentation/internal/workspace"
)

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [checklist.yaml]",
		Short: "Validate the compliance checklist",
		Long: `Validate the compliance checklist against the published schema and the
practice flags.

The checklist groups boolean practice flags into three categories: Unix
philosophy, security, and architecture. Every false flag is reported as
one violation. A category that is absent from the file counts as "not
evaluated" and passes; the coverage check makes that visible.

With no argument, the checklist is resolved from the workspace: the
configured path from .metadoc.yaml, then compliance.yaml at the root.

Exit codes: 0 when compliant, 1 on violations, 2 on runtime errors.`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runCheck,
		SilenceErrors: true,
	}
	cmd.Flags().String("format", "text", "Output format: text | json | junit")
	return cmd
}

// --- JSON output structs ---

type checkJSONReport struct {
	Timestamp  string          `json:"timestamp"`
	Checklist  string          `json:"checklist"`
	Valid      bool            `json:"valid"`
	Violations []string        `json:"violations"`
	Checks     []checkItemJSON `json:"checks"`
}

type checkItemJSON struct {
	Name     string   `json:"name"`
	Passed   bool     `json:"passed"`
	Summary  string   `json:"summary"`
	Status   string   `json:"status,omitempty"`   // "ok", "optimal", "warning"
	Details  []string `json:"details,omitempty"`  // violation messages or evidence lines
	Evidence string   `json:"evidence,omitempty"` // supporting detail
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != "text" && format != "json" && format != "junit" {
		return fmt.Errorf("invalid format %q: expected text, json, or junit", format)
	}

	explicit := ""
	if len(args) > 0 {
		explicit = args[0]
	}

	ctx, cfg, err := loadWorkspace()
	if err != nil {
		return err
	}
	path, err := workspace.FindChecklist(ctx, explicit, cfg.Paths.Checklist)
	if err != nil {
		return err
	}
	if path == "" {
		return fmt.Errorf("no compliance checklist found; expected %s in the workspace root or paths.checklist in %s",
			workspace.ChecklistFileName, workspace.ConfigFileName)
	}

	started := time.Now()

	schemaErrs, err := validation.ValidateChecklistFile(path)
	if err != nil {
		return err
	}
	if len(schemaErrs) > 0 {
		w := cmd.ErrOrStderr()
		fmt.Fprintf(w, "Checklist %s does not match the schema:\n", path) //nolint:errcheck
		for _, e := range schemaErrs {
			fmt.Fprintf(w, "  - %s\n", e) //nolint:errcheck
		}
		return fmt.Errorf("checklist schema validation failed")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading checklist: %w", err)
	}
	cl, err := checklist.Parse(data)
	if err != nil {
		return err
	}

	results, err := checks.RunChecks(checks.ChecklistCheckers(), cl)
	if err != nil {
		return err
	}
	verdict := checklist.Validate(cl)

	switch format {
	case "json":
		if err := writeCheckJSON(cmd.OutOrStdout(), path, verdict, results); err != nil {
			return err
		}
	case "junit":
		suites := reporting.CheckSuite(path, results, started, time.Since(started))
		if err := reporting.WriteJUnitXML(cmd.OutOrStdout(), suites); err != nil {
			return err
		}
	default:
		displayCheckReport(cmd.OutOrStdout(), path, results)
	}

	if !verdict.Valid {
		return &ComplianceError{
			Message: fmt.Sprintf("%d compliance violation(s) in %s", len(verdict.Violations), path),
		}
	}
	return nil
}

func writeCheckJSON(w io.Writer, path string, verdict checklist.ValidationResult, results []*checks.CheckResult) error {
	report := checkJSONReport{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Checklist:  path,
		Valid:      verdict.Valid,
		Violations: verdict.Violations,
	}
	for _, r := range results {
		item := checkItemJSON{
			Name:    r.Name,
			Passed:  r.Passed,
			Summary: r.Summary,
			Status:  string(checks.StatusOf(r)),
			Details: r.Details,
		}
		if d, ok := r.Data.(*checks.CheckData); ok {
			item.Evidence = d.Evidence
		}
		report.Checks = append(report.Checks, item)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func displayCheckReport(w io.Writer, path string, results []*checks.CheckResult) {
	fmt.Fprintf(w, "Compliance check: %s\n\n", path) //nolint:errcheck
	for _, r := range results {
		fmt.Fprintf(w, "%s %s — %s\n", checkIcon(r), r.Name, r.Summary) //nolint:errcheck
		for _, d := range r.Details {
			fmt.Fprintf(w, "     - %s\n", d) //nolint:errcheck
		}
		if d, ok := r.Data.(*checks.CheckData); ok && d.Evidence != "" {
			fmt.Fprintf(w, "     %s\n", d.Evidence) //nolint:errcheck
		}
	}
	fmt.Fprintln(w) //nolint:errcheck
	fmt.Fprint(w, reporting.FormatSummaryReport(results)) //nolint:errcheck
}

func checkIcon(r *checks.CheckResult) string {
	switch {
	case !r.Passed:
		return "❌"
	case checks.StatusOf(r) == checks.StatusWarning:
		return "⚠️ "
	default:
		return "✅"
	}
}
