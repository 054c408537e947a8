package reporting

import (
	"fmt"
	"strings"

	"github.com/grenas405/meta-documentation/internal/checks"
	"github.com/grenas405/meta-documentation/internal/lint"
)

// InterpretCompliance returns a plain-language verdict for a check run.
func InterpretCompliance(passed, total int) string {
	switch {
	case total == 0:
		return "Nothing was checked."
	case passed == total:
		return fmt.Sprintf("All %d checks passed — the decision log is release ready.", total)
	case passed*2 >= total:
		return fmt.Sprintf("Most checks passed (%d of %d) — resolve the remaining blockers.", passed, total)
	default:
		return fmt.Sprintf("Compliance is failing (%d of %d checks passed).", passed, total)
	}
}

// InterpretCoverage explains the pass-on-absence policy when categories were
// left out of the checklist.
func InterpretCoverage(skipped int) string {
	if skipped == 0 {
		return "Every category was evaluated."
	}
	noun := "category was"
	if skipped > 1 {
		noun = "categories were"
	}
	return fmt.Sprintf("%d %s not evaluated — absent categories pass by policy, so add them to gate on them.", skipped, noun)
}

// InterpretFindings summarizes a lint result in one line.
func InterpretFindings(res *lint.Result) string {
	errors, warnings := res.Errors(), res.Warnings()
	switch {
	case errors == 0 && warnings == 0:
		return fmt.Sprintf("Document and link checks are clean across %d files.", res.Files)
	case errors == 0:
		return fmt.Sprintf("Warnings only (%d) — nothing blocks, but worth a look.", warnings)
	default:
		return fmt.Sprintf("%d error(s) and %d warning(s) — errors must be fixed before the log passes.", errors, warnings)
	}
}

// FormatSummaryReport produces a plain-language interpretation block for a
// compliance check run.
func FormatSummaryReport(results []*checks.CheckResult) string {
	var b strings.Builder

	failed, skipped := 0, 0
	var unmet []string
	for _, r := range results {
		if !r.Passed {
			failed++
			if len(r.Details) == 0 {
				unmet = append(unmet, fmt.Sprintf("[%s] %s", r.Name, r.Summary))
			}
			for _, d := range r.Details {
				unmet = append(unmet, fmt.Sprintf("[%s] %s", r.Name, d))
			}
			continue
		}
		if isSkipped(r) {
			skipped++
		}
	}

	b.WriteString("=== Interpretation ===\n\n")
	b.WriteString(InterpretCompliance(len(results)-failed, len(results)) + "\n")
	if len(unmet) > 0 {
		b.WriteString("Unmet practices:\n")
		for _, u := range unmet {
			fmt.Fprintf(&b, "  - %s\n", u)
		}
	}
	b.WriteString(InterpretCoverage(skipped) + "\n")
	return b.String()
}
