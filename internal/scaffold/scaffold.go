// Package scaffold provides shared content generation for initializing a
// decision-log workspace, used by both metadoc init and metadoc new.
package scaffold

import (
	"fmt"
	"strings"
	"time"

	"github.com/grenas405/meta-documentation/internal/adr"
	"github.com/grenas405/meta-documentation/internal/template"
)

// ValidateTitle rejects empty titles and titles that slug down to nothing.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("record title must not be empty")
	}
	if adr.Slug(title) == "" {
		return fmt.Errorf("record title %q needs at least one letter or digit", title)
	}
	return nil
}

// SeedRecord renders the customary bootstrap record that documents the
// decision to keep a decision log at all. The record carries a review date
// one year out so a fresh workspace lints without warnings.
func SeedRecord(date string) (string, error) {
	reviewDate := ""
	if d, err := time.Parse("2006-01-02", date); err == nil {
		reviewDate = d.AddDate(1, 0, 0).Format("2006-01-02")
	}
	return template.Render(template.DefaultRecord, &template.Context{
		ID:         "ADR-0001",
		Title:      "Record architecture decisions",
		Status:     "ACCEPTED",
		Date:       date,
		ReviewDate: reviewDate,
		Context:    "Significant architectural decisions on this project were made in meetings and chat threads, then lost. New team members could not reconstruct why the system looks the way it does.",
		Decision:   "We will keep a log of significant architecture decisions as numbered markdown records in this repository, one file per decision, managed with metadoc.",
		Rationale:  "Records live next to the code they govern, travel through the same review process, and stay greppable. Lightweight numbered records have the best adoption track record of the formats we tried.",
		Alternatives: []string{
			"Wiki pages, rejected because they drift from the code and lack review",
			"Design documents in shared drives, rejected because they are rarely updated after approval",
		},
		Positive: []string{
			"Decisions and their rationale survive team turnover",
			"Reviews of new decisions happen in pull requests",
		},
		Negative: []string{
			"Writing a record adds friction to large changes",
		},
	})
}

// ChecklistYAML returns the seed compliance checklist with every flag true.
// The flag names match the published checklist schema.
func ChecklistYAML() string {
	return `# Compliance checklist for this workspace.
# Flip a flag to false when the practice is knowingly unmet; metadoc check
# reports one violation per false flag. Remove a whole category to mark it
# not evaluated.
unixPhilosophy:
  singlePurpose: true
  composability: true
  explicitDataFlow: true
  minimalDependencies: true
security:
  explicitPermissions: true
  inputValidation: true
  parameterizedQueries: true
  multiTenantIsolation: true
  defenseInDepth: true
architecture:
  layeredBoundaries: true
  dependencyInjection: true
  statelessHandlers: true
  gracefulDegradation: true
`
}

// ConfigYAML returns the starter .metadoc.yaml with the chosen decisions
// directory and the most common settings left as comments.
func ConfigYAML(decisionsDir string) string {
	return fmt.Sprintf(`# metadoc project configuration.
paths:
  decisions: %s
  checklist: compliance.yaml

# Defaults applied by metadoc new:
# new:
#   author: Platform Team
#   tags:
#     - governance
#   review_after_days: 180

# Per-rule lint overrides:
# lint:
#   rules:
#     external-links:
#       enabled: false
#     title-length:
#       max: 100
`, decisionsDir)
}

// CIWorkflow returns a GitHub Actions workflow that gates pull requests on
// the compliance checklist and the decision-log lint.
func CIWorkflow() string {
	return `name: governance

on:
  pull_request:
    branches: [main]

permissions:
  contents: read

jobs:
  check:
    name: Decision log
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4

      - uses: actions/setup-go@v5
        with:
          go-version: stable

      - name: Install metadoc
        run: go install github.com/grenas405/meta-documentation/cmd/metadoc@latest

      - name: Compliance checklist
        run: metadoc check --format junit > compliance.xml

      - name: Lint decision records
        run: metadoc lint

      - uses: actions/upload-artifact@v4
        if: always()
        with:
          name: compliance-report
          path: compliance.xml
`
}
