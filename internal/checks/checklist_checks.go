package checks

import (
	"fmt"

	"github.com/grenas405/meta-documentation/internal/checklist"
)

// notEvaluatedEvidence explains the pass-on-absence policy wherever an
// absent category is reported.
const notEvaluatedEvidence = "absent categories pass by policy; supply the category to gate on it"

// UnixPhilosophyChecker reports the Unix-philosophy category of a checklist.
type UnixPhilosophyChecker struct{}

var _ ComplianceChecker[checklist.ComplianceChecklist] = (*UnixPhilosophyChecker)(nil)

func (*UnixPhilosophyChecker) Name() string { return "unix-philosophy" }

func (*UnixPhilosophyChecker) Check(c checklist.ComplianceChecklist) (*CheckResult, error) {
	if c.UnixPhilosophy == nil {
		return notEvaluatedResult("unix-philosophy"), nil
	}
	return categoryResult("unix-philosophy", 4, c.UnixPhilosophy.Violations()), nil
}

// SecurityChecker reports the security category of a checklist.
type SecurityChecker struct{}

var _ ComplianceChecker[checklist.ComplianceChecklist] = (*SecurityChecker)(nil)

func (*SecurityChecker) Name() string { return "security" }

func (*SecurityChecker) Check(c checklist.ComplianceChecklist) (*CheckResult, error) {
	if c.Security == nil {
		return notEvaluatedResult("security"), nil
	}
	return categoryResult("security", 5, c.Security.Violations()), nil
}

// ArchitectureChecker reports the architecture category of a checklist.
type ArchitectureChecker struct{}

var _ ComplianceChecker[checklist.ComplianceChecklist] = (*ArchitectureChecker)(nil)

func (*ArchitectureChecker) Name() string { return "architecture" }

func (*ArchitectureChecker) Check(c checklist.ComplianceChecklist) (*CheckResult, error) {
	if c.Architecture == nil {
		return notEvaluatedResult("architecture"), nil
	}
	return categoryResult("architecture", 4, c.Architecture.Violations()), nil
}

// CoverageChecker warns when the checklist omits categories entirely. It
// never fails a run; it exists so a checklist that passes only because
// categories were left out is visibly incomplete.
type CoverageChecker struct{}

var _ ComplianceChecker[checklist.ComplianceChecklist] = (*CoverageChecker)(nil)

func (*CoverageChecker) Name() string { return "checklist-coverage" }

func (*CoverageChecker) Check(c checklist.ComplianceChecklist) (*CheckResult, error) {
	var absent []string
	if c.UnixPhilosophy == nil {
		absent = append(absent, "unixPhilosophy")
	}
	if c.Security == nil {
		absent = append(absent, "security")
	}
	if c.Architecture == nil {
		absent = append(absent, "architecture")
	}
	if len(absent) > 0 {
		return &CheckResult{
			Name:    "checklist-coverage",
			Passed:  true,
			Summary: fmt.Sprintf("%d of 3 categories not evaluated", len(absent)),
			Details: absent,
			Data:    &CheckData{Status: StatusWarning, Evidence: notEvaluatedEvidence},
		}, nil
	}
	return &CheckResult{
		Name:    "checklist-coverage",
		Passed:  true,
		Summary: "All 3 categories evaluated",
		Data:    &CheckData{Status: StatusOptimal},
	}, nil
}

// ChecklistCheckers returns all checklist checkers in display order.
func ChecklistCheckers() []ComplianceChecker[checklist.ComplianceChecklist] {
	return []ComplianceChecker[checklist.ComplianceChecklist]{
		&UnixPhilosophyChecker{},
		&SecurityChecker{},
		&ArchitectureChecker{},
		&CoverageChecker{},
	}
}

func notEvaluatedResult(name string) *CheckResult {
	return &CheckResult{
		Name:    name,
		Passed:  true,
		Summary: "Category not evaluated",
		Data:    &CheckData{Status: StatusWarning, Evidence: notEvaluatedEvidence, Skipped: true},
	}
}

func categoryResult(name string, total int, violations []string) *CheckResult {
	if len(violations) > 0 {
		return &CheckResult{
			Name:    name,
			Passed:  false,
			Summary: fmt.Sprintf("%d of %d practices unmet", len(violations), total),
			Details: violations,
			Data:    &CheckData{Status: StatusWarning},
		}
	}
	return &CheckResult{
		Name:    name,
		Passed:  true,
		Summary: fmt.Sprintf("All %d practices met", total),
		Data:    &CheckData{Status: StatusOK},
	}
}
