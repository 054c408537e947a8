// Package checks provides the ComplianceChecker interface and implementations
// for validating governance artifacts: compliance checklists and decision
// documents.
package checks

import "errors"

// CheckResult holds the outcome of a single compliance check.
type CheckResult struct {
	// Name is a stable check identifier used in output and downstream processing.
	Name string
	// Passed indicates whether the check met its acceptance criteria.
	Passed bool
	// Summary is a human-readable one-line result intended for concise display.
	Summary string
	// Details provides optional supporting lines for diagnostics or remediation.
	Details []string
	// Data carries an optional checker-specific payload for structured consumers.
	Data any
}

// ComplianceChecker runs a single compliance check against a target of type T.
type ComplianceChecker[T any] interface {
	Name() string
	Check(T) (*CheckResult, error)
}

// RunChecks executes each checker against target, collecting results and errors.
func RunChecks[T any](checkers []ComplianceChecker[T], target T) ([]*CheckResult, error) {
	var (
		errs    []error
		results []*CheckResult
	)
	for _, c := range checkers {
		r, err := c.Check(target)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results = append(results, r)
	}
	return results, errors.Join(errs...)
}
