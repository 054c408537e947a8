package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess    = 0 // Checks passed
	ExitViolations = 1 // Compliance violations or lint errors found
	ExitError      = 2 // Configuration or runtime error
)

// ComplianceError indicates the command ran successfully but the artifacts
// it examined do not comply (checklist violations, lint errors).
type ComplianceError struct {
	Message string
}

func (e *ComplianceError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		var complianceErr *ComplianceError
		if errors.As(err, &complianceErr) {
			os.Exit(ExitViolations)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
