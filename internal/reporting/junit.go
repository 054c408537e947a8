package reporting

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/grenas405/meta-documentation/internal/checks"
	"github.com/grenas405/meta-documentation/internal/lint"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one check or lint run.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Time       float64         `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one compliance check or one lint finding.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitError   `xml:"error,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

// JUnitFailure represents an unmet requirement.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitError represents an unexpected error, such as an unparsable record.
type JUnitError struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitSkipped marks a check whose target was absent, or a lint warning that
// does not gate the build.
type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// CheckSuite converts compliance check results to JUnit XML so CI systems
// can gate on governance. Each check is one testcase; categories absent from
// the checklist come through as skipped.
func CheckSuite(checklistPath string, results []*checks.CheckResult, ts time.Time, took time.Duration) *JUnitTestSuites {
	suite := JUnitTestSuite{
		Name:      "compliance",
		Tests:     len(results),
		Time:      took.Seconds(),
		Timestamp: ts.Format(time.RFC3339),
		Properties: []JUnitProperty{
			{Name: "checklist", Value: checklistPath},
		},
	}

	failures, skipped := 0, 0
	for _, r := range results {
		tc := JUnitTestCase{
			Name:      r.Name,
			Classname: checklistPath,
		}
		switch {
		case !r.Passed:
			failures++
			tc.Failure = &JUnitFailure{
				Message: r.Summary,
				Type:    "ComplianceViolation",
				Body:    failureBody(r),
			}
		case isSkipped(r):
			skipped++
			tc.Skipped = &JUnitSkipped{Message: r.Summary}
		}
		suite.TestCases = append(suite.TestCases, tc)
	}
	suite.Failures = failures
	suite.Skipped = skipped

	return &JUnitTestSuites{
		Tests:      len(results),
		Failures:   failures,
		Time:       took.Seconds(),
		TestSuites: []JUnitTestSuite{suite},
	}
}

// LintSuite converts a lint result to JUnit XML. Each finding is one
// testcase named after its rule: error findings produce failure nodes,
// unparsable records produce error nodes, and warnings come through as
// skipped so they surface in CI without gating it.
func LintSuite(res *lint.Result, ts time.Time, took time.Duration) *JUnitTestSuites {
	suite := JUnitTestSuite{
		Name:      "lint",
		Time:      took.Seconds(),
		Timestamp: ts.Format(time.RFC3339),
		Properties: []JUnitProperty{
			{Name: "files", Value: strconv.Itoa(res.Files)},
			{Name: "total_links", Value: strconv.Itoa(res.TotalLinks)},
			{Name: "valid_links", Value: strconv.Itoa(res.ValidLinks)},
		},
	}

	failures, errors, skipped := 0, 0, 0
	for _, f := range res.Findings {
		tc := JUnitTestCase{Name: f.Rule, Classname: f.File}
		switch {
		case f.Rule == "doc-parse":
			errors++
			tc.Error = &JUnitError{Message: f.Message, Type: "ParseError"}
		case f.Severity == lint.SeverityError:
			failures++
			tc.Failure = &JUnitFailure{Message: f.Message, Type: "LintViolation"}
		default:
			skipped++
			tc.Skipped = &JUnitSkipped{Message: f.Message}
		}
		suite.TestCases = append(suite.TestCases, tc)
	}
	suite.Tests = len(suite.TestCases)
	suite.Failures = failures
	suite.Errors = errors
	suite.Skipped = skipped

	return &JUnitTestSuites{
		Tests:      suite.Tests,
		Failures:   failures,
		Errors:     errors,
		Time:       took.Seconds(),
		TestSuites: []JUnitTestSuite{suite},
	}
}

func isSkipped(r *checks.CheckResult) bool {
	d, ok := r.Data.(*checks.CheckData)
	return ok && d.Skipped
}

// failureBody lists the unmet practices plus any evidence line.
func failureBody(r *checks.CheckResult) string {
	var b strings.Builder
	for _, d := range r.Details {
		fmt.Fprintf(&b, "[UNMET] %s\n", d)
	}
	if d, ok := r.Data.(*checks.CheckData); ok && d.Evidence != "" {
		b.WriteString(d.Evidence + "\n")
	}
	return b.String()
}

// WriteJUnitXML writes the document with the XML header to w.
func WriteJUnitXML(w io.Writer, suites *JUnitTestSuites) error {
	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}
	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
