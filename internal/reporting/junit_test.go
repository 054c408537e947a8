package reporting

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grenas405/meta-documentation/internal/checks"
	"github.com/grenas405/meta-documentation/internal/lint"
)

func checkResults() []*checks.CheckResult {
	return []*checks.CheckResult{
		{
			Name:    "unix-philosophy",
			Passed:  true,
			Summary: "All 4 practices met",
			Data:    &checks.CheckData{Status: checks.StatusOK},
		},
		{
			Name:    "security",
			Passed:  false,
			Summary: "2 of 5 practices unmet",
			Details: []string{"Permissions are not explicit", "Input validation is missing"},
			Data:    &checks.CheckData{Status: checks.StatusWarning},
		},
		{
			Name:    "architecture",
			Passed:  true,
			Summary: "Category not evaluated",
			Data:    &checks.CheckData{Status: checks.StatusWarning, Skipped: true},
		},
		{
			Name:    "checklist-coverage",
			Passed:  true,
			Summary: "1 of 3 categories not evaluated",
			Details: []string{"architecture"},
			Data:    &checks.CheckData{Status: checks.StatusWarning},
		},
	}
}

func TestCheckSuite_Structure(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	suites := CheckSuite("compliance.yaml", checkResults(), ts, 1500*time.Millisecond)

	assert.Equal(t, 4, suites.Tests)
	assert.Equal(t, 1, suites.Failures)
	assert.Equal(t, 0, suites.Errors)
	assert.InDelta(t, 1.5, suites.Time, 0.01)

	require.Len(t, suites.TestSuites, 1)
	suite := suites.TestSuites[0]
	assert.Equal(t, "compliance", suite.Name)
	assert.Equal(t, 4, suite.Tests)
	assert.Equal(t, 1, suite.Failures)
	assert.Equal(t, 1, suite.Skipped)
	assert.Equal(t, "2026-03-01T12:00:00Z", suite.Timestamp)
	require.Len(t, suite.TestCases, 4)

	propMap := make(map[string]string)
	for _, p := range suite.Properties {
		propMap[p.Name] = p.Value
	}
	assert.Equal(t, "compliance.yaml", propMap["checklist"])
}

func TestCheckSuite_FailureNode(t *testing.T) {
	ts := time.Now()
	suites := CheckSuite("compliance.yaml", checkResults(), ts, time.Second)
	tc := suites.TestSuites[0].TestCases[1]

	assert.Equal(t, "security", tc.Name)
	assert.Equal(t, "compliance.yaml", tc.Classname)
	require.NotNil(t, tc.Failure)
	assert.Equal(t, "ComplianceViolation", tc.Failure.Type)
	assert.Equal(t, "2 of 5 practices unmet", tc.Failure.Message)
	assert.Contains(t, tc.Failure.Body, "[UNMET] Permissions are not explicit")
	assert.Contains(t, tc.Failure.Body, "[UNMET] Input validation is missing")
}

func TestCheckSuite_SkippedNode(t *testing.T) {
	suites := CheckSuite("compliance.yaml", checkResults(), time.Now(), time.Second)
	tc := suites.TestSuites[0].TestCases[2]

	assert.Equal(t, "architecture", tc.Name)
	assert.Nil(t, tc.Failure)
	require.NotNil(t, tc.Skipped)
	assert.Equal(t, "Category not evaluated", tc.Skipped.Message)
}

func TestCheckSuite_PassedNodeIsBare(t *testing.T) {
	suites := CheckSuite("compliance.yaml", checkResults(), time.Now(), time.Second)
	tc := suites.TestSuites[0].TestCases[0]

	assert.Equal(t, "unix-philosophy", tc.Name)
	assert.Nil(t, tc.Failure)
	assert.Nil(t, tc.Error)
	assert.Nil(t, tc.Skipped)
}

func TestLintSuite_Structure(t *testing.T) {
	res := &lint.Result{
		Files:      3,
		TotalLinks: 5,
		ValidLinks: 4,
		Findings: []lint.Finding{
			{File: "docs/decisions/ADR-0001-a.md", Rule: "doc-parse", Message: "Cannot parse record: bad frontmatter", Severity: lint.SeverityError},
			{File: "docs/decisions/ADR-0002-b.md", Rule: "link-broken", Message: `Link target "gone.md" does not exist`, Severity: lint.SeverityError},
			{File: "docs/decisions/ADR-0003-c.md", Rule: "doc-status", Message: `Status "proposed" should be written PROPOSED`, Severity: lint.SeverityWarning},
		},
	}

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	suites := LintSuite(res, ts, 2*time.Second)

	assert.Equal(t, 3, suites.Tests)
	assert.Equal(t, 1, suites.Failures)
	assert.Equal(t, 1, suites.Errors)

	require.Len(t, suites.TestSuites, 1)
	suite := suites.TestSuites[0]
	assert.Equal(t, "lint", suite.Name)
	assert.Equal(t, 1, suite.Skipped)
	require.Len(t, suite.TestCases, 3)

	parse := suite.TestCases[0]
	require.NotNil(t, parse.Error)
	assert.Equal(t, "ParseError", parse.Error.Type)
	assert.Nil(t, parse.Failure)

	broken := suite.TestCases[1]
	require.NotNil(t, broken.Failure)
	assert.Equal(t, "LintViolation", broken.Failure.Type)
	assert.Equal(t, "docs/decisions/ADR-0002-b.md", broken.Classname)

	warn := suite.TestCases[2]
	require.NotNil(t, warn.Skipped)
	assert.Contains(t, warn.Skipped.Message, "should be written PROPOSED")

	propMap := make(map[string]string)
	for _, p := range suite.Properties {
		propMap[p.Name] = p.Value
	}
	assert.Equal(t, "3", propMap["files"])
	assert.Equal(t, "5", propMap["total_links"])
	assert.Equal(t, "4", propMap["valid_links"])
}

func TestLintSuite_CleanRun(t *testing.T) {
	res := &lint.Result{Files: 2, TotalLinks: 4, ValidLinks: 4}
	suites := LintSuite(res, time.Now(), time.Second)

	assert.Equal(t, 0, suites.Tests)
	assert.Equal(t, 0, suites.Failures)
	require.Len(t, suites.TestSuites, 1)
	assert.Empty(t, suites.TestSuites[0].TestCases)
}

func TestWriteJUnitXML_ValidXML(t *testing.T) {
	suites := CheckSuite("compliance.yaml", checkResults(), time.Now(), time.Second)

	var buf bytes.Buffer
	require.NoError(t, WriteJUnitXML(&buf, suites))

	content := buf.String()
	assert.True(t, strings.HasPrefix(content, "<?xml"))

	var parsed JUnitTestSuites
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &parsed))
	assert.Equal(t, 4, parsed.Tests)
	assert.Equal(t, 1, parsed.Failures)
	require.Len(t, parsed.TestSuites, 1)
	assert.Len(t, parsed.TestSuites[0].TestCases, 4)
}

func TestWriteJUnitXML_CarriesViolationDetails(t *testing.T) {
	suites := CheckSuite("compliance.yaml", checkResults(), time.Now(), time.Second)

	var buf bytes.Buffer
	require.NoError(t, WriteJUnitXML(&buf, suites))

	content := buf.String()
	assert.Contains(t, content, "Permissions are not explicit")
	assert.Contains(t, content, "ComplianceViolation")
}
