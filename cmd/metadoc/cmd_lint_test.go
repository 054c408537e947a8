package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runLint(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newLintCommand()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestLintCommand_CleanWorkspace(t *testing.T) {
	initWorkspace(t)

	output, err := runLint(t)
	require.NoError(t, err)
	assert.Contains(t, output, "Errors: 0")
	assert.Contains(t, output, "clean")
}

func TestLintCommand_BrokenLink(t *testing.T) {
	dir := initWorkspace(t)
	path := filepath.Join(dir, "docs", "decisions", "ADR-0002-broken-link.md")
	require.NoError(t, os.WriteFile(path, []byte(`---
id: ADR-0002
title: Broken link
status: PROPOSED
---

## Context

See [the missing doc](./does-not-exist.md).

## Decision

Something.

## Consequences

Something.
`), 0o644))

	output, err := runLint(t)
	require.Error(t, err)

	var complianceErr *ComplianceError
	require.ErrorAs(t, err, &complianceErr)
	assert.Contains(t, output, "link-broken")
	assert.Contains(t, output, "does-not-exist.md")
}

func TestLintCommand_BadFrontmatter(t *testing.T) {
	dir := initWorkspace(t)
	path := filepath.Join(dir, "docs", "decisions", "ADR-0003-bad-status.md")
	require.NoError(t, os.WriteFile(path, []byte(`---
id: ADR-0003
title: Bad status
status: WIP
---

## Context

Text.

## Decision

Text.

## Consequences

Text.
`), 0o644))

	output, err := runLint(t)
	require.Error(t, err)
	assert.Contains(t, output, "doc-status")
}

func TestLintCommand_DisabledRule(t *testing.T) {
	dir := initWorkspace(t)

	// An extra record not linked from the index trips link-orphan; the
	// config can turn the rule off.
	path := filepath.Join(dir, "docs", "decisions", "ADR-0002-orphan.md")
	require.NoError(t, os.WriteFile(path, []byte(`---
id: ADR-0002
title: Orphan
status: PROPOSED
---

## Context

Text.

## Decision

Text.

## Consequences

Text.
`), 0o644))

	output, err := runLint(t)
	require.NoError(t, err, output)
	assert.Contains(t, output, "link-orphan")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".metadoc.yaml"), []byte(`paths:
  decisions: docs/decisions
lint:
  rules:
    link-orphan:
      enabled: false
`), 0o644))

	output, err = runLint(t)
	require.NoError(t, err)
	assert.NotContains(t, output, "link-orphan")
}

func TestLintCommand_JSONFormat(t *testing.T) {
	initWorkspace(t)

	output, err := runLint(t, "--format", "json")
	require.NoError(t, err)

	var res struct {
		Files    int `json:"files"`
		Findings []struct {
			Rule string `json:"rule"`
		} `json:"findings"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &res))
	assert.Equal(t, 2, res.Files) // seed record plus the index
}

func TestLintCommand_JUnitFormat(t *testing.T) {
	initWorkspace(t)

	output, err := runLint(t, "--format", "junit")
	require.NoError(t, err)
	assert.Contains(t, output, "<testsuites")
}

func TestLintCommand_RequiresWorkspace(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := runLint(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metadoc init")
}
