package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runExport(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newExportCommand()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestExportCommand_DefaultOutput(t *testing.T) {
	dir := initWorkspace(t)

	output, err := runExport(t)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "decision-log.tar.gz"))
	assert.Contains(t, output, "decision-log.tar.gz")
	assert.Contains(t, output, "decisions/ADR-0001-record-architecture-decisions.md")
	assert.Contains(t, output, "compliance.yaml")
}

func TestExportCommand_OutputFlag(t *testing.T) {
	dir := initWorkspace(t)
	out := filepath.Join(dir, "bundle.tar.gz")

	output, err := runExport(t, "-o", out)
	require.NoError(t, err)

	assert.FileExists(t, out)
	assert.Contains(t, output, "bundle.tar.gz")
}

func TestExportCommand_RequiresWorkspace(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := runExport(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metadoc init")
}
