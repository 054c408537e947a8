package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grenas405/meta-documentation/internal/adr"
)

// runNew executes metadoc new with a non-TTY stdin, so no wizard runs.
func runNew(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newNewCommand()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestNewCommand_CreatesNextRecord(t *testing.T) {
	dir := initWorkspace(t)

	output, err := runNew(t, "Use", "PostgreSQL", "for", "persistence")
	require.NoError(t, err)
	assert.Contains(t, output, "Creating ADR-0002")

	path := filepath.Join(dir, "docs", "decisions", "ADR-0002-use-postgresql-for-persistence.md")
	require.FileExists(t, path)

	doc, err := adr.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ADR-0002", doc.Frontmatter.ID)
	assert.Equal(t, "Use PostgreSQL for persistence", doc.Frontmatter.Title)
	assert.Equal(t, "PROPOSED", doc.Frontmatter.Status)
	assert.NotEmpty(t, doc.Frontmatter.Date)
}

func TestNewCommand_StatusAndTags(t *testing.T) {
	dir := initWorkspace(t)

	_, err := runNew(t, "Adopt trunk-based development", "--status", "accepted", "--tag", "process", "--tag", "vcs")
	require.NoError(t, err)

	doc, err := adr.Load(filepath.Join(dir, "docs", "decisions", "ADR-0002-adopt-trunk-based-development.md"))
	require.NoError(t, err)
	assert.Equal(t, "ACCEPTED", doc.Frontmatter.Status)
	assert.Equal(t, []string{"process", "vcs"}, doc.Frontmatter.Tags)
}

func TestNewCommand_Supersedes(t *testing.T) {
	dir := initWorkspace(t)

	output, err := runNew(t, "Record decisions with metadoc", "--supersedes", "ADR-0001")
	require.NoError(t, err)
	assert.Contains(t, output, "status → SUPERSEDED")

	// The new record points back at the old one.
	doc, err := adr.Load(filepath.Join(dir, "docs", "decisions", "ADR-0002-record-decisions-with-metadoc.md"))
	require.NoError(t, err)
	assert.Equal(t, "ADR-0001", doc.Frontmatter.Supersedes)
	assert.Contains(t, doc.Frontmatter.Related, "ADR-0001")

	// The old record flipped to SUPERSEDED and cross-links the successor.
	old, err := adr.Load(filepath.Join(dir, "docs", "decisions", "ADR-0001-record-architecture-decisions.md"))
	require.NoError(t, err)
	assert.Equal(t, "SUPERSEDED", old.Frontmatter.Status)
	assert.Contains(t, old.Frontmatter.Related, "ADR-0002")
}

func TestNewCommand_SupersedesUnknownID(t *testing.T) {
	initWorkspace(t)

	_, err := runNew(t, "Anything", "--supersedes", "ADR-0099")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADR-0099")
}

func TestNewCommand_RefreshesIndex(t *testing.T) {
	dir := initWorkspace(t)

	_, err := runNew(t, "Ship a dashboard")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "docs", "decisions", "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "ADR-0002")
	assert.Contains(t, string(data), "Ship a dashboard")
}

func TestNewCommand_NonLatinTitle(t *testing.T) {
	dir := initWorkspace(t)

	_, err := runNew(t, "Перейти", "на", "очереди")
	require.NoError(t, err)

	path := filepath.Join(dir, "docs", "decisions", "ADR-0002-перейти-на-очереди.md")
	require.FileExists(t, path)

	doc, err := adr.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Перейти на очереди", doc.Frontmatter.Title)
}

func TestNewCommand_RejectsBadTitle(t *testing.T) {
	initWorkspace(t)

	_, err := runNew(t, "!!!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "letter or digit")
}

func TestNewCommand_RequiresWorkspace(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := runNew(t, "A decision without a home")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metadoc init")
}
