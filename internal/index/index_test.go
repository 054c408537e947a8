package index

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grenas405/meta-documentation/internal/workspace"
)

func info(id, title, status, path string) workspace.DecisionInfo {
	return workspace.DecisionInfo{ID: id, Title: title, Status: status, Path: path}
}

func TestBuild_GroupsByLifecycleOrder(t *testing.T) {
	decisions := []workspace.DecisionInfo{
		info("ADR-0002", "Adopt Go", "ACCEPTED", "/ws/docs/decisions/ADR-0002-adopt-go.md"),
		info("ADR-0003", "Drop FTP", "PROPOSED", "/ws/docs/decisions/ADR-0003-drop-ftp.md"),
		info("ADR-0001", "Use Postgres", "SUPERSEDED", "/ws/docs/decisions/ADR-0001-use-postgres.md"),
	}

	out := Build(decisions)

	proposed := strings.Index(out, "## PROPOSED")
	accepted := strings.Index(out, "## ACCEPTED")
	superseded := strings.Index(out, "## SUPERSEDED")
	require.True(t, proposed >= 0 && accepted >= 0 && superseded >= 0)
	assert.Less(t, proposed, accepted)
	assert.Less(t, accepted, superseded)
	assert.NotContains(t, out, "## DEPRECATED", "empty groups are omitted")
}

func TestBuild_EntriesLinkByFileName(t *testing.T) {
	out := Build([]workspace.DecisionInfo{
		info("ADR-0001", "Use Postgres", "ACCEPTED", "/ws/docs/decisions/ADR-0001-use-postgres.md"),
	})

	assert.Contains(t, out, "- [ADR-0001: Use Postgres](ADR-0001-use-postgres.md)")
}

func TestBuild_SortsGroupsByID(t *testing.T) {
	out := Build([]workspace.DecisionInfo{
		info("ADR-0010", "Ten", "ACCEPTED", "/ws/d/ADR-0010-ten.md"),
		info("ADR-0002", "Two", "ACCEPTED", "/ws/d/ADR-0002-two.md"),
	})

	assert.Less(t, strings.Index(out, "ADR-0002"), strings.Index(out, "ADR-0010"))
}

func TestBuild_UnknownStatusGetsOwnGroup(t *testing.T) {
	out := Build([]workspace.DecisionInfo{
		info("ADR-0001", "Use Postgres", "rejected", "/ws/d/ADR-0001-use-postgres.md"),
		info("ADR-0002", "Adopt Go", "", "/ws/d/ADR-0002-adopt-go.md"),
	})

	assert.Contains(t, out, "## REJECTED")
	assert.Contains(t, out, "## UNKNOWN")
}

func TestBuild_TitlelessRecordLinksByID(t *testing.T) {
	out := Build([]workspace.DecisionInfo{
		info("ADR-0001", "", "PROPOSED", "/ws/d/ADR-0001.md"),
	})

	assert.Contains(t, out, "- [ADR-0001](ADR-0001.md)")
}

func TestBuild_EmptyLog(t *testing.T) {
	out := Build(nil)
	assert.Contains(t, out, "# Decision Log")
	assert.NotContains(t, out, "##")
}

func TestWrite_CreatesReadme(t *testing.T) {
	dir := t.TempDir()
	path, err := Write(dir, []workspace.DecisionInfo{
		info("ADR-0001", "Use Postgres", "ACCEPTED", filepath.Join(dir, "ADR-0001-use-postgres.md")),
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "README.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ADR-0001")
}

func TestWrite_ReusesExistingIndexName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.md"), []byte("old"), 0644))

	path, err := Write(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "index.md"), path)

	_, err = os.Stat(filepath.Join(dir, "README.md"))
	assert.True(t, os.IsNotExist(err), "no second index file appears")
}
