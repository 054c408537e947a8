package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

// decisionMD returns a minimal valid decision file with the given id and title.
func decisionMD(id, title, status string) string {
	return "---\nid: " + id + "\ntitle: " + title + "\nstatus: " + status +
		"\n---\n\n## Context\n\nbody\n"
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDetectContext_DefaultLayout(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "docs", "decisions", "ADR-0001-use-go.md"),
		decisionMD("ADR-0001", "Use Go", "ACCEPTED"))

	ctx, err := DetectContext(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Type != ContextDecisionLog {
		t.Fatalf("expected ContextDecisionLog, got %d", ctx.Type)
	}
	if ctx.Root != root {
		t.Errorf("expected root %q, got %q", root, ctx.Root)
	}
	if want := filepath.Join(root, "docs", "decisions"); ctx.DecisionsDir != want {
		t.Errorf("expected decisions dir %q, got %q", want, ctx.DecisionsDir)
	}
	if len(ctx.Decisions) != 1 {
		t.Fatalf("expected 1 decision, got %d", len(ctx.Decisions))
	}
	if ctx.Decisions[0].ID != "ADR-0001" {
		t.Errorf("expected id ADR-0001, got %q", ctx.Decisions[0].ID)
	}
}

func TestDetectContext_WalkUpFromNestedDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "docs", "decisions", "ADR-0001-use-go.md"),
		decisionMD("ADR-0001", "Use Go", "ACCEPTED"))

	nested := filepath.Join(root, "src", "server", "handlers")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	ctx, err := DetectContext(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Type != ContextDecisionLog {
		t.Fatalf("expected ContextDecisionLog, got %d", ctx.Type)
	}
	if ctx.Root != root {
		t.Errorf("expected root %q, got %q", root, ctx.Root)
	}
}

func TestDetectContext_InsideDecisionsDir(t *testing.T) {
	root := t.TempDir()
	decisions := filepath.Join(root, "docs", "decisions")
	writeFile(t, filepath.Join(decisions, "ADR-0001-use-go.md"),
		decisionMD("ADR-0001", "Use Go", "ACCEPTED"))

	ctx, err := DetectContext(decisions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Type != ContextDecisionLog {
		t.Fatalf("expected ContextDecisionLog, got %d", ctx.Type)
	}
	if ctx.Root != root {
		t.Errorf("expected root above docs/ %q, got %q", root, ctx.Root)
	}
	if ctx.DecisionsDir != decisions {
		t.Errorf("expected decisions dir %q, got %q", decisions, ctx.DecisionsDir)
	}
}

func TestDetectContext_FallbackDirNames(t *testing.T) {
	for _, rel := range []string{"docs/adr", "decisions"} {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, filepath.FromSlash(rel), "ADR-0001-x.md"),
			decisionMD("ADR-0001", "X", "PROPOSED"))

		ctx, err := DetectContext(root)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", rel, err)
		}
		if ctx.Type != ContextDecisionLog {
			t.Fatalf("%s: expected ContextDecisionLog, got %d", rel, ctx.Type)
		}
		if want := filepath.Join(root, filepath.FromSlash(rel)); ctx.DecisionsDir != want {
			t.Errorf("%s: expected %q, got %q", rel, want, ctx.DecisionsDir)
		}
	}
}

func TestDetectContext_ConfiguredDirWins(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "records", "ADR-0001-x.md"),
		decisionMD("ADR-0001", "X", "PROPOSED"))
	writeFile(t, filepath.Join(root, "docs", "decisions", "ADR-0002-y.md"),
		decisionMD("ADR-0002", "Y", "PROPOSED"))

	ctx, err := DetectContext(root, WithDecisionsDir("records"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(root, "records"); ctx.DecisionsDir != want {
		t.Errorf("expected configured dir %q, got %q", want, ctx.DecisionsDir)
	}
}

func TestDetectContext_ConfigOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ConfigFileName), "paths:\n  decisions: docs/decisions\n")

	nested := filepath.Join(root, "cmd")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	ctx, err := DetectContext(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Type != ContextConfigOnly {
		t.Fatalf("expected ContextConfigOnly, got %d", ctx.Type)
	}
	if ctx.Root != root {
		t.Errorf("expected root %q, got %q", root, ctx.Root)
	}
}

func TestDetectContext_Nothing(t *testing.T) {
	dir := t.TempDir()
	ctx, err := DetectContext(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Type != ContextNone {
		t.Fatalf("expected ContextNone, got %d", ctx.Type)
	}
}

func TestScanDecisions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ADR-0002-second.md"), decisionMD("ADR-0002", "Second", "PROPOSED"))
	writeFile(t, filepath.Join(dir, "ADR-0001-first.md"), decisionMD("ADR-0001", "First", "ACCEPTED"))
	writeFile(t, filepath.Join(dir, "README.md"), "# Index\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not markdown")
	writeFile(t, filepath.Join(dir, ".hidden.md"), "hidden")

	decisions, err := ScanDecisions(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decisions) != 2 {
		t.Fatalf("expected 2 decisions, got %d", len(decisions))
	}
	if decisions[0].ID != "ADR-0001" || decisions[1].ID != "ADR-0002" {
		t.Errorf("expected id-ordered results, got %q then %q", decisions[0].ID, decisions[1].ID)
	}
	if decisions[0].Title != "First" {
		t.Errorf("expected title First, got %q", decisions[0].Title)
	}
	if decisions[0].Status != "ACCEPTED" {
		t.Errorf("expected status ACCEPTED, got %q", decisions[0].Status)
	}
}

func TestScanDecisions_FilenameFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ADR-0009-no-frontmatter.md"), "# Just a heading\n")

	decisions, err := ScanDecisions(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decisions) != 1 {
		t.Fatalf("expected 1 decision, got %d", len(decisions))
	}
	if decisions[0].ID != "ADR-0009-no-frontmatter" {
		t.Errorf("expected filename fallback id, got %q", decisions[0].ID)
	}
}

func TestFindDecision(t *testing.T) {
	ctx := &Context{Decisions: []DecisionInfo{
		{ID: "ADR-0001", Title: "First"},
		{ID: "ADR-0002", Title: "Second"},
	}}

	info, err := FindDecision(ctx, "adr-0002")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Title != "Second" {
		t.Errorf("expected Second, got %q", info.Title)
	}

	if _, err := FindDecision(ctx, "ADR-0099"); err == nil {
		t.Fatal("expected error for unknown id")
	}
}

func TestFindChecklist(t *testing.T) {
	root := t.TempDir()
	ctx := &Context{Root: root}

	// Nothing found is not an error.
	path, err := FindChecklist(ctx, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "" {
		t.Errorf("expected empty path, got %q", path)
	}

	// Conventional location.
	writeFile(t, filepath.Join(root, ChecklistFileName), "security:\n  inputValidation: true\n")
	path, err = FindChecklist(ctx, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(root, ChecklistFileName); path != want {
		t.Errorf("expected %q, got %q", want, path)
	}

	// Configured value takes priority over the conventional file.
	writeFile(t, filepath.Join(root, "governance", "checks.yaml"), "architecture:\n  layeredBoundaries: true\n")
	path, err = FindChecklist(ctx, "", filepath.Join("governance", "checks.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(root, "governance", "checks.yaml"); path != want {
		t.Errorf("expected %q, got %q", want, path)
	}

	// Explicit argument wins, and a missing explicit file is an error.
	explicit := filepath.Join(root, ChecklistFileName)
	path, err = FindChecklist(ctx, explicit, filepath.Join("governance", "checks.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != explicit {
		t.Errorf("expected %q, got %q", explicit, path)
	}
	if _, err := FindChecklist(ctx, filepath.Join(root, "nope.yaml"), ""); err == nil {
		t.Fatal("expected error for missing explicit checklist")
	}
}

func TestExistingIDs(t *testing.T) {
	ctx := &Context{Decisions: []DecisionInfo{{ID: "ADR-0001"}, {ID: "ADR-0003"}}}
	ids := ctx.ExistingIDs()
	if len(ids) != 2 || ids[0] != "ADR-0001" || ids[1] != "ADR-0003" {
		t.Errorf("unexpected ids: %v", ids)
	}
}

func TestLooksLikePath(t *testing.T) {
	cases := map[string]bool{
		"ADR-0001":       false,
		"docs/decisions": true,
		`docs\decisions`: true,
		"checklist.yaml": true,
		".":              true,
	}
	for input, want := range cases {
		if got := LooksLikePath(input); got != want {
			t.Errorf("LooksLikePath(%q) = %v, want %v", input, got, want)
		}
	}
}
