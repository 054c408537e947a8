// Package workspace provides unified decision-log workspace detection for
// metadoc commands. It walks parent directories to find the decisions
// directory (or a project config marking the root) and scans it for decision
// records.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/grenas405/meta-documentation/internal/adr"
)

// ContextType represents the type of workspace detected.
type ContextType int

const (
	ContextNone        ContextType = iota
	ContextDecisionLog             // a decisions directory was located
	ContextConfigOnly              // a project config was found but no decisions directory yet
)

// maxParentWalk is the maximum number of parent directories to walk up when searching.
const maxParentWalk = 10

// ConfigFileName is the project configuration file that marks a workspace root.
const ConfigFileName = ".metadoc.yaml"

// ChecklistFileName is the conventional compliance checklist file name.
const ChecklistFileName = "compliance.yaml"

// decisionsDirCandidates are tried in order at each level of the walk, after
// any configured override.
var decisionsDirCandidates = []string{
	filepath.Join("docs", "decisions"),
	filepath.Join("docs", "adr"),
	"decisions",
}

// DetectOption configures workspace detection behavior.
type DetectOption func(*detectOptions)

type detectOptions struct {
	decisionsDir string // relative decisions directory (default "docs/decisions")
}

func defaultDetectOptions() detectOptions {
	return detectOptions{decisionsDir: filepath.Join("docs", "decisions")}
}

// WithDecisionsDir overrides the decisions subdirectory tried first during detection.
func WithDecisionsDir(dir string) DetectOption {
	return func(o *detectOptions) {
		if dir != "" {
			o.decisionsDir = filepath.FromSlash(dir)
		}
	}
}

// DecisionInfo holds information about a discovered decision record.
type DecisionInfo struct {
	ID     string // record id from frontmatter
	Title  string // record title from frontmatter
	Status string // raw status string from frontmatter
	Date   string // decision date from frontmatter, if any
	Path   string // absolute path to the decision file
}

// Context represents the detected workspace.
type Context struct {
	Type         ContextType
	Root         string         // workspace root directory
	DecisionsDir string         // absolute path to the decisions directory ("" when none)
	Decisions    []DecisionInfo // discovered decision records, ordered by id
}

// DetectContext analyzes the given directory to determine the workspace.
// It checks:
// 1. Whether dir itself is a decisions directory (contains ADR-*.md files)
// 2. Walk up parents for a decisions directory (configured name, then defaults)
// 3. Walk up parents for a project config file marking the root
func DetectContext(dir string, opts ...DetectOption) (*Context, error) {
	o := defaultDetectOptions()
	for _, fn := range opts {
		fn(&o)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	// 1. The given directory may itself be the decisions directory.
	if hasDecisionFiles(absDir) {
		root := rootAbove(absDir)
		return contextFor(root, absDir)
	}

	// 2. Walk up looking for a decisions directory.
	candidates := append([]string{o.decisionsDir}, decisionsDirCandidates...)
	current := absDir
	for i := 0; i <= maxParentWalk; i++ {
		for _, rel := range candidates {
			candidate := filepath.Join(current, rel)
			if isDir(candidate) {
				return contextFor(current, candidate)
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			break // reached filesystem root
		}
		current = parent
	}

	// 3. Walk up looking for a project config marking the root.
	current = absDir
	for i := 0; i <= maxParentWalk; i++ {
		if isFile(filepath.Join(current, ConfigFileName)) {
			return &Context{Type: ContextConfigOnly, Root: current}, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	return &Context{Type: ContextNone, Root: absDir}, nil
}

func contextFor(root, decisionsDir string) (*Context, error) {
	decisions, err := ScanDecisions(decisionsDir)
	if err != nil {
		return nil, err
	}
	return &Context{
		Type:         ContextDecisionLog,
		Root:         root,
		DecisionsDir: decisionsDir,
		Decisions:    decisions,
	}, nil
}

// rootAbove returns the project root for a decisions directory: its parent,
// or the grandparent when the decisions directory lives under docs/.
func rootAbove(decisionsDir string) string {
	parent := filepath.Dir(decisionsDir)
	if filepath.Base(parent) == "docs" {
		return filepath.Dir(parent)
	}
	return parent
}

// ScanDecisions reads dir and parses the frontmatter of every decision file.
// Index files, hidden files, and subdirectories are skipped. Files that fail
// to parse are reported with whatever could be read from their name.
func ScanDecisions(dir string) ([]DecisionInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading decisions directory: %w", err)
	}

	var decisions []DecisionInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if strings.ToLower(filepath.Ext(name)) != ".md" {
			continue
		}
		if IsIndexFile(name) {
			continue
		}
		path := filepath.Join(dir, name)
		info := DecisionInfo{Path: path}
		if doc, err := adr.Load(path); err == nil {
			info.ID = strings.TrimSpace(doc.Frontmatter.ID)
			info.Title = strings.TrimSpace(doc.Frontmatter.Title)
			info.Status = strings.TrimSpace(doc.Frontmatter.Status)
			info.Date = strings.TrimSpace(doc.Frontmatter.Date)
		}
		if info.ID == "" {
			// Fall back to the file name when frontmatter is missing/invalid.
			info.ID = strings.TrimSuffix(name, filepath.Ext(name))
		}
		decisions = append(decisions, info)
	}

	sort.Slice(decisions, func(i, j int) bool { return decisions[i].ID < decisions[j].ID })
	return decisions, nil
}

// IsIndexFile reports whether name is the decisions index rather than a record.
func IsIndexFile(name string) bool {
	lower := strings.ToLower(name)
	return lower == "readme.md" || lower == "index.md"
}

// FindDecision locates a record by id in the workspace.
func FindDecision(ctx *Context, id string) (*DecisionInfo, error) {
	for i := range ctx.Decisions {
		if strings.EqualFold(ctx.Decisions[i].ID, id) {
			return &ctx.Decisions[i], nil
		}
	}
	return nil, fmt.Errorf("decision %q not found in workspace", id)
}

// ExistingIDs returns the ids of all discovered decisions.
func (c *Context) ExistingIDs() []string {
	ids := make([]string, 0, len(c.Decisions))
	for _, d := range c.Decisions {
		ids = append(ids, d.ID)
	}
	return ids
}

// FindChecklist resolves the compliance checklist path using priority order:
// 1. explicit path argument (missing file is an error)
// 2. configured path from project config (relative to the workspace root)
// 3. {root}/compliance.yaml (conventional location)
// Returns empty string if none found (not an error).
func FindChecklist(ctx *Context, explicit, configured string) (string, error) {
	if explicit != "" {
		if isFile(explicit) {
			return explicit, nil
		}
		return "", fmt.Errorf("checklist file %q not found", explicit)
	}

	if configured != "" {
		p := configured
		if !filepath.IsAbs(p) {
			p = filepath.Join(ctx.Root, p)
		}
		if isFile(p) {
			return p, nil
		}
	}

	conventional := filepath.Join(ctx.Root, ChecklistFileName)
	if isFile(conventional) {
		return conventional, nil
	}

	return "", nil
}

// hasDecisionFiles reports whether dir directly contains ADR-*.md files.
func hasDecisionFiles(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "ADR-") && strings.ToLower(filepath.Ext(name)) == ".md" {
			return true
		}
	}
	return false
}

// isFile returns true if path exists and is a regular file.
func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

// isDir returns true if path exists and is a directory.
func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// LooksLikePath returns true if the string appears to be a file path rather
// than a record id. Exported so CLI packages share the same heuristic.
func LooksLikePath(s string) bool {
	return strings.ContainsAny(s, `/\`) ||
		filepath.Ext(s) != "" ||
		s == "."
}
