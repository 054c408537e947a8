// Package lint checks a decision log for structural and link problems.
//
// Every decision record runs through the document checkers; records and the
// decisions index are both scanned for markdown link problems (broken
// relative targets, directory targets, targets escaping the workspace, dead
// external URLs) and records unreachable from the index are reported.
// Findings carry a rule name and a severity: error findings fail the run,
// warnings do not.
package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/grenas405/meta-documentation/internal/adr"
	"github.com/grenas405/meta-documentation/internal/checks"
	"github.com/grenas405/meta-documentation/internal/workspace"
)

// Finding severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

const defaultWorkers = 4

// Finding describes a single problem found in one file.
type Finding struct {
	File     string `json:"file"`     // path relative to the workspace root
	Rule     string `json:"rule"`     // e.g. "doc-status", "link-broken"
	Message  string `json:"message"`  // human-readable description
	Severity string `json:"severity"` // "error" or "warning"
}

// Result aggregates lint findings across the decision log.
type Result struct {
	Files      int       `json:"files"`
	TotalLinks int       `json:"total_links"`
	ValidLinks int       `json:"valid_links"`
	Findings   []Finding `json:"findings"`
}

// Errors counts error-severity findings.
func (r *Result) Errors() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Warnings counts warning-severity findings.
func (r *Result) Warnings() int {
	return len(r.Findings) - r.Errors()
}

// Passed returns true when no error-severity findings exist.
func (r *Result) Passed() bool {
	return r.Errors() == 0
}

// Options configures a lint run.
type Options struct {
	// Dir is the decisions directory to lint.
	Dir string
	// Root is the workspace root; relative links must stay inside it.
	// Defaults to the parent of Dir.
	Root string
	// Workers bounds the number of files linted concurrently.
	Workers int
	// CheckExternalURLs enables HTTP validation of external links.
	CheckExternalURLs bool
	// RequiredSections overrides the default required section list.
	RequiredSections []string
	// MaxTitleRunes overrides the default title length limit.
	MaxTitleRunes int
	// Disabled switches off individual rules by name.
	Disabled map[string]bool
}

func (o Options) ruleEnabled(name string) bool {
	return !o.Disabled[name]
}

// fileReport is the per-file output of a lint worker, merged after the
// errgroup finishes.
type fileReport struct {
	relPath      string
	localLinks   int
	externalURLs []string
	resolved     []string // local targets as root-relative normalized paths
	findings     []Finding
}

// Run lints every decision file under opts.Dir and returns the aggregated
// result. Files are processed concurrently; findings come back in a
// deterministic order regardless of scheduling.
func Run(ctx context.Context, opts Options) (*Result, error) {
	dir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolving lint directory: %w", err)
	}
	root := opts.Root
	if root == "" {
		root = filepath.Dir(dir)
	}
	if root, err = filepath.Abs(root); err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	decisions, indexPath, err := collectFiles(dir)
	if err != nil {
		return nil, err
	}

	paths := decisions
	if indexPath != "" {
		paths = append(paths, indexPath)
	}

	checkers := documentCheckers(opts)
	reports := make([]*fileReport, len(paths))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, path := range paths {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			rep, err := lintFile(path, root, path == indexPath, checkers)
			if err != nil {
				return err
			}
			reports[i] = rep
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Files: len(paths)}
	uniqueURLs := make(map[string][]string)
	for _, rep := range reports {
		for _, f := range rep.findings {
			if opts.ruleEnabled(f.Rule) {
				res.Findings = append(res.Findings, f)
			}
		}
		res.TotalLinks += rep.localLinks
		for _, u := range rep.externalURLs {
			uniqueURLs[u] = appendUnique(uniqueURLs[u], rep.relPath)
		}
	}

	// One check per unique URL, attributed to the first file that used it.
	res.TotalLinks += len(uniqueURLs)
	if opts.CheckExternalURLs && opts.ruleEnabled("link-dead-url") {
		res.Findings = append(res.Findings, checkExternalURLs(ctx, uniqueURLs)...)
	}

	switch {
	case indexPath == "":
		if opts.ruleEnabled("index-missing") && len(decisions) > 0 {
			res.Findings = append(res.Findings, Finding{
				File:     relToRoot(root, dir),
				Rule:     "index-missing",
				Message:  "No decisions index (README.md or index.md) found",
				Severity: SeverityWarning,
			})
		}
	case opts.ruleEnabled("link-orphan"):
		for _, orphan := range unreachableDecisions(relToRoot(root, indexPath), reports) {
			res.Findings = append(res.Findings, Finding{
				File:     orphan,
				Rule:     "link-orphan",
				Message:  "Record is not linked from the decisions index",
				Severity: SeverityWarning,
			})
		}
	}

	problems := 0
	for _, f := range res.Findings {
		switch f.Rule {
		case "link-broken", "link-directory", "link-scope", "link-dead-url":
			problems++
		}
	}
	res.ValidLinks = res.TotalLinks - problems
	if res.ValidLinks < 0 {
		res.ValidLinks = 0
	}

	sort.Slice(res.Findings, func(i, j int) bool {
		a, b := res.Findings[i], res.Findings[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		return a.Message < b.Message
	})
	return res, nil
}

// collectFiles returns the decision records in dir plus the index file when
// present. Record paths are absolute and sorted.
func collectFiles(dir string) (decisions []string, index string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, "", fmt.Errorf("reading decisions directory: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if strings.ToLower(filepath.Ext(name)) != ".md" {
			continue
		}
		if workspace.IsIndexFile(name) {
			index = filepath.Join(dir, name)
			continue
		}
		decisions = append(decisions, filepath.Join(dir, name))
	}
	sort.Strings(decisions)
	return decisions, index, nil
}

// documentCheckers builds the checker list with config overrides applied and
// disabled rules removed.
func documentCheckers(opts Options) []checks.ComplianceChecker[adr.Doc] {
	var list []checks.ComplianceChecker[adr.Doc]
	for _, c := range checks.DocumentCheckers() {
		if !opts.ruleEnabled(c.Name()) {
			continue
		}
		switch c.(type) {
		case *checks.SectionsChecker:
			c = &checks.SectionsChecker{Required: opts.RequiredSections}
		case *checks.TitleLengthChecker:
			c = &checks.TitleLengthChecker{Max: opts.MaxTitleRunes}
		}
		list = append(list, c)
	}
	return list
}

// lintFile runs document checks (unless the file is the index) and local
// link validation on a single markdown file. External URLs are collected for
// the deduplicated pass in Run.
func lintFile(path, root string, isIndex bool, checkers []checks.ComplianceChecker[adr.Doc]) (*fileReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	rel := relToRoot(root, path)
	rep := &fileReport{relPath: rel}

	if !isIndex {
		var doc adr.Doc
		if err := doc.UnmarshalText(data); err != nil {
			rep.findings = append(rep.findings, Finding{
				File:     rel,
				Rule:     "doc-parse",
				Message:  fmt.Sprintf("Cannot parse record: %v", err),
				Severity: SeverityError,
			})
		} else {
			doc.Path = path
			results, err := checks.RunChecks(checkers, doc)
			if err != nil {
				return nil, fmt.Errorf("checking %s: %w", rel, err)
			}
			rep.findings = append(rep.findings, findingsFromChecks(rel, results)...)
		}
	}

	sourceDir := filepath.Dir(path)
	for _, l := range extractLinksFromSource(data) {
		target := l.target
		if shouldSkipLink(target) {
			continue
		}
		if isExternalURL(target) {
			rep.externalURLs = appendUnique(rep.externalURLs, stripFragment(target))
			continue
		}
		localTarget := stripFragment(target)
		if localTarget == "" {
			continue // fragment-only
		}
		rep.localLinks++

		resolved := filepath.Clean(filepath.Join(sourceDir, filepath.FromSlash(localTarget)))
		if !isWithinDir(resolved, root) {
			rep.findings = append(rep.findings, Finding{
				File:     rel,
				Rule:     "link-scope",
				Message:  fmt.Sprintf("Link target %q escapes the workspace root", target),
				Severity: SeverityError,
			})
			continue
		}
		if relTarget, err := filepath.Rel(root, resolved); err == nil {
			rep.resolved = append(rep.resolved, normalizePath(relTarget))
		}

		info, err := os.Stat(resolved)
		if err != nil {
			rep.findings = append(rep.findings, Finding{
				File:     rel,
				Rule:     "link-broken",
				Message:  fmt.Sprintf("Link target %q does not exist", target),
				Severity: SeverityError,
			})
			continue
		}
		if info.IsDir() {
			rep.findings = append(rep.findings, Finding{
				File:     rel,
				Rule:     "link-directory",
				Message:  fmt.Sprintf("Link target %q is a directory, not a file", target),
				Severity: SeverityWarning,
			})
		}
	}
	return rep, nil
}

// findingsFromChecks converts checker results to findings. Failed checks are
// errors; passed checks carrying a warning status become warnings.
func findingsFromChecks(rel string, results []*checks.CheckResult) []Finding {
	var findings []Finding
	for _, r := range results {
		severity := ""
		switch {
		case !r.Passed:
			severity = SeverityError
		case checks.StatusOf(r) == checks.StatusWarning:
			severity = SeverityWarning
		default:
			continue
		}
		findings = append(findings, Finding{
			File:     rel,
			Rule:     r.Name,
			Message:  checkMessage(r),
			Severity: severity,
		})
	}
	return findings
}

func checkMessage(r *checks.CheckResult) string {
	if len(r.Details) == 0 {
		return r.Summary
	}
	return r.Summary + ": " + strings.Join(r.Details, "; ")
}

// relToRoot renders path relative to root with forward slashes for reporting.
func relToRoot(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
