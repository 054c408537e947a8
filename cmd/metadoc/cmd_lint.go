package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/grenas405/meta-documentation/internal/lint"
	"github.com/grenas405/meta-documentation/internal/projectconfig"
	"github.com/grenas405/meta-documentation/internal/reporting"
	"github.com/grenas405/meta-documentation/internal/spinner"
)

func newLintCommand() *cobra.Command {
	var checkURLs bool

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Lint the decision log",
		Long: `Lint every record in the decisions directory.

Each record runs through the document checks (frontmatter, id format,
status, filename, required sections, supersede cross-references) and
every markdown file is scanned for link problems: broken relative
targets, directory targets, targets escaping the workspace, and records
unreachable from the index. With --check-urls, external links are
verified over HTTP.

Rules can be disabled or tuned per workspace under lint.rules in
.metadoc.yaml.

Exit codes: 0 when clean or warnings only, 1 on error findings, 2 on
runtime errors.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return lintCommandE(cmd, checkURLs)
		},
		SilenceErrors: true,
	}
	cmd.Flags().BoolVar(&checkURLs, "check-urls", false, "Verify external links over HTTP")
	cmd.Flags().String("format", "text", "Output format: text | json | junit")
	return cmd
}

func lintCommandE(cmd *cobra.Command, checkURLs bool) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != "text" && format != "json" && format != "junit" {
		return fmt.Errorf("invalid format %q: expected text, json, or junit", format)
	}

	wsCtx, cfg, err := requireDecisionLog()
	if err != nil {
		return err
	}

	opts, err := lintOptions(wsCtx.DecisionsDir, wsCtx.Root, cfg, checkURLs)
	if err != nil {
		return err
	}

	// A URL pass can take a while; show progress on a terminal. The spinner
	// must be stopped before any report output so frames and clears never
	// interleave with it.
	stop := func() {}
	if opts.CheckExternalURLs && format == "text" {
		if f, ok := cmd.OutOrStdout().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			stop = spinner.Start(cmd.ErrOrStderr(), "checking links")
		}
	}

	started := time.Now()
	res, err := lint.Run(cmd.Context(), opts)
	stop()
	if err != nil {
		return err
	}

	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	case "junit":
		suites := reporting.LintSuite(res, started, time.Since(started))
		if err := reporting.WriteJUnitXML(cmd.OutOrStdout(), suites); err != nil {
			return err
		}
	default:
		displayLintReport(cmd.OutOrStdout(), res)
	}

	if !res.Passed() {
		return &ComplianceError{
			Message: fmt.Sprintf("%d lint error(s) in the decision log", res.Errors()),
		}
	}
	return nil
}

// lintOptions maps project config onto the lint engine options.
func lintOptions(dir, root string, cfg *projectconfig.ProjectConfig, checkURLs bool) (lint.Options, error) {
	opts := lint.Options{
		Dir:               dir,
		Root:              root,
		Workers:           cfg.Lint.Workers,
		CheckExternalURLs: checkURLs && cfg.Lint.RuleEnabled("link-dead-url"),
		Disabled:          map[string]bool{},
	}
	for name := range cfg.Lint.Rules {
		if !cfg.Lint.RuleEnabled(name) {
			opts.Disabled[name] = true
		}
	}

	var sectionOpts struct {
		Required []string `mapstructure:"required"`
	}
	if err := cfg.Lint.RuleOptions("doc-sections", &sectionOpts); err != nil {
		return lint.Options{}, err
	}
	opts.RequiredSections = sectionOpts.Required

	var titleOpts struct {
		Max int `mapstructure:"max"`
	}
	if err := cfg.Lint.RuleOptions("doc-title-length", &titleOpts); err != nil {
		return lint.Options{}, err
	}
	opts.MaxTitleRunes = titleOpts.Max

	return opts, nil
}

func displayLintReport(w io.Writer, res *lint.Result) {
	if len(res.Findings) > 0 {
		current := ""
		for _, f := range res.Findings {
			if f.File != current {
				current = f.File
				fmt.Fprintf(w, "\n%s\n", current) //nolint:errcheck
			}
			icon := "⚠️ "
			if f.Severity == lint.SeverityError {
				icon = "❌"
			}
			fmt.Fprintf(w, "  %s [%s] %s\n", icon, f.Rule, f.Message) //nolint:errcheck
		}
		fmt.Fprintln(w) //nolint:errcheck
	}

	fmt.Fprintf(w, "Files: %d  Links: %d/%d valid  Errors: %d  Warnings: %d\n", //nolint:errcheck
		res.Files, res.ValidLinks, res.TotalLinks, res.Errors(), res.Warnings())
	fmt.Fprintln(w, reporting.InterpretFindings(res)) //nolint:errcheck
}
