package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/grenas405/meta-documentation/internal/adr"
	"github.com/grenas405/meta-documentation/internal/scaffold"
	"github.com/grenas405/meta-documentation/internal/template"
	"github.com/grenas405/meta-documentation/internal/wizard"
	"github.com/grenas405/meta-documentation/internal/workspace"
)

func newNewCommand() *cobra.Command {
	var (
		statusFlag string
		supersedes string
		tags       []string
	)

	cmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Create a new decision record",
		Long: `Create a new decision record with the next sequential identifier.

The record is written to the workspace decisions directory, named
ADR-NNNN-<slug>.md after its id and title. When running in a terminal
(TTY), an interactive wizard collects the record's prose; in
non-interactive environments the default template is rendered with
placeholder sections.

--supersedes cross-links the new record with an existing one and flips
the old record's status to SUPERSEDED. This is the only way metadoc
changes a status as a side effect, and only because it was explicitly
asked to.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newCommandE(cmd, strings.Join(args, " "), statusFlag, supersedes, tags)
		},
	}

	cmd.Flags().StringVar(&statusFlag, "status", "proposed", "Initial status: proposed | accepted | deprecated | superseded")
	cmd.Flags().StringVar(&supersedes, "supersedes", "", "Id of an existing record this decision supersedes (e.g. ADR-0007)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag for the record (repeatable)")

	return cmd
}

func newCommandE(cmd *cobra.Command, title, statusFlag, supersedes string, tags []string) error {
	if err := scaffold.ValidateTitle(title); err != nil {
		return err
	}
	status, err := adr.ParseStatus(statusFlag)
	if err != nil {
		return err
	}

	wsCtx, cfg, err := requireDecisionLog()
	if err != nil {
		return err
	}

	var old *workspace.DecisionInfo
	if supersedes != "" {
		old, err = workspace.FindDecision(wsCtx, supersedes)
		if err != nil {
			return err
		}
	}

	id := adr.NextID(wsCtx.ExistingIDs())
	today := time.Now().Format("2006-01-02")

	tctx := &template.Context{
		ID:     id,
		Title:  title,
		Status: status.String(),
		Date:   today,
		Author: cfg.New.Author,
		Tags:   tags,
	}
	if len(tctx.Tags) == 0 {
		tctx.Tags = cfg.New.Tags
	}
	if cfg.New.ReviewAfterDays > 0 {
		tctx.ReviewDate = time.Now().
			AddDate(0, 0, cfg.New.ReviewAfterDays).
			Format("2006-01-02")
	}
	if old != nil {
		tctx.Supersedes = old.ID
		tctx.Related = []string{old.ID}
	}

	// Check TTY from the command's input stream, not os.Stdin directly.
	inReader := cmd.InOrStdin()
	isTTY := false
	if f, ok := inReader.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	if isTTY {
		spec, err := wizard.RunRecordWizard(cmd.InOrStdin(), cmd.OutOrStdout(), title)
		if err != nil {
			return err
		}
		spec.Apply(tctx)
	}

	tmpl, err := template.LoadRecord(resolveUnderRoot(wsCtx, cfg.Paths.Templates))
	if err != nil {
		return err
	}
	content, err := template.Render(tmpl, tctx)
	if err != nil {
		return err
	}

	path := filepath.Join(wsCtx.DecisionsDir, adr.Filename(id, tctx.Title))
	fmt.Fprintf(cmd.OutOrStdout(), "Creating %s:\n", id) //nolint:errcheck
	if err := writeFiles(cmd, []fileEntry{{path, content}}); err != nil {
		return err
	}

	if old != nil {
		if err := markSuperseded(old.Path, id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  update %s (status → SUPERSEDED)\n", old.Path) //nolint:errcheck
	}

	if err := refreshIndex(wsCtx.DecisionsDir); err != nil {
		return err
	}
	return nil
}

// markSuperseded flips an existing record to SUPERSEDED and cross-links the
// successor in its related list.
func markSuperseded(path, successorID string) error {
	doc, err := adr.Load(path)
	if err != nil {
		return err
	}
	doc.Frontmatter.Status = adr.StatusSuperseded.String()
	if !containsFold(doc.Frontmatter.Related, successorID) {
		doc.Frontmatter.Related = append(doc.Frontmatter.Related, successorID)
	}
	data, err := doc.MarshalText()
	if err != nil {
		return err
	}
	return writeRecord(path, data)
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
